package interfaces

import (
	"context"

	"github.com/meetnearme/identity-api/functions/gateway/types"
)

// UserEventPublisher fans out directory changes to downstream consumers.
type UserEventPublisher interface {
	PublishUserCreated(ctx context.Context, event types.UserCreatedEvent) error
	Close() error
}
