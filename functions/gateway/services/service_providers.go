package services

import (
	"context"
	"fmt"

	"github.com/meetnearme/identity-api/functions/gateway/config"
	"github.com/meetnearme/identity-api/functions/gateway/interfaces"
	"github.com/meetnearme/identity-api/functions/gateway/types"
)

// NoopUserEventPublisher is used when no NATS server is configured.
type NoopUserEventPublisher struct{}

func (NoopUserEventPublisher) PublishUserCreated(ctx context.Context, event types.UserCreatedEvent) error {
	return nil
}

func (NoopUserEventPublisher) Close() error {
	return nil
}

// GetUserEventPublisher connects to JetStream when NATS_URL is set and falls
// back to a no-op publisher otherwise.
func GetUserEventPublisher(ctx context.Context, cfg *config.Config) (interfaces.UserEventPublisher, error) {
	if cfg.NatsURL == "" {
		return NoopUserEventPublisher{}, nil
	}

	conn, err := GetNatsClient(cfg.NatsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	svc, err := NewNatsService(ctx, conn, cfg.NatsUserStreamName, cfg.NatsUserCreatedSubject)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return svc, nil
}
