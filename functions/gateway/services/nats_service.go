package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/meetnearme/identity-api/functions/gateway/logging"
	"github.com/meetnearme/identity-api/functions/gateway/types"
)

type jetStreamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type NatsService struct {
	conn    *nats.Conn
	js      jetStreamPublisher
	subject string
}

func NewNatsService(ctx context.Context, conn *nats.Conn, streamName, subject string) (*NatsService, error) {
	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	// Create stream if it does not exist
	_, err = js.Stream(ctx, streamName)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		logging.FromContext(ctx).Info("creating stream", zap.String("stream", streamName))
		_, err = js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create stream: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	}

	return &NatsService{
		conn:    conn,
		js:      js,
		subject: subject,
	}, nil
}

func GetNatsClient(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, fmt.Errorf("NATS_URL environment variable is required")
	}
	return nats.Connect(url, nats.Name("identity-api"))
}

// userCreatedMsgID dedupes retries of one create. The request id alone can be
// client supplied, so it is scoped to the created username.
func userCreatedMsgID(event types.UserCreatedEvent) string {
	if event.RequestID == "" {
		return ""
	}
	return event.RequestID + ":" + event.Username
}

func (s *NatsService) PublishUserCreated(ctx context.Context, event types.UserCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	opts := []jetstream.PublishOpt{}
	if msgID := userCreatedMsgID(event); msgID != "" {
		opts = append(opts, jetstream.WithMsgID(msgID))
	}

	ack, err := s.js.Publish(ctx, s.subject, data, opts...)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logging.FromContext(ctx).Debug("published user created event",
		zap.Uint64("sequence", ack.Sequence),
		zap.String("stream", ack.Stream),
	)
	return nil
}

func (s *NatsService) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}
