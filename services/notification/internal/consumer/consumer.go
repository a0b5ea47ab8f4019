// Package consumer reads notification requests off kafka and hands them to
// the notification service.
package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/musicclouds/platform/pkg/events"
	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/services/notification/internal/service"
)

type Consumer struct {
	reader *kafka.Reader
	svc    *service.NotificationService
}

func New(brokers []string, topic, groupID string, svc *service.NotificationService) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		svc: svc,
	}
}

// Run consumes until the context is cancelled. A persistence failure stops
// the loop without committing the offset, so the message is retried after a
// restart. Undecodable payloads are logged and committed away.
func (c *Consumer) Run(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "notification.consumer")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var req events.NotificationRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			l.Error("event_discarded", "reason", "bad payload", "error", err)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := c.svc.Send(ctx, req); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
