package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer tails the compliance event topic and hands each event to a
// registered handler. Used for the audit trail: a handler that structured-
// logs every mutation gives operators a replayable change feed.
type Consumer struct {
	reader  *kafka.Reader
	logger  *zap.Logger
	handler func(context.Context, Event) error
}

func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger: logger.Named("kafka_consumer"),
	}
}

func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("Failed to fetch message", zap.Error(err))
				continue
			}

			var event Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("Failed to parse event",
					zap.Error(err),
					zap.ByteString("value", msg.Value),
				)
				continue
			}

			if err := c.handle(ctx, event); err != nil {
				c.logger.Error("Failed to handle event",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("Failed to commit message",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
				)
			}
		}
	}()
}

// handle dispatches one event. Events fetched before a handler is registered
// are dropped with a warning instead of crashing the consumer loop.
func (c *Consumer) handle(ctx context.Context, event Event) error {
	if c.handler == nil {
		c.logger.Warn("No handler registered, dropping event",
			zap.String("event_type", string(event.Type)),
		)
		return nil
	}
	return c.handler(ctx, event)
}

func (c *Consumer) RegisterHandler(fn func(context.Context, Event) error) {
	c.handler = fn
}

// AuditHandler returns a handler that logs every event at info level.
func AuditHandler(logger *zap.Logger) func(context.Context, Event) error {
	audit := logger.Named("audit")
	return func(_ context.Context, event Event) error {
		audit.Info("compliance event",
			zap.String("type", string(event.Type)),
			zap.String("key", event.Key),
		)
		return nil
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
