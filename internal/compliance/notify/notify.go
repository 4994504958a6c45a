// Package notify delivers expiry reminders to employees. Delivery is
// simulated: messages are logged and recorded as events, no provider is
// contacted.
package notify

import (
	"context"
	"fmt"
	"time"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Channel is the delivery medium for a notification.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
)

// Message is one reminder to send.
type Message struct {
	Channel    Channel   `json:"channel"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	EmployeeID uuid.UUID `json:"employee_id,omitempty"`
}

// Receipt describes a simulated delivery.
type Receipt struct {
	ID     uuid.UUID `json:"id"`
	SentAt time.Time `json:"sent_at"`
	Status string    `json:"status"`
}

type eventProducer interface {
	Produce(eventType events.EventType, key string, payload interface{})
}

// Sender validates and "delivers" notifications.
type Sender struct {
	producer eventProducer
	logger   *zap.Logger
	now      func() time.Time
}

func NewSender(producer eventProducer, logger *zap.Logger) *Sender {
	return &Sender{
		producer: producer,
		logger:   logger.Named("notify"),
		now:      time.Now,
	}
}

// Send validates the message and records a simulated delivery.
func (s *Sender) Send(ctx context.Context, companyID uuid.UUID, msg Message) (*Receipt, error) {
	if msg.Channel != ChannelEmail && msg.Channel != ChannelWhatsApp {
		return nil, fmt.Errorf("%w: unknown channel %q", e.ErrInvalidInput, msg.Channel)
	}
	if msg.Recipient == "" {
		return nil, fmt.Errorf("%w: recipient required", e.ErrInvalidInput)
	}
	if msg.Body == "" {
		return nil, fmt.Errorf("%w: message body required", e.ErrInvalidInput)
	}

	receipt := &Receipt{
		ID:     uuid.New(),
		SentAt: s.now(),
		Status: "simulated",
	}
	s.logger.Info("notification sent",
		zap.String("channel", string(msg.Channel)),
		zap.String("recipient", msg.Recipient),
		zap.String("company_id", companyID.String()),
		zap.String("notification_id", receipt.ID.String()),
	)
	go func() {
		s.producer.Produce(events.NotificationSent, receipt.ID.String(), msg)
	}()
	return receipt, nil
}
