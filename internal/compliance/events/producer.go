// Package events publishes compliance domain events to Kafka: record
// mutations, certificate supersessions, simulated notification dispatches
// and subscription changes. Delivery is best-effort; the write path never
// blocks on the broker.
package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	EmployeeCreated       EventType = "employee_created"
	EmployeeUpdated       EventType = "employee_updated"
	EmployeeDeleted       EventType = "employee_deleted"
	CertificateCreated    EventType = "certificate_created"
	CertificateUpdated    EventType = "certificate_updated"
	CertificateSuperseded EventType = "certificate_superseded"
	CertificateDeleted    EventType = "certificate_deleted"
	TrainingSaved         EventType = "training_saved"
	TrainingDeleted       EventType = "training_deleted"
	EquipmentSaved        EventType = "equipment_saved"
	EquipmentDeleted      EventType = "equipment_deleted"
	NotificationSent      EventType = "notification_sent"
	SubscriptionUpdated   EventType = "subscription_updated"
	CompanyStatusChanged  EventType = "company_status_changed"
)

// Event is the envelope written to the topic. Key is the entity id the
// event concerns, used for partitioning.
type Event struct {
	Type    EventType   `json:"type"`
	Key     string      `json:"key"`
	Payload interface{} `json:"payload,omitempty"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
}

func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	// Create topic if it doesn't exist
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan Event, 1000),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()
	return p, nil
}

// Produce enqueues an event for asynchronous delivery. When the buffer is
// full the event is dropped rather than stalling a save.
func (p *Producer) Produce(eventType EventType, key string, payload interface{}) {
	select {
	case p.events <- Event{Type: eventType, Key: key, Payload: payload}:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("key", key),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("key", event.Key),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
		return
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}
