// Package events publishes best-effort domain events over Kafka. A
// publish failure is logged and swallowed; it never affects the HTTP
// response that triggered it.
package events

import (
	"context"
	"time"

	goejson "github.com/goccy/go-json"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/Kiyoonewton/eld-api/internal/logger"
)

const (
	TopicTripPlanned      = "trip.planned"
	TopicTripHOSViolation = "trip.hos_violation"
)

type Event struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Time time.Time   `json:"time"`
	Data interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:   uuid.NewString(),
		Type: eventType,
		Time: time.Now(),
		Data: data,
	}
}

type Producer struct {
	writer *kafkago.Writer
	log    *logger.Logger
}

// NewProducer returns nil if brokers is empty: Kafka publishing is
// optional, and a nil *Producer is safe to Publish against (it's a no-op).
func NewProducer(brokers []string, log *logger.Logger) *Producer {
	if log == nil {
		log = logger.Default()
	}
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireOne,
			Async:        false,
		},
		log: log,
	}
}

func (p *Producer) Publish(ctx context.Context, topic string, event Event) {
	if p == nil || p.writer == nil {
		return
	}
	payload, err := goejson.Marshal(event)
	if err != nil {
		p.log.Warnw("event marshal failed", "topic", topic, "error", err)
		return
	}
	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(event.ID),
		Value: payload,
		Time:  event.Time,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warnw("event publish failed", "topic", topic, "error", err)
	}
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
