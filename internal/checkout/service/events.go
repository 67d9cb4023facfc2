package service

import (
	"context"
	"time"

	"rezkit/pkg/kafka"
	"rezkit/pkg/logger"
	"rezkit/pkg/model"
)

// Event types carried in the booking-events topic headers.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventRecordFailed     = "booking.record_failed"

	eventSource        = "booking-engine"
	eventSchemaVersion = "1"
)

// EventPublisher announces checkout outcomes. Publishing is best
// effort; a failed announcement never rolls back the booking.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, sessionID string, record *model.BookingRecord) error
	RecordFailed(ctx context.Context, sessionID string, record *model.BookingRecord, cause error) error
}

// MessageProducer is the producing slice of *kafka.Producer.
type MessageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaEventPublisher struct {
	producer MessageProducer
	log      *logger.Logger
}

func NewKafkaEventPublisher(producer MessageProducer, log *logger.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		log:      log,
	}
}

type bookingConfirmedEvent struct {
	SessionID   string               `json:"session_id"`
	ConfirmedAt time.Time            `json:"confirmed_at"`
	Record      *model.BookingRecord `json:"record"`
}

func (p *KafkaEventPublisher) BookingConfirmed(ctx context.Context, sessionID string, record *model.BookingRecord) error {
	msg := kafka.NewMessage().
		WithKey(record.Reference).
		WithValue(bookingConfirmedEvent{
			SessionID:   sessionID,
			ConfirmedAt: time.Now().UTC(),
			Record:      record,
		}).
		WithEventType(EventBookingConfirmed).
		WithCorrelationID(sessionID).
		WithSource(eventSource).
		WithSchemaVersion(eventSchemaVersion).
		Build()

	return p.producer.Publish(ctx, msg)
}

type recordFailedEvent struct {
	SessionID     string               `json:"session_id"`
	Reference     string               `json:"reference"`
	TransactionID string               `json:"transaction_id"`
	Cause         string               `json:"cause"`
	FailedAt      time.Time            `json:"failed_at"`
	Record        *model.BookingRecord `json:"record"`
}

// RecordFailed is the reconciliation alert for a captured charge whose
// record never reached storage.
func (p *KafkaEventPublisher) RecordFailed(ctx context.Context, sessionID string, record *model.BookingRecord, cause error) error {
	msg := kafka.NewMessage().
		WithKey(sessionID).
		WithValue(recordFailedEvent{
			SessionID:     sessionID,
			Reference:     record.Reference,
			TransactionID: record.TransactionID,
			Cause:         cause.Error(),
			FailedAt:      time.Now().UTC(),
			Record:        record,
		}).
		WithEventType(EventRecordFailed).
		WithCorrelationID(sessionID).
		WithSource(eventSource).
		WithSchemaVersion(eventSchemaVersion).
		Build()

	return p.producer.Publish(ctx, msg)
}

// NoopEventPublisher drops announcements. Used when no broker is
// configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) BookingConfirmed(ctx context.Context, sessionID string, record *model.BookingRecord) error {
	return nil
}

func (NoopEventPublisher) RecordFailed(ctx context.Context, sessionID string, record *model.BookingRecord, cause error) error {
	return nil
}
