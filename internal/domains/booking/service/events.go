package service

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	"lodge/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
)

// BookingEvent is the payload published to the booking events topic for
// downstream consumers (notifications, reporting). Delivery is best-effort
// and never blocks or fails the originating request.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Created(ctx context.Context, booking model.Booking)
	StatusChanged(ctx context.Context, booking model.Booking, from, to model.Status)
	Deleted(ctx context.Context, booking model.Booking)
}

type kafkaPublisher struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *kafkaPublisher) Created(ctx context.Context, booking model.Booking) {
	p.publish(ctx, BookingEvent{
		Type:       EventBookingCreated,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ToStatus:   booking.Status.String(),
		OccurredAt: timezone.Now(),
	})
}

func (p *kafkaPublisher) StatusChanged(ctx context.Context, booking model.Booking, from, to model.Status) {
	p.publish(ctx, BookingEvent{
		Type:       EventBookingStatusChanged,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		FromStatus: from.String(),
		ToStatus:   to.String(),
		OccurredAt: timezone.Now(),
	})
}

func (p *kafkaPublisher) Deleted(ctx context.Context, booking model.Booking) {
	p.publish(ctx, BookingEvent{
		Type:       EventBookingDeleted,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		FromStatus: booking.Status.String(),
		OccurredAt: timezone.Now(),
	})
}

func (p *kafkaPublisher) publish(ctx context.Context, event BookingEvent) {
	go func() {
		c := context.WithoutCancel(ctx)

		c, scope := p.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking."+event.Type)
		defer scope.End()

		err := p.client.SendMessages(c, p.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   event.BookingID,
			Value: event,
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("type", event.Type).Str("bookingID", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}
