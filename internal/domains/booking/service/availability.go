package service

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=../mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"time"

	"github.com/rs/zerolog/log"
)

// Availability answers whether a set of rooms is free for a half-open
// [checkin, checkout) stay. Bookings in pending, confirmed or checked_in
// hold their rooms; cancelled, completed and soft-deleted ones do not. A
// stay starting the day another ends does not conflict, and a same-day
// checkout is a valid zero-length stay that conflicts with nothing.
type Availability interface {
	Check(ctx context.Context, roomIDs []string, checkin, checkout time.Time, excludeBookingID string) error
}

type availabilityImpl struct {
	bookings repository.Booking
	rooms    roomRepository.Room
	otel     otel.Otel
}

func NewAvailability(bookings repository.Booking, rooms roomRepository.Room, otel otel.Otel) Availability {
	return &availabilityImpl{
		bookings: bookings,
		rooms:    rooms,
		otel:     otel,
	}
}

func (s *availabilityImpl) Check(ctx context.Context, roomIDs []string, checkin, checkout time.Time, excludeBookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Check")
	defer scope.End()
	defer scope.TraceIfError(err)

	if checkout.Before(checkin) {
		return failure.InvalidRange() // nolint:wrapcheck
	}

	for _, roomID := range roomIDs {
		exist, err := s.rooms.Exist(ctx, shared.FilterActiveByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("roomID", roomID).Msg("failed to check room existence")

			return fmt.Errorf("failed to check room existence: %w", err)
		}

		if !exist {
			return failure.NotFound(fmt.Sprintf("room %s not found", roomID)) // nolint:wrapcheck
		}
	}

	// A zero-length stay occupies no nights, so it cannot conflict.
	if len(roomIDs) == 0 || !checkin.Before(checkout) {
		return nil
	}

	conflicted, err := s.bookings.ConflictingRooms(ctx, roomIDs, checkin, checkout, excludeBookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if len(conflicted) > 0 {
		return failure.RoomUnavailable(conflicted[0]) // nolint:wrapcheck
	}

	return nil
}
