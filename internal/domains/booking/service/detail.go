package service

import (
	"context"
	"fmt"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/rs/zerolog/log"
)

// Line items may only change while the parent booking is still pending;
// from confirmed on, only the lifecycle itself may move.

func (s *serviceImpl) AddDetail(ctx context.Context, req dto.AddDetailRequest, bookingID string) (res dto.MutationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.AddDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.pendingBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	taken, err := s.details.Exist(ctx, s.detailByRoomFilter(bookingID, req.RoomID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking detail uniqueness")

		return res, fmt.Errorf("failed to check booking detail uniqueness: %w", err)
	}

	if taken {
		return res, failure.Conflict(fmt.Sprintf("room %s is already part of the booking", req.RoomID)) // nolint:wrapcheck
	}

	err = s.availability.Check(ctx, []string{req.RoomID}, booking.CheckinDate, booking.CheckoutDate, bookingID)
	if err != nil {
		return res, err
	}

	// The repository re-checks the room inside the insert transaction, so a
	// concurrent booking that won the room surfaces as a conflict here even
	// though the check above already passed.
	if err = s.repo.AddDetail(ctx, req.ToModel(booking, user)); err != nil {
		return res, s.translate(err)
	}

	s.invalidate(ctx, bookingID)

	res.Warning = s.storedTotalWarning(ctx, bookingID, booking.TotalAmount)

	return res, nil
}

func (s *serviceImpl) UpdateDetail(ctx context.Context, req dto.UpdateDetailRequest, bookingID, detailID string) (res dto.MutationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateDetailRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.pendingBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	filter, err := s.detailFilter(ctx, bookingID, detailID)
	if err != nil {
		return res, err
	}

	if err = s.details.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking detail")

		return res, fmt.Errorf("failed to update booking detail: %w", err)
	}

	s.invalidate(ctx, bookingID)

	res.Warning = s.storedTotalWarning(ctx, bookingID, booking.TotalAmount)

	return res, nil
}

func (s *serviceImpl) DeleteDetail(ctx context.Context, bookingID, detailID string) (res dto.MutationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.DeleteDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.pendingBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	filter, err := s.detailFilter(ctx, bookingID, detailID)
	if err != nil {
		return res, err
	}

	if err = s.details.SoftDelete(ctx, user, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking detail")

		return res, fmt.Errorf("failed to delete booking detail: %w", err)
	}

	s.invalidate(ctx, bookingID)

	res.Warning = s.storedTotalWarning(ctx, bookingID, booking.TotalAmount)

	return res, nil
}

func (s *serviceImpl) pendingBooking(ctx context.Context, bookingID string) (model.Booking, error) {
	booking, err := s.activeBooking(ctx, bookingID)
	if err != nil {
		return booking, err
	}

	if booking.Status != model.StatusPending {
		return booking, failure.InvalidState(fmt.Sprintf("booking details can only change while pending, booking is %s", booking.Status)) // nolint:wrapcheck
	}

	return booking, nil
}

// detailFilter resolves a live line item of the booking, or NotFound.
func (s *serviceImpl) detailFilter(ctx context.Context, bookingID, detailID string) (gDto.FilterGroup, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.DetailFieldID,
				Value:    detailID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.DetailTableName,
			},
			gDto.Filter{
				Field:    model.DetailFieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.DetailTableName,
			},
			shared.NotDeleted(model.DetailTableName),
		},
	}

	exist, err := s.details.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking detail existence")

		return filter, fmt.Errorf("failed to check booking detail existence: %w", err)
	}

	if !exist {
		return filter, failure.NotFound("booking detail not found") // nolint:wrapcheck
	}

	return filter, nil
}

func (s *serviceImpl) detailByRoomFilter(bookingID, roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.DetailFieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.DetailTableName,
			},
			gDto.Filter{
				Field:    model.DetailFieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.DetailTableName,
			},
			shared.NotDeleted(model.DetailTableName),
		},
	}
}
