package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"lodge/config"
	"lodge/infras/otel"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	userModel "lodge/internal/domains/user/model"
	userRepository "lodge/internal/domains/user/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.MutationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	AddDetail(ctx context.Context, req dto.AddDetailRequest, bookingID string) (dto.MutationResponse, error)
	UpdateDetail(ctx context.Context, req dto.UpdateDetailRequest, bookingID, detailID string) (dto.MutationResponse, error)
	DeleteDetail(ctx context.Context, bookingID, detailID string) (dto.MutationResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	details      repository.Detail
	users        userRepository.User
	availability Availability
	publisher    Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	details repository.Detail,
	users userRepository.User,
	availability Availability,
	publisher Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		details:      details,
		users:        users,
		availability: availability,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, details, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if booking.TotalAmount <= 0 {
		return res, failure.InvalidAmount() // nolint:wrapcheck
	}

	if booking.CheckinDate.Before(timezone.Today()) {
		return res, failure.PastDate() // nolint:wrapcheck
	}

	roomIDs, err := uniqueRoomIDs(details)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	exist, err := s.users.Exist(ctx, shared.FilterActiveByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check user existence")

		return res, fmt.Errorf("failed to check user existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound(fmt.Sprintf("user %s not found", req.UserID)) // nolint:wrapcheck
	}

	if err = s.availability.Check(ctx, roomIDs, booking.CheckinDate, booking.CheckoutDate, constant.Empty); err != nil {
		return res, err
	}

	if err = s.repo.CreateWithDetails(ctx, booking, details); err != nil {
		return res, s.translate(err)
	}

	s.publisher.Created(ctx, booking)
	s.invalidate(ctx, booking.ID)

	res.ID = booking.ID
	res.Warning = totalMismatchWarning(booking.TotalAmount, sumPrices(details), len(details) > 0)

	if res.Warning != constant.Empty {
		log.Warn().Str("bookingID", booking.ID).Msg(res.Warning)
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	filter.Filters = append(filter.Filters, shared.NotDeleted(model.TableName))

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.activeBooking(ctx, id)
	if err != nil {
		return res, err
	}

	details, err := s.activeDetails(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, details)
	res.Warning = totalMismatchWarning(booking.TotalAmount, sumPrices(details), len(details) > 0)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.MutationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.activeBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status.Locked() {
		return res, failure.InvalidState(fmt.Sprintf("booking in status %s can no longer be edited", booking.Status)) // nolint:wrapcheck
	}

	checkin, checkout, rescheduled, err := resolveStay(booking, req)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	fields := shared.TransformFields(req, user)

	if rescheduled {
		if checkout.Before(checkin) {
			return res, failure.InvalidRange() // nolint:wrapcheck
		}

		if checkin.Before(timezone.Today()) {
			return res, failure.PastDate() // nolint:wrapcheck
		}

		details, err := s.activeDetails(ctx, id)
		if err != nil {
			return res, err
		}

		roomIDs, err := uniqueRoomIDs(details)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		fields[model.FieldCheckinDate] = checkin
		fields[model.FieldCheckoutDate] = checkout

		if err = s.repo.Reschedule(ctx, id, roomIDs, checkin, checkout, fields, user); err != nil {
			return res, s.translate(err)
		}
	} else {
		err = s.repo.Update(ctx, fields, shared.FilterActiveByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return res, fmt.Errorf("failed to update booking: %w", err)
		}
	}

	s.invalidate(ctx, id)

	if req.TotalAmount != 0 {
		res.Warning = s.storedTotalWarning(ctx, id, req.TotalAmount)
	}

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	booking, err := s.activeBooking(ctx, id)
	if err != nil {
		return err
	}

	if !booking.Status.CanTransitionTo(next) {
		return failure.InvalidTransition(booking.Status.String(), next.String()) // nolint:wrapcheck
	}

	err = s.repo.UpdateStatus(ctx, id, next, booking.Version, user)
	if errors.Is(err, repository.ErrVersionConflict) {
		return failure.Conflict("booking was modified concurrently, retry the request") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.publisher.StatusChanged(ctx, booking, booking.Status, next)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.activeBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.InvalidState(fmt.Sprintf("only pending bookings can be deleted, booking is %s", booking.Status)) // nolint:wrapcheck
	}

	if err = s.repo.SoftDeleteWithDetails(ctx, id, user); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publisher.Deleted(ctx, booking)
	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) activeBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterActiveByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) activeDetails(ctx context.Context, bookingID string) ([]model.BookingDetail, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.DetailFieldBookingID,
				Value:    bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.DetailTableName,
			},
			shared.NotDeleted(model.DetailTableName),
		},
	}

	details, err := s.details.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking details")

		return nil, fmt.Errorf("failed to get booking details: %w", err)
	}

	return details, nil
}

// translate maps repository-level conflict errors onto the API taxonomy.
func (s *serviceImpl) translate(err error) error {
	var conflict repository.RoomConflictError

	if errors.As(err, &conflict) {
		return failure.RoomUnavailable(conflict.RoomID) // nolint:wrapcheck
	}

	var missing repository.RoomMissingError

	if errors.As(err, &missing) {
		return failure.NotFound(missing.Error()) // nolint:wrapcheck
	}

	log.Error().Err(err).Msg("booking write failed")

	return fmt.Errorf("booking write failed: %w", err)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func uniqueRoomIDs(details []model.BookingDetail) ([]string, error) {
	seen := map[string]struct{}{}
	roomIDs := make([]string, 0, len(details))

	for _, detail := range details {
		if _, dup := seen[detail.RoomID]; dup {
			return nil, fmt.Errorf("room %s appears more than once in the booking", detail.RoomID)
		}

		seen[detail.RoomID] = struct{}{}
		roomIDs = append(roomIDs, detail.RoomID)
	}

	return roomIDs, nil
}

func sumPrices(details []model.BookingDetail) float64 {
	var sum float64
	for _, detail := range details {
		sum += detail.RoomPrice
	}

	return sum
}

// totalMismatchWarning reports a header total that disagrees with the sum of
// its line items. The stored total is never corrected silently; the caller
// decides what to do with the warning.
func totalMismatchWarning(total, sum float64, hasDetails bool) string {
	if !hasDetails {
		return constant.Empty
	}

	if math.Abs(total-sum) < 0.005 {
		return constant.Empty
	}

	return fmt.Sprintf("booking total %.2f does not match the sum of its line items %.2f", total, sum)
}

func (s *serviceImpl) storedTotalWarning(ctx context.Context, bookingID string, total float64) string {
	sum, err := s.details.SumPrices(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum booking detail prices")

		return constant.Empty
	}

	warning := totalMismatchWarning(total, sum, sum != 0)
	if warning != constant.Empty {
		log.Warn().Str("bookingID", bookingID).Msg(warning)
	}

	return warning
}

// resolveStay merges the requested date changes onto the stored stay.
func resolveStay(booking model.Booking, req dto.UpdateBookingRequest) (checkin, checkout time.Time, rescheduled bool, err error) {
	checkin = booking.CheckinDate
	checkout = booking.CheckoutDate

	if req.CheckinDate != constant.Empty {
		checkin, err = time.ParseInLocation(constant.CalendarDateFormat, req.CheckinDate, timezone.Location())
		if err != nil {
			return checkin, checkout, false, fmt.Errorf("invalid checkin date: %w", err)
		}

		rescheduled = true
	}

	if req.CheckoutDate != constant.Empty {
		checkout, err = time.ParseInLocation(constant.CalendarDateFormat, req.CheckoutDate, timezone.Location())
		if err != nil {
			return checkin, checkout, false, fmt.Errorf("invalid checkout date: %w", err)
		}

		rescheduled = true
	}

	return checkin, checkout, rescheduled, nil
}
