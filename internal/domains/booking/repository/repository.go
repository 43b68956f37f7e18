package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	roomRepository "lodge/internal/domains/room/repository"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
	"lodge/shared/timezone"
	"time"

	"github.com/lib/pq"
)

// RoomConflictError reports that a room already holds an active booking
// overlapping the requested stay.
type RoomConflictError struct {
	RoomID string
}

func (e RoomConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked for the requested dates", e.RoomID)
}

// RoomMissingError reports that a requested room does not exist or has been
// soft-deleted.
type RoomMissingError struct {
	RoomID string
}

func (e RoomMissingError) Error() string {
	return fmt.Sprintf("room %s does not exist", e.RoomID)
}

// ErrVersionConflict reports that a booking row was modified by another
// writer between read and write.
var ErrVersionConflict = errors.New("booking was modified concurrently")

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	CreateWithDetails(ctx context.Context, booking model.Booking, details []model.BookingDetail) error
	AddDetail(ctx context.Context, detail model.BookingDetail) error
	ConflictingRooms(ctx context.Context, roomIDs []string, checkin, checkout time.Time, excludeBookingID string) ([]string, error)
	UpdateStatus(ctx context.Context, bookingID string, status model.Status, version int64, modifiedBy string) error
	Reschedule(ctx context.Context, bookingID string, roomIDs []string, checkin, checkout time.Time, fields map[string]any, modifiedBy string) error
	SoftDeleteWithDetails(ctx context.Context, bookingID, modifiedBy string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	details gRepo.Repository[model.BookingDetail]
	rooms   roomRepository.Room
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, rooms roomRepository.Room, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.BookingDetail](model.DetailEntityName, model.DetailTableName, model.DetailFieldID, db, otel),
		rooms:      rooms,
		db:         db,
		otel:       otel,
	}
}

// Overlap of half-open [checkin, checkout) ranges: a back-to-back stay whose
// checkin equals another stay's checkout does not conflict, and a zero-length
// stay blocks nothing. The SQL mirrors model.Overlaps.
const conflictingRoomsQuery = `
	SELECT DISTINCT d.room_id
	FROM bookings b
	JOIN booking_details d ON d.booking_id = b.id AND d.deleted = false
	WHERE d.room_id = ANY($1)
		AND b.deleted = false
		AND b.status = ANY($2)
		AND b.checkin_date < b.checkout_date
		AND b.checkin_date < $4
		AND $3 < b.checkout_date
		AND b.id <> $5`

// ConflictingRooms returns the subset of roomIDs that hold an active booking
// overlapping [checkin, checkout). excludeBookingID lets a reschedule skip
// the booking being rescheduled.
func (repo *repositoryImpl) ConflictingRooms(ctx context.Context, roomIDs []string, checkin, checkout time.Time, excludeBookingID string) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ConflictingRooms")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, conflictingRoomsQuery)

	var conflicted []string

	err := repo.db.Read.SelectContext(ctx, &conflicted, conflictingRoomsQuery,
		pq.Array(roomIDs), pq.Array(model.ActiveStatusStrings()), checkin, checkout, excludeBookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to query conflicting rooms: %w", err)
	}

	return conflicted, nil
}

// CreateWithDetails persists the header and its line items atomically with
// the availability check. Each room row is locked first, so two writers for
// the same room serialize and the loser sees the winner's rows. The schema's
// exclusion constraint rejects anything that still slips through.
func (repo *repositoryImpl) CreateWithDetails(ctx context.Context, booking model.Booking, details []model.BookingDetail) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateWithDetails")
	defer scope.End()

	sqltx, err := repo.db.BeginSerializable(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		_ = sqltx.Rollback()
	}()

	roomIDs := make([]string, len(details))

	for i, detail := range details {
		roomIDs[i] = detail.RoomID

		locked, err := repo.rooms.LockTx(ctx, sqltx, detail.RoomID)
		if err != nil {
			scope.TraceError(err)

			return err //nolint:wrapcheck
		}

		if !locked {
			return RoomMissingError{RoomID: detail.RoomID}
		}
	}

	if len(roomIDs) > 0 && booking.CheckinDate.Before(booking.CheckoutDate) {
		var conflicted []string

		err = sqltx.SelectContext(ctx, &conflicted, conflictingRoomsQuery,
			pq.Array(roomIDs), pq.Array(model.ActiveStatusStrings()), booking.CheckinDate, booking.CheckoutDate, booking.ID)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to query conflicting rooms: %w", err)
		}

		if len(conflicted) > 0 {
			return RoomConflictError{RoomID: conflicted[0]}
		}
	}

	err = repo.InsertTx(ctx, sqltx, booking)
	if err != nil {
		scope.TraceError(err)

		return translateWriteError(err)
	}

	if len(details) > 0 {
		err = repo.details.InsertBulkTx(ctx, sqltx, details)
		if err != nil {
			scope.TraceError(err)

			return translateWriteError(err)
		}
	}

	err = sqltx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return translateWriteError(fmt.Errorf("failed to commit booking transaction: %w", err))
	}

	return nil
}

const roomStaysQuery = `
	SELECT b.checkin_date, b.checkout_date
	FROM bookings b
	JOIN booking_details d ON d.booking_id = b.id AND d.deleted = false
	WHERE d.room_id = $1
		AND b.deleted = false
		AND b.status = ANY($2)
		AND b.id <> $3`

// AddDetail attaches a room to an existing booking atomically with the
// availability check. The room row is locked and its active stays are
// re-read inside the same transaction, so a concurrent writer for the room
// either serializes behind the lock or trips the exclusion constraint at
// commit.
func (repo *repositoryImpl) AddDetail(ctx context.Context, detail model.BookingDetail) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.AddDetail")
	defer scope.End()

	sqltx, err := repo.db.BeginSerializable(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin detail transaction: %w", err)
	}

	defer func() {
		_ = sqltx.Rollback()
	}()

	locked, err := repo.rooms.LockTx(ctx, sqltx, detail.RoomID)
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	if !locked {
		return RoomMissingError{RoomID: detail.RoomID}
	}

	var stays []model.Stay

	err = sqltx.SelectContext(ctx, &stays, roomStaysQuery,
		detail.RoomID, pq.Array(model.ActiveStatusStrings()), detail.BookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query room stays: %w", err)
	}

	for _, stay := range stays {
		if model.Overlaps(detail.CheckinDate, detail.CheckoutDate, stay.CheckinDate, stay.CheckoutDate) {
			return RoomConflictError{RoomID: detail.RoomID}
		}
	}

	err = repo.details.InsertTx(ctx, sqltx, detail)
	if err != nil {
		scope.TraceError(err)

		return translateWriteError(err)
	}

	err = sqltx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return translateWriteError(fmt.Errorf("failed to commit detail transaction: %w", err))
	}

	return nil
}

const updateStatusQuery = `
	UPDATE bookings
	SET status = $1, version = version + 1, modified_at = $2, modified_by = $3
	WHERE id = $4 AND version = $5 AND deleted = false`

const releaseBlockingQuery = `
	UPDATE booking_details
	SET blocking = false, modified_at = $1, modified_by = $2
	WHERE booking_id = $3 AND deleted = false`

// UpdateStatus moves the booking to status guarded by the version read by
// the caller. Zero rows affected means another writer got there first. The
// move runs in a transaction with the detail blocking mirror: a booking
// leaving the active statuses stops holding its rooms in the same commit.
func (repo *repositoryImpl) UpdateStatus(ctx context.Context, bookingID string, status model.Status, version int64, modifiedBy string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, updateStatusQuery)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin status transaction: %w", err)
	}

	defer func() {
		_ = sqltx.Rollback()
	}()

	result, err := sqltx.ExecContext(ctx, updateStatusQuery, status.String(), timezone.Now(), modifiedBy, bookingID, version)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrVersionConflict
	}

	if !status.IsActive() {
		_, err = sqltx.ExecContext(ctx, releaseBlockingQuery, timezone.Now(), modifiedBy, bookingID)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to release booking rooms: %w", err)
		}
	}

	err = sqltx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit status transaction: %w", err)
	}

	return nil
}

const syncDetailDatesQuery = `
	UPDATE booking_details
	SET checkin_date = $1, checkout_date = $2, modified_at = $3, modified_by = $4
	WHERE booking_id = $5 AND deleted = false`

// Reschedule re-runs the availability check for the booking's rooms against
// the new stay range and, on success, updates the header fields and the
// detail range mirror in one serializable transaction. The booking's own
// rows are excluded from the check.
func (repo *repositoryImpl) Reschedule(ctx context.Context, bookingID string, roomIDs []string, checkin, checkout time.Time, fields map[string]any, modifiedBy string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reschedule")
	defer scope.End()

	sqltx, err := repo.db.BeginSerializable(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin reschedule transaction: %w", err)
	}

	defer func() {
		_ = sqltx.Rollback()
	}()

	for _, roomID := range roomIDs {
		locked, err := repo.rooms.LockTx(ctx, sqltx, roomID)
		if err != nil {
			scope.TraceError(err)

			return err //nolint:wrapcheck
		}

		if !locked {
			return RoomMissingError{RoomID: roomID}
		}
	}

	if len(roomIDs) > 0 && checkin.Before(checkout) {
		var conflicted []string

		err = sqltx.SelectContext(ctx, &conflicted, conflictingRoomsQuery,
			pq.Array(roomIDs), pq.Array(model.ActiveStatusStrings()), checkin, checkout, bookingID)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to query conflicting rooms: %w", err)
		}

		if len(conflicted) > 0 {
			return RoomConflictError{RoomID: conflicted[0]}
		}
	}

	err = repo.UpdateTx(ctx, sqltx, fields, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName},
		},
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	_, err = sqltx.ExecContext(ctx, syncDetailDatesQuery, checkin, checkout, timezone.Now(), modifiedBy, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to sync booking detail dates: %w", err)
	}

	err = sqltx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return translateWriteError(fmt.Errorf("failed to commit reschedule transaction: %w", err))
	}

	return nil
}

// SoftDeleteWithDetails tombstones the header and its line items in one
// transaction so a partially deleted booking can never block availability.
func (repo *repositoryImpl) SoftDeleteWithDetails(ctx context.Context, bookingID, modifiedBy string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SoftDeleteWithDetails")
	defer scope.End()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}

	defer func() {
		_ = sqltx.Rollback()
	}()

	err = repo.SoftDeleteTx(ctx, sqltx, modifiedBy, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName},
		},
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	err = repo.details.SoftDeleteTx(ctx, sqltx, modifiedBy, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.DetailFieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.DetailTableName},
		},
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	err = sqltx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}

// translateWriteError maps database-level conflicts onto domain errors. An
// exclusion violation or a serialization failure both mean a concurrent
// writer won the rooms.
func translateWriteError(err error) error {
	var pqErr *pq.Error

	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeExclusionViolation, constant.PqErrorCodeSerializationFail:
			return RoomConflictError{}
		}
	}

	return err
}
