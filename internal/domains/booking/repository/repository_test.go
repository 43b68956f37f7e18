package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	otelMocks "lodge/infras/otel/mocks"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	roomRepository "lodge/internal/domains/room/repository"
	gModel "lodge/shared/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingRepoMock(t *testing.T) (Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}
	otl := otelMocks.NewOtel()

	return New(conn, roomRepository.New(conn, otl), otl), mock
}

func fixtureBooking() (model.Booking, []model.BookingDetail) {
	now := time.Now()

	booking := model.Booking{
		ID:           "booking-1",
		UserID:       "user-1",
		BookingDate:  now,
		CheckinDate:  time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		CheckoutDate: time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC),
		TotalAmount:  450,
		Status:       model.StatusPending,
		Version:      1,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-1",
			ModifiedBy: "user-1",
		},
	}

	details := []model.BookingDetail{
		{
			ID:        "detail-1",
			BookingID: booking.ID,
			RoomID:    "room-1",
			RoomPrice: 150,
			Metadata:  booking.Metadata,
		},
	}

	return booking, details
}

func TestCreateWithDetails(t *testing.T) {
	t.Run("commits when every room is free", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)
		booking, details := fixtureBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithDetails(context.Background(), booking, details)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back with a conflict when a room overlaps", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)
		booking, details := fixtureBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow("room-1"))
		mock.ExpectRollback()

		err := repo.CreateWithDetails(context.Background(), booking, details)

		var conflict RoomConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "room-1", conflict.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a room is missing", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)
		booking, details := fixtureBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.CreateWithDetails(context.Background(), booking, details)

		var missing RoomMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "room-1", missing.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps an exclusion violation at commit to a conflict", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)
		booking, details := fixtureBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(&pq.Error{Code: "23P01"})

		err := repo.CreateWithDetails(context.Background(), booking, details)

		var conflict RoomConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a serialization failure at insert to a conflict", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)
		booking, details := fixtureBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}))
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()

		err := repo.CreateWithDetails(context.Background(), booking, details)

		var conflict RoomConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddDetail(t *testing.T) {
	detail := model.BookingDetail{
		ID:           "detail-2",
		BookingID:    "booking-1",
		RoomID:       "room-2",
		RoomPrice:    150,
		CheckinDate:  time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
		CheckoutDate: time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC),
		Blocking:     true,
	}

	t.Run("commits when the room is free for the stay", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-2"))
		mock.ExpectQuery("SELECT b.checkin_date, b.checkout_date").
			WillReturnRows(sqlmock.NewRows([]string{"checkin_date", "checkout_date"}))
		mock.ExpectExec("INSERT INTO booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.AddDetail(context.Background(), detail)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back with a conflict when an active stay overlaps", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-2"))
		mock.ExpectQuery("SELECT b.checkin_date, b.checkout_date").
			WillReturnRows(sqlmock.NewRows([]string{"checkin_date", "checkout_date"}).
				AddRow(
					time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
				))
		mock.ExpectRollback()

		err := repo.AddDetail(context.Background(), detail)

		var conflict RoomConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "room-2", conflict.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts next to a back-to-back stay", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-2"))
		mock.ExpectQuery("SELECT b.checkin_date, b.checkout_date").
			WillReturnRows(sqlmock.NewRows([]string{"checkin_date", "checkout_date"}).
				AddRow(
					time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
				))
		mock.ExpectExec("INSERT INTO booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.AddDetail(context.Background(), detail)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the room is missing", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-2").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.AddDetail(context.Background(), detail)

		var missing RoomMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "room-2", missing.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps an exclusion violation at commit to a conflict", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-2").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-2"))
		mock.ExpectQuery("SELECT b.checkin_date, b.checkout_date").
			WillReturnRows(sqlmock.NewRows([]string{"checkin_date", "checkout_date"}))
		mock.ExpectExec("INSERT INTO booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(&pq.Error{Code: "23P01"})

		err := repo.AddDetail(context.Background(), detail)

		var conflict RoomConflictError
		assert.ErrorAs(t, err, &conflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestConflictingRooms(t *testing.T) {
	t.Run("passes the half-open range and active statuses", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		checkin := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
		checkout := time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WithArgs(
				pq.Array([]string{"room-1"}),
				pq.Array(model.ActiveStatusStrings()),
				checkin,
				checkout,
				"",
			).
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow("room-1"))

		conflicted, err := repo.ConflictingRooms(context.Background(), []string{"room-1"}, checkin, checkout, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"room-1"}, conflicted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty when nothing overlaps", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}))

		conflicted, err := repo.ConflictingRooms(context.Background(), []string{"room-1"},
			time.Now(), time.Now().AddDate(0, 0, 2), "")

		require.NoError(t, err)
		assert.Empty(t, conflicted)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("bumps the version and keeps rooms held for an active status", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WithArgs("confirmed", sqlmock.AnyArg(), "staff-1", "booking-1", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatus(context.Background(), "booking-1", model.StatusConfirmed, 1, "staff-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("releases the rooms when the booking leaves the active statuses", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WithArgs("cancelled", sqlmock.AnyArg(), "staff-1", "booking-1", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE booking_details").
			WithArgs(sqlmock.AnyArg(), "staff-1", "booking-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatus(context.Background(), "booking-1", model.StatusCancelled, 2, "staff-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a version conflict when no row matches", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateStatus(context.Background(), "booking-1", model.StatusConfirmed, 1, "staff-1")

		assert.True(t, errors.Is(err, ErrVersionConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReschedule(t *testing.T) {
	checkin := time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	fields := map[string]any{"checkin_date": checkin, "checkout_date": checkout}

	t.Run("moves the stay when the new range is free", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}))
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Reschedule(context.Background(), "booking-1", []string{"room-1"}, checkin, checkout, fields, "staff-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back with a conflict when the new range overlaps", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT DISTINCT d.room_id").
			WillReturnRows(sqlmock.NewRows([]string{"room_id"}).AddRow("room-1"))
		mock.ExpectRollback()

		err := repo.Reschedule(context.Background(), "booking-1", []string{"room-1"}, checkin, checkout, fields, "staff-1")

		var conflict RoomConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "room-1", conflict.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSoftDeleteWithDetails(t *testing.T) {
	t.Run("tombstones the header and details in one transaction", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE booking_details").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SoftDeleteWithDetails(context.Background(), "booking-1", "staff-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the detail update fails", func(t *testing.T) {
		repo, mock := newBookingRepoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE booking_details").
			WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		err := repo.SoftDeleteWithDetails(context.Background(), "booking-1", "staff-1")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
