package service_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	"lodge/shared/failure"
)

func TestBookingService_AddDetail(t *testing.T) {
	req := dto.AddDetailRequest{RoomID: "room-3", RoomPrice: 200}

	t.Run("adds a room to a pending booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		booking := storedBooking(model.StatusPending)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.availability.EXPECT().
			Check(gomock.Any(), []string{"room-3"}, booking.CheckinDate, booking.CheckoutDate, booking.ID).
			Return(nil)
		m.bookings.EXPECT().AddDetail(gomock.Any(), gomock.Any()).Return(nil)
		m.details.EXPECT().SumPrices(gomock.Any(), booking.ID).Return(booking.TotalAmount, nil)

		res, err := svc.AddDetail(staffContext(), req, booking.ID)

		require.NoError(t, err)
		assert.Empty(t, res.Warning)
	})

	t.Run("warns when the new line items drift from the header total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		booking := storedBooking(model.StatusPending)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.availability.EXPECT().
			Check(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookings.EXPECT().AddDetail(gomock.Any(), gomock.Any()).Return(nil)
		m.details.EXPECT().SumPrices(gomock.Any(), booking.ID).Return(booking.TotalAmount+200, nil)

		res, err := svc.AddDetail(staffContext(), req, booking.ID)

		require.NoError(t, err)
		assert.Contains(t, res.Warning, "does not match")
	})

	t.Run("rejects the room twice on the same booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusPending), nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.AddDetail(staffContext(), req, "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("rejects mutation once the parent left pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusCheckedIn), nil)

		_, err := svc.AddDetail(staffContext(), req, "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("409 when a concurrent booking wins the room after the check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		booking := storedBooking(model.StatusPending)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.availability.EXPECT().
			Check(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		m.bookings.EXPECT().AddDetail(gomock.Any(), gomock.Any()).
			Return(repository.RoomConflictError{RoomID: "room-3"})

		_, err := svc.AddDetail(staffContext(), req, booking.ID)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("stops when the room is unavailable for the stay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusPending), nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.availability.EXPECT().
			Check(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.RoomUnavailable("room-3"))

		_, err := svc.AddDetail(staffContext(), req, "booking-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_UpdateDetail(t *testing.T) {
	req := dto.UpdateDetailRequest{RoomPrice: 175}

	t.Run("updates a line item while pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		booking := storedBooking(model.StatusPending)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.details.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.details.EXPECT().SumPrices(gomock.Any(), booking.ID).Return(booking.TotalAmount, nil)

		_, err := svc.UpdateDetail(staffContext(), req, booking.ID, "detail-1")

		assert.NoError(t, err)
	})

	t.Run("404 when the line item does not belong to the booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusPending), nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := svc.UpdateDetail(staffContext(), req, "booking-1", "other-detail")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rejects an empty request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newBookingService(ctrl)

		_, err := svc.UpdateDetail(staffContext(), dto.UpdateDetailRequest{}, "booking-1", "detail-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_DeleteDetail(t *testing.T) {
	t.Run("tombstones a line item while pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		booking := storedBooking(model.StatusPending)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.details.EXPECT().SoftDelete(gomock.Any(), "staff-1", gomock.Any()).Return(nil)
		m.details.EXPECT().SumPrices(gomock.Any(), booking.ID).Return(booking.TotalAmount, nil)

		_, err := svc.DeleteDetail(staffContext(), booking.ID, "detail-1")

		assert.NoError(t, err)
	})

	t.Run("rejects deletion once the parent is confirmed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusConfirmed), nil)

		_, err := svc.DeleteDetail(staffContext(), "booking-1", "detail-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newBookingService(ctrl)

		m.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(model.StatusPending), nil)
		m.details.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.details.EXPECT().SoftDelete(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		_, err := svc.DeleteDetail(staffContext(), "booking-1", "detail-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
