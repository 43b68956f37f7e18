package dto_test

import (
	"testing"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/shared/constant"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		UserID:       "user-1",
		CheckinDate:  "2025-12-24",
		CheckoutDate: "2025-12-26",
		Note:         "anniversary stay",
		TotalAmount:  450,
		Details: []dto.AddDetailRequest{
			{RoomID: "room-101", RoomPrice: 225},
			{RoomID: "room-102", RoomPrice: 225},
		},
	}

	userID := "staff-1"
	booking, details, err := req.ToModel(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.UserID, booking.UserID)
	assert.Equal(t, "2025-12-24", booking.CheckinDate.Format(constant.CalendarDateFormat))
	assert.Equal(t, "2025-12-26", booking.CheckoutDate.Format(constant.CalendarDateFormat))
	assert.Equal(t, req.TotalAmount, booking.TotalAmount)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.EqualValues(t, 1, booking.Version)
	assert.Equal(t, userID, booking.CreatedBy)
	assert.Equal(t, userID, booking.ModifiedBy)
	assert.False(t, booking.BookingDate.IsZero(), "expected BookingDate to default to today")

	assert.Len(t, details, 2)
	for i, detail := range details {
		assert.NotEmpty(t, detail.ID)
		assert.Equal(t, booking.ID, detail.BookingID)
		assert.Equal(t, req.Details[i].RoomID, detail.RoomID)
		assert.Equal(t, req.Details[i].RoomPrice, detail.RoomPrice)
		assert.Equal(t, booking.CheckinDate, detail.CheckinDate)
		assert.Equal(t, booking.CheckoutDate, detail.CheckoutDate)
		assert.True(t, detail.Blocking, "pending parent should block its rooms")
	}
}

func TestCreateBookingRequest_ToModel_ExplicitBookingDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		UserID:       "user-1",
		BookingDate:  "2025-12-01",
		CheckinDate:  "2025-12-24",
		CheckoutDate: "2025-12-26",
		TotalAmount:  450,
	}

	booking, _, err := req.ToModel("staff-1")

	assert.NoError(t, err)
	assert.Equal(t, "2025-12-01", booking.BookingDate.Format(constant.CalendarDateFormat))
}

func TestCreateBookingRequest_ToModel_MalformedDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		UserID:       "user-1",
		CheckinDate:  "24/12/2025",
		CheckoutDate: "2025-12-26",
		TotalAmount:  450,
	}

	_, _, err := req.ToModel("staff-1")

	assert.Error(t, err)
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	meta := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  "staff-1",
		ModifiedBy: "staff-1",
	}

	booking := model.Booking{
		ID:           "booking-1",
		UserID:       "user-1",
		BookingDate:  timezone.Today(),
		CheckinDate:  timezone.Today().AddDate(0, 0, 7),
		CheckoutDate: timezone.Today().AddDate(0, 0, 9),
		TotalAmount:  450,
		Status:       model.StatusConfirmed,
		Note:         "anniversary stay",
		Metadata:     meta,
	}

	details := []model.BookingDetail{
		{
			ID:        "detail-1",
			BookingID: "booking-1",
			RoomID:    "room-101",
			RoomPrice: 225,
			Metadata:  meta,
		},
	}

	var response dto.BookingResponse
	response.FromModel(booking, details)

	assert.Equal(t, booking.ID, response.ID)
	assert.Equal(t, booking.UserID, response.UserID)
	assert.Equal(t, booking.CheckinDate.Format(constant.CalendarDateFormat), response.CheckinDate)
	assert.Equal(t, booking.CheckoutDate.Format(constant.CalendarDateFormat), response.CheckoutDate)
	assert.Equal(t, "confirmed", response.Status)
	assert.Equal(t, booking.Note, response.Note)
	assert.Len(t, response.Details, 1)
	assert.Equal(t, "room-101", response.Details[0].RoomID)
	assert.Empty(t, response.Warning)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	bookings := []model.Booking{
		{
			ID:           "booking-1",
			UserID:       "user-1",
			BookingDate:  now,
			CheckinDate:  now.AddDate(0, 0, 7),
			CheckoutDate: now.AddDate(0, 0, 9),
			Status:       model.StatusPending,
			Metadata:     gModel.Metadata{CreatedAt: now, ModifiedAt: now},
		},
		{
			ID:           "booking-2",
			UserID:       "user-2",
			BookingDate:  now,
			CheckinDate:  now.AddDate(0, 0, 10),
			CheckoutDate: now.AddDate(0, 0, 12),
			Status:       model.StatusConfirmed,
			Metadata:     gModel.Metadata{CreatedAt: now, ModifiedAt: now},
		},
	}

	totalData := 15
	limit := 10

	var response dto.GetBookingsResponse
	response.FromModels(bookings, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Bookings, len(bookings))

	for i, booking := range response.Bookings {
		assert.Equal(t, bookings[i].ID, booking.ID)
		assert.Equal(t, bookings[i].Status.String(), booking.Status)
		assert.Empty(t, booking.Details, "list rows carry no line items")
	}
}
