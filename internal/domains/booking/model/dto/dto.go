package dto

import (
	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
	"time"

	"github.com/google/uuid"
)

// Field names follow the wire shapes the back-office clients already send.
type CreateBookingRequest struct {
	UserID       string             `json:"UserId"       validate:"required"`
	BookingDate  string             `json:"BookingDate"  validate:"omitempty,calendardate"`
	CheckinDate  string             `json:"CheckinDate"  validate:"required,calendardate"`
	CheckoutDate string             `json:"CheckoutDate" validate:"required,calendardate"`
	Note         string             `json:"Note"         validate:"omitempty"`
	TotalAmount  float64            `json:"TotalAmount"  validate:"required,gt=0"`
	Status       string             `json:"Status"       validate:"omitempty,oneof=pending"`
	Details      []AddDetailRequest `json:"Details"      validate:"omitempty,dive"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, []model.BookingDetail, error) {
	checkin, err := time.ParseInLocation(constant.CalendarDateFormat, c.CheckinDate, timezone.Location())
	if err != nil {
		return model.Booking{}, nil, err
	}

	checkout, err := time.ParseInLocation(constant.CalendarDateFormat, c.CheckoutDate, timezone.Location())
	if err != nil {
		return model.Booking{}, nil, err
	}

	bookingDate := timezone.Today()

	if c.BookingDate != "" {
		bookingDate, err = time.ParseInLocation(constant.CalendarDateFormat, c.BookingDate, timezone.Location())
		if err != nil {
			return model.Booking{}, nil, err
		}
	}

	meta := gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  user,
		ModifiedBy: user,
	}

	booking := model.Booking{
		ID:           uuid.NewString(),
		UserID:       c.UserID,
		BookingDate:  bookingDate,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		TotalAmount:  c.TotalAmount,
		Status:       model.StatusPending,
		Note:         c.Note,
		Version:      1,
		Metadata:     meta,
	}

	details := make([]model.BookingDetail, len(c.Details))
	for i, d := range c.Details {
		details[i] = d.ToModel(booking, user)
	}

	return booking, details, nil
}

type UpdateBookingRequest struct {
	CheckinDate  string  `json:"CheckinDate"  validate:"omitempty,calendardate"`
	CheckoutDate string  `json:"CheckoutDate" validate:"omitempty,calendardate"`
	Note         string  `db:"note"          json:"Note"        validate:"omitempty"`
	TotalAmount  float64 `db:"total_amount"  json:"TotalAmount" validate:"omitempty,gt=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed checked_in checked_out cancelled completed"`
}

type AddDetailRequest struct {
	RoomID    string  `json:"RoomId"    validate:"required"`
	RoomPrice float64 `json:"RoomPrice" validate:"required,gt=0"`
	Note      string  `json:"Note"      validate:"omitempty"`
}

// ToModel snapshots the parent's stay range and blocking state onto the line
// item so the exclusion constraint covers it.
func (a *AddDetailRequest) ToModel(booking model.Booking, user string) model.BookingDetail {
	return model.BookingDetail{
		ID:           uuid.NewString(),
		BookingID:    booking.ID,
		RoomID:       a.RoomID,
		RoomPrice:    a.RoomPrice,
		CheckinDate:  booking.CheckinDate,
		CheckoutDate: booking.CheckoutDate,
		Blocking:     booking.Status.IsActive(),
		Note:         a.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDetailRequest struct {
	RoomPrice float64 `db:"room_price" json:"RoomPrice" validate:"omitempty,gt=0"`
	Note      string  `db:"note"       json:"Note"      validate:"omitempty"`
}

type CreateBookingResponse struct {
	ID      string `json:"id"`
	Warning string `json:"warning,omitempty"`
}

type MutationResponse struct {
	Warning string `json:"warning,omitempty"`
}

type BookingDetailResponse struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"RoomId"`
	RoomPrice float64 `json:"RoomPrice"`
	Note      string  `json:"Note"`
	gDto.Metadata
}

func (r *BookingDetailResponse) FromModel(model model.BookingDetail) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomPrice = model.RoomPrice
	r.Note = model.Note
	r.Metadata.FromModel(model.Metadata)
}

type BookingResponse struct {
	ID           string                  `json:"id"`
	UserID       string                  `json:"UserId"`
	BookingDate  string                  `json:"BookingDate"`
	CheckinDate  string                  `json:"CheckinDate"`
	CheckoutDate string                  `json:"CheckoutDate"`
	TotalAmount  float64                 `json:"TotalAmount"`
	Status       string                  `json:"Status"`
	Note         string                  `json:"Note"`
	Details      []BookingDetailResponse `json:"Details"`
	Warning      string                  `json:"warning,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, details []model.BookingDetail) {
	r.ID = booking.ID
	r.UserID = booking.UserID
	r.BookingDate = booking.BookingDate.Format(constant.CalendarDateFormat)
	r.CheckinDate = booking.CheckinDate.Format(constant.CalendarDateFormat)
	r.CheckoutDate = booking.CheckoutDate.Format(constant.CalendarDateFormat)
	r.TotalAmount = booking.TotalAmount
	r.Status = booking.Status.String()
	r.Note = booking.Note
	r.Metadata.FromModel(booking.Metadata)

	r.Details = make([]BookingDetailResponse, len(details))
	for i, d := range details {
		r.Details[i].FromModel(d)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}
