package model

import (
	"lodge/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldBookingDate  = "booking_date"
	FieldCheckinDate  = "checkin_date"
	FieldCheckoutDate = "checkout_date"
	FieldTotalAmount  = "total_amount"
	FieldStatus       = "status"
	FieldNote         = "note"
	FieldDeleted      = "deleted"
	FieldVersion      = "version"
)

const (
	DetailTableName  = "booking_details"
	DetailEntityName = "booking_detail"

	DetailFieldID           = "id"
	DetailFieldBookingID    = "booking_id"
	DetailFieldRoomID       = "room_id"
	DetailFieldRoomPrice    = "room_price"
	DetailFieldCheckinDate  = "checkin_date"
	DetailFieldCheckoutDate = "checkout_date"
	DetailFieldBlocking     = "blocking"
	DetailFieldNote         = "note"
	DetailFieldDeleted      = "deleted"
)

// Booking is a reservation header. Its room line items live in
// BookingDetail rows that the booking exclusively owns.
type Booking struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	BookingDate  time.Time `db:"booking_date"`
	CheckinDate  time.Time `db:"checkin_date"`
	CheckoutDate time.Time `db:"checkout_date"`
	TotalAmount  float64   `db:"total_amount"`
	Status       Status    `db:"status"`
	Note         string    `db:"note"`
	Deleted      bool      `db:"deleted"`
	Version      int64     `db:"version"`
	model.Metadata
}

// BookingDetail is one reserved room within a booking. RoomPrice is a
// snapshot taken at booking time, not a live lookup. CheckinDate,
// CheckoutDate and Blocking mirror the header so the schema's exclusion
// constraint over (room_id, stay range) can see them; Blocking drops to
// false once the header leaves the active statuses.
type BookingDetail struct {
	ID           string    `db:"id"`
	BookingID    string    `db:"booking_id"`
	RoomID       string    `db:"room_id"`
	RoomPrice    float64   `db:"room_price"`
	CheckinDate  time.Time `db:"checkin_date"`
	CheckoutDate time.Time `db:"checkout_date"`
	Blocking     bool      `db:"blocking"`
	Note         string    `db:"note"`
	Deleted      bool      `db:"deleted"`
	model.Metadata
}
