package model

import (
	"time"

	"roombook/shared/clock"
	"roombook/shared/model"
)

const (
	TableName  = "room_bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldGuestName   = "guest_name"
	FieldGuestEmail  = "guest_email"
	FieldGuestPhone  = "guest_phone"
	FieldBookingDate = "booking_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldPurpose     = "purpose"
	FieldStatus      = "status"
	FieldCreatedBy   = "created_by"
)

const (
	StatusConfirmed = "Confirmed"
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
)

type Booking struct {
	ID          string       `db:"id"`
	RoomID      string       `db:"room_id"`
	GuestName   string       `db:"guest_name"`
	GuestEmail  string       `db:"guest_email"`
	GuestPhone  string       `db:"guest_phone"`
	BookingDate time.Time    `db:"booking_date"`
	StartTime   clock.Minute `db:"start_time"`
	EndTime     clock.Minute `db:"end_time"`
	Purpose     string       `db:"purpose"`
	Status      string       `db:"status"`
	model.Metadata
}

func (b Booking) Range() clock.Range {
	return clock.Range{Start: b.StartTime, End: b.EndTime}
}

// Active reports whether the booking still holds its time range.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}

// TimeSlot is a bookable window derived for a room and date. It is never stored.
type TimeSlot struct {
	Range     clock.Range
	Available bool
}

// SameDate compares calendar days, ignoring the clock and location of each value.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
