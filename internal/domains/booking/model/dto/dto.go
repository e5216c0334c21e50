package dto

import (
	"roombook/internal/domains/booking/model"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/timezone"
)

const (
	EventCreated     = "booking.created"
	EventUpdated     = "booking.updated"
	EventRescheduled = "booking.rescheduled"
	EventCancelled   = "booking.cancelled"
	EventDeleted     = "booking.deleted"
)

type CreateBookingRequest struct {
	RoomID      string `json:"room_id"      validate:"required"`
	GuestName   string `json:"guest_name"   validate:"required,max=100"`
	GuestEmail  string `json:"guest_email"  validate:"required,email,max=100"`
	GuestPhone  string `json:"guest_phone"  validate:"required,max=20"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time"   validate:"required,clock"`
	EndTime     string `json:"end_time"     validate:"required,clock"`
	Purpose     string `json:"purpose"      validate:"required,max=500"`
}

// UpdateBookingRequest edits a booking in place. Contact fields are written directly,
// a new room, date or time goes through a reschedule and Status=Cancelled through a cancel.
type UpdateBookingRequest struct {
	GuestName   string `db:"guest_name"  json:"guest_name"   validate:"omitempty,max=100"`
	GuestEmail  string `db:"guest_email" json:"guest_email"  validate:"omitempty,email,max=100"`
	GuestPhone  string `db:"guest_phone" json:"guest_phone"  validate:"omitempty,max=20"`
	Purpose     string `db:"purpose"     json:"purpose"      validate:"omitempty,max=500"`
	RoomID      string `json:"room_id"      validate:"omitempty"`
	BookingDate string `json:"booking_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string `json:"start_time"   validate:"omitempty,clock"`
	EndTime     string `json:"end_time"     validate:"omitempty,clock"`
	Status      string `json:"status"       validate:"omitempty,oneof=Confirmed Pending Cancelled"`
}

// Reschedules reports whether the request moves the booking in time or space.
func (u *UpdateBookingRequest) Reschedules() bool {
	return u.RoomID != "" || u.BookingDate != "" || u.StartTime != "" || u.EndTime != ""
}

// HasContactChanges reports whether any directly written field is set.
func (u *UpdateBookingRequest) HasContactChanges() bool {
	return u.GuestName != "" || u.GuestEmail != "" || u.GuestPhone != "" || u.Purpose != ""
}

// Merge fills the unset scheduling fields of u from the current booking.
func (u *UpdateBookingRequest) Merge(current model.Booking) CreateBookingRequest {
	req := CreateBookingRequest{
		RoomID:      current.RoomID,
		GuestName:   current.GuestName,
		GuestEmail:  current.GuestEmail,
		GuestPhone:  current.GuestPhone,
		BookingDate: current.BookingDate.Format(constant.DateOnlyFormat),
		StartTime:   current.StartTime.Clock24(),
		EndTime:     current.EndTime.Clock24(),
		Purpose:     current.Purpose,
	}

	setIfNotEmpty(&req.RoomID, u.RoomID)
	setIfNotEmpty(&req.GuestName, u.GuestName)
	setIfNotEmpty(&req.GuestEmail, u.GuestEmail)
	setIfNotEmpty(&req.GuestPhone, u.GuestPhone)
	setIfNotEmpty(&req.BookingDate, u.BookingDate)
	setIfNotEmpty(&req.StartTime, u.StartTime)
	setIfNotEmpty(&req.EndTime, u.EndTime)
	setIfNotEmpty(&req.Purpose, u.Purpose)

	return req
}

func setIfNotEmpty(target *string, value string) {
	if value != constant.Empty {
		*target = value
	}
}

type BookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	GuestName   string `json:"guest_name"`
	GuestEmail  string `json:"guest_email"`
	GuestPhone  string `json:"guest_phone"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Purpose     string `json:"purpose"`
	Status      string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.BookingDate = model.BookingDate.Format(constant.DateOnlyFormat)
	r.StartTime = model.StartTime.String()
	r.EndTime = model.EndTime.String()
	r.Purpose = model.Purpose
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
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
		r.Bookings[i].FromModel(mod)
	}
}

type TimeSlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

func (r *TimeSlotResponse) FromModel(slot model.TimeSlot) {
	r.StartTime = slot.Range.Start.String()
	r.EndTime = slot.Range.End.String()
	r.Label = slot.Range.String()
	r.Available = slot.Available
}

type AvailabilityResponse struct {
	RoomID      string             `json:"room_id"`
	Date        string             `json:"date"`
	Granularity int                `json:"granularity"`
	Bookings    []BookingResponse  `json:"bookings"`
	Slots       []TimeSlotResponse `json:"slots"`
}

func (r *AvailabilityResponse) FromModels(roomID string, granularity int, bookings []model.Booking, slots []model.TimeSlot, date string) {
	r.RoomID = roomID
	r.Date = date
	r.Granularity = granularity

	r.Bookings = make([]BookingResponse, len(bookings))
	for i, mod := range bookings {
		r.Bookings[i].FromModel(mod)
	}

	r.Slots = make([]TimeSlotResponse, len(slots))
	for i, slot := range slots {
		r.Slots[i].FromModel(slot)
	}
}

// Event is the payload published for every booking state change.
type Event struct {
	Type       string          `json:"type"`
	Booking    BookingResponse `json:"booking"`
	OccurredAt string          `json:"occurred_at"`
}

func NewEvent(eventType string, booking model.Booking) Event {
	event := Event{
		Type:       eventType,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
	event.Booking.FromModel(booking)

	return event
}
