package engine

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/shared/clock"
	"roombook/shared/constant"
	"roombook/shared/failure"
	gModel "roombook/shared/model"
	"roombook/shared/validator"
)

const (
	fieldBookingDate = "booking_date"
	fieldStartTime   = "start_time"
	fieldEndTime     = "end_time"
)

// Request is a booking request parsed and validated at the boundary.
type Request struct {
	RoomID     string
	GuestName  string
	GuestEmail string
	GuestPhone string
	Purpose    string
	Date       time.Time
	Range      clock.Range
}

// ParseRequest validates every field of req and returns all violations at once.
func ParseRequest(req dto.CreateBookingRequest) (Request, error) {
	fields := validator.FieldErrors(&req)

	parsed := Request{
		RoomID:     strings.TrimSpace(req.RoomID),
		GuestName:  strings.TrimSpace(req.GuestName),
		GuestEmail: strings.TrimSpace(req.GuestEmail),
		GuestPhone: strings.TrimSpace(req.GuestPhone),
		Purpose:    strings.TrimSpace(req.Purpose),
	}

	if !rejected(fields, fieldBookingDate) {
		date, err := time.ParseInLocation(constant.DateOnlyFormat, req.BookingDate, time.UTC)
		if err != nil {
			fields = append(fields, failure.FieldError{Field: fieldBookingDate, Message: failure.InvalidDateParam.Message})
		}

		parsed.Date = date
	}

	if !rejected(fields, fieldStartTime) && !rejected(fields, fieldEndTime) {
		start, startErr := clock.Parse(req.StartTime)
		end, endErr := clock.ParseEnd(req.EndTime)

		if startErr == nil && endErr == nil {
			rng, err := clock.NewRange(start, end)
			if err != nil {
				fields = append(fields, failure.FieldError{Field: fieldEndTime, Message: "end_time must be after start_time"})
			}

			parsed.Range = rng
		}
	}

	if len(fields) > 0 {
		return Request{}, &ValidationError{Fields: fields}
	}

	return parsed, nil
}

func rejected(fields []failure.FieldError, name string) bool {
	return slices.ContainsFunc(fields, func(field failure.FieldError) bool {
		return field.Field == name
	})
}

// Booking builds the confirmed booking that Create persists.
func (r Request) Booking(now time.Time) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		RoomID:      r.RoomID,
		GuestName:   r.GuestName,
		GuestEmail:  r.GuestEmail,
		GuestPhone:  r.GuestPhone,
		BookingDate: r.Date,
		StartTime:   r.Range.Start,
		EndTime:     r.Range.End,
		Purpose:     r.Purpose,
		Status:      model.StatusConfirmed,
		Metadata:    gModel.NewMetadata(r.GuestEmail, now),
	}
}

// Apply moves current to the requested room, date and range.
func (r Request) Apply(current model.Booking, now time.Time) model.Booking {
	current.RoomID = r.RoomID
	current.GuestName = r.GuestName
	current.GuestEmail = r.GuestEmail
	current.GuestPhone = r.GuestPhone
	current.Purpose = r.Purpose
	current.BookingDate = r.Date
	current.StartTime = r.Range.Start
	current.EndTime = r.Range.End
	current.ModifiedAt = now
	current.ModifiedBy = r.GuestEmail

	if !current.Active() {
		current.Status = model.StatusConfirmed
	}

	return current
}

// Key is the serialization scope of the request.
func (r Request) Key() Key {
	return Key{RoomID: r.RoomID, Date: r.Date}
}
