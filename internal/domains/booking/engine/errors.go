package engine

import (
	"errors"
	"net/http"

	"roombook/shared/failure"
)

var (
	// ErrRoomNotFound is returned when the referenced room is absent or inactive.
	ErrRoomNotFound = &failure.Failure{Code: http.StatusNotFound, Message: "room not found"}

	// ErrBusy is returned when the room schedule stayed locked past the wait budget.
	// Nothing was written; the caller may retry.
	ErrBusy = &failure.Failure{Code: http.StatusServiceUnavailable, Message: "room schedule is busy, retry later"}

	// ErrBookingChanged is returned when the booking's status moved between the read
	// and the rescheduling write, e.g. a concurrent cancel.
	ErrBookingChanged = &failure.Failure{Code: http.StatusConflict, Message: "booking was changed by another request, reload and retry"}
)

// ValidationError lists every rejected field of a booking request.
type ValidationError struct {
	Fields []failure.FieldError
}

func (e *ValidationError) Error() string {
	return e.Unwrap().Error()
}

func (e *ValidationError) Unwrap() error {
	return failure.Validation(e.Fields)
}

// SlotConflictError is returned when the requested range overlaps an active booking.
// BookingID is empty when the overlap was caught by the storage constraint.
type SlotConflictError struct {
	BookingID string
}

func (e *SlotConflictError) Error() string {
	if e.BookingID == "" {
		return "time slot is already booked"
	}

	return "time slot is already booked by " + e.BookingID
}

func (e *SlotConflictError) Unwrap() error {
	return failure.Conflict(e.Error())
}

// StorageError hides a persistence failure from the caller. The cause is kept for logs.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure"
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsOutcome reports whether err is one of the typed results of a booking attempt.
func IsOutcome(err error) bool {
	var (
		validation *ValidationError
		conflict   *SlotConflictError
		storage    *StorageError
	)

	return errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrBookingChanged) ||
		errors.As(err, &validation) ||
		errors.As(err, &conflict) ||
		errors.As(err, &storage)
}

func storageError(err error) error {
	if err == nil || IsOutcome(err) {
		return err
	}

	return &StorageError{Err: err}
}
