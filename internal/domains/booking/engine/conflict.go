package engine

import (
	"time"

	"roombook/internal/domains/booking/model"
	"roombook/shared/clock"
)

// HasConflict reports whether candidate overlaps any booking of roomID on date.
// Callers pass active bookings only; status is not inspected here.
func HasConflict(roomID string, date time.Time, candidate clock.Range, existing []model.Booking) bool {
	_, found := FindConflict(roomID, date, candidate, existing)

	return found
}

// FindConflict returns the first booking of roomID on date whose range overlaps candidate.
// Bookings of other rooms or other days are ignored.
func FindConflict(roomID string, date time.Time, candidate clock.Range, existing []model.Booking) (model.Booking, bool) {
	for _, booking := range existing {
		if booking.RoomID != roomID || !model.SameDate(booking.BookingDate, date) {
			continue
		}

		if candidate.Overlaps(booking.Range()) {
			return booking, true
		}
	}

	return model.Booking{}, false
}

func without(bookings []model.Booking, id string) []model.Booking {
	kept := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.ID != id {
			kept = append(kept, booking)
		}
	}

	return kept
}
