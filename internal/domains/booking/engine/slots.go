package engine

import (
	"iter"
	"slices"
	"time"

	"roombook/internal/domains/booking/model"
	"roombook/shared/clock"
)

// GenerateSlots yields the fixed-width slots of the business day in ascending order,
// each marked available unless it overlaps one of existing. A trailing window shorter
// than granularity is not offered. The sequence holds no state and may be ranged over
// any number of times.
func GenerateSlots(roomID string, date time.Time, granularity int, businessStart, businessEnd clock.Minute, existing []model.Booking) iter.Seq[model.TimeSlot] {
	return func(yield func(model.TimeSlot) bool) {
		if granularity <= 0 || !businessStart.Valid() || !businessEnd.Valid() {
			return
		}

		for cursor := businessStart; granularity <= int(businessEnd-cursor); cursor = cursor.Add(granularity) {
			slot := clock.Range{Start: cursor, End: cursor.Add(granularity)}

			if !yield(model.TimeSlot{Range: slot, Available: !HasConflict(roomID, date, slot, existing)}) {
				return
			}
		}
	}
}

func Collect(slots iter.Seq[model.TimeSlot]) []model.TimeSlot {
	return slices.Collect(slots)
}
