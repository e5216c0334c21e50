// Package engine decides whether a booking may take a room for a time range and
// records it so that no two active bookings of a room overlap on the same day.
package engine

import (
	"context"
	"fmt"
	"time"

	"roombook/config"
	"roombook/internal/domains/booking/model"
	"roombook/shared/timezone"
)

const (
	defaultLockTimeout = 3 * time.Second
)

type Engine struct {
	ledger      Ledger
	rooms       RoomFinder
	lockTimeout time.Duration
	now         func() time.Time
}

func New(ledger Ledger, rooms RoomFinder, cfg *config.Config) *Engine {
	lockTimeout := time.Duration(cfg.App.Booking.LockTimeoutMS) * time.Millisecond
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}

	return &Engine{
		ledger:      ledger,
		rooms:       rooms,
		lockTimeout: lockTimeout,
		now:         timezone.Now,
	}
}

// Create records req as a confirmed booking. The conflict check and the insert run
// while the room and date are held, so concurrent overlapping requests cannot both pass.
func (e *Engine) Create(ctx context.Context, req Request) (model.Booking, error) {
	if err := e.checkRoom(ctx, req.RoomID); err != nil {
		return model.Booking{}, err
	}

	booking := req.Booking(e.now())

	err := e.ledger.Serialize(ctx, req.Key(), e.lockTimeout, func(ctx context.Context, tx Tx) error {
		existing, err := tx.FindActiveBookings(ctx, req.RoomID, req.Date)
		if err != nil {
			return storageError(err)
		}

		if conflict, found := FindConflict(req.RoomID, req.Date, req.Range, existing); found {
			return &SlotConflictError{BookingID: conflict.ID}
		}

		return storageError(tx.Insert(ctx, booking))
	})
	if err != nil {
		return model.Booking{}, storageError(err)
	}

	return booking, nil
}

// Reschedule moves current to the room, date and range of req under the target key.
// The booking never conflicts with itself. A cancelled booking becomes confirmed again.
// ErrBookingChanged is returned when current's status is stale.
func (e *Engine) Reschedule(ctx context.Context, current model.Booking, req Request) (model.Booking, error) {
	if err := e.checkRoom(ctx, req.RoomID); err != nil {
		return model.Booking{}, err
	}

	updated := req.Apply(current, e.now())

	err := e.ledger.Serialize(ctx, req.Key(), e.lockTimeout, func(ctx context.Context, tx Tx) error {
		existing, err := tx.FindActiveBookings(ctx, req.RoomID, req.Date)
		if err != nil {
			return storageError(err)
		}

		if conflict, found := FindConflict(req.RoomID, req.Date, req.Range, without(existing, current.ID)); found {
			return &SlotConflictError{BookingID: conflict.ID}
		}

		return storageError(tx.Reschedule(ctx, updated, current.Status))
	})
	if err != nil {
		return model.Booking{}, storageError(err)
	}

	return updated, nil
}

func (e *Engine) checkRoom(ctx context.Context, roomID string) error {
	room, err := e.rooms.Find(ctx, roomID)
	if err != nil {
		return &StorageError{Err: fmt.Errorf("failed to find room %s: %w", roomID, err)}
	}

	if !room.Bookable() {
		return ErrRoomNotFound
	}

	return nil
}
