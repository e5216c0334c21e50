// Package memory keeps rooms and bookings in process memory. It implements the
// engine ledger with keyed locks and staged writes, and backs tests and seeding dry runs.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model"
	roomModel "roombook/internal/domains/room/model"
	"roombook/shared/keylock"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingExists   = errors.New("booking already exists")
)

type transaction struct {
	db            *DB
	modifications map[string]model.Booking
	expected      map[string]string
}

type DB struct {
	mu       sync.RWMutex
	locks    *keylock.Locker
	bookings map[string]model.Booking
	rooms    map[string]roomModel.Room
}

func New() *DB {
	return &DB{
		locks:    keylock.New(),
		bookings: make(map[string]model.Booking),
		rooms:    make(map[string]roomModel.Room),
	}
}

// Serialize implements engine.Ledger.
func (db *DB) Serialize(ctx context.Context, key engine.Key, wait time.Duration, fn func(ctx context.Context, tx engine.Tx) error) error {
	lockCtx := ctx

	if wait > 0 {
		var cancel context.CancelFunc

		lockCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	unlock, err := db.locks.Lock(lockCtx, key.String())
	if err != nil {
		return engine.ErrBusy
	}
	defer unlock()

	trx := &transaction{
		db:            db,
		modifications: make(map[string]model.Booking),
		expected:      make(map[string]string),
	}

	if err := fn(ctx, trx); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	for id, status := range trx.expected {
		if db.bookings[id].Status != status {
			return engine.ErrBookingChanged
		}
	}

	for id, booking := range trx.modifications {
		db.bookings[id] = booking
	}

	return nil
}

// Held returns how many callers hold or wait for key.
func (db *DB) Held(key engine.Key) int {
	return db.locks.Held(key.String())
}

// FindActiveBookings returns the non-cancelled bookings of roomID on date ordered by start time.
func (db *DB) FindActiveBookings(_ context.Context, roomID string, date time.Time) ([]model.Booking, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.activeLocked(roomID, date, nil), nil
}

func (db *DB) activeLocked(roomID string, date time.Time, staged map[string]model.Booking) []model.Booking {
	result := []model.Booking{}

	for id, booking := range db.bookings {
		if pending, ok := staged[id]; ok {
			booking = pending
		}

		if matches(booking, roomID, date) {
			result = append(result, booking)
		}
	}

	for id, booking := range staged {
		if _, ok := db.bookings[id]; !ok && matches(booking, roomID, date) {
			result = append(result, booking)
		}
	}

	slices.SortFunc(result, func(a, b model.Booking) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})

	return result
}

func matches(booking model.Booking, roomID string, date time.Time) bool {
	return booking.Active() && booking.RoomID == roomID && model.SameDate(booking.BookingDate, date)
}

// Get returns the booking with id.
func (db *DB) Get(id string) (model.Booking, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	booking, ok := db.bookings[id]

	return booking, ok
}

// Bookings returns every stored booking ordered by date and start time.
func (db *DB) Bookings() []model.Booking {
	db.mu.RLock()
	defer db.mu.RUnlock()

	result := make([]model.Booking, 0, len(db.bookings))
	for _, booking := range db.bookings {
		result = append(result, booking)
	}

	slices.SortFunc(result, func(a, b model.Booking) int {
		return cmp.Or(a.BookingDate.Compare(b.BookingDate), cmp.Compare(a.StartTime, b.StartTime), cmp.Compare(a.ID, b.ID))
	})

	return result
}

// Cancel marks the booking cancelled without taking its key.
func (db *DB) Cancel(_ context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	booking, ok := db.bookings[id]
	if !ok {
		return fmt.Errorf("cancel %s: %w", id, ErrBookingNotFound)
	}

	booking.Status = model.StatusCancelled
	db.bookings[id] = booking

	return nil
}

// SaveRoom stores or replaces a room.
func (db *DB) SaveRoom(room roomModel.Room) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.rooms[room.ID] = room
}

// Find implements engine.RoomFinder.
func (db *DB) Find(_ context.Context, id string) (roomModel.Room, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.rooms[id], nil
}

func (trx *transaction) FindActiveBookings(_ context.Context, roomID string, date time.Time) ([]model.Booking, error) {
	trx.db.mu.RLock()
	defer trx.db.mu.RUnlock()

	return trx.db.activeLocked(roomID, date, trx.modifications), nil
}

func (trx *transaction) Insert(_ context.Context, booking model.Booking) error {
	trx.db.mu.RLock()
	_, stored := trx.db.bookings[booking.ID]
	trx.db.mu.RUnlock()

	if _, staged := trx.modifications[booking.ID]; stored || staged {
		return fmt.Errorf("insert %s: %w", booking.ID, ErrBookingExists)
	}

	trx.modifications[booking.ID] = booking

	return nil
}

func (trx *transaction) Reschedule(_ context.Context, booking model.Booking, expectedStatus string) error {
	trx.db.mu.RLock()
	current, stored := trx.db.bookings[booking.ID]
	trx.db.mu.RUnlock()

	if !stored {
		return fmt.Errorf("reschedule %s: %w", booking.ID, ErrBookingNotFound)
	}

	if current.Status != expectedStatus {
		return engine.ErrBookingChanged
	}

	trx.modifications[booking.ID] = booking
	trx.expected[booking.ID] = expectedStatus

	return nil
}
