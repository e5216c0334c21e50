package engine

//go:generate go run go.uber.org/mock/mockgen -source=./ledger.go -destination=./mocks/ledger_mock.go -package=mocks

import (
	"context"
	"time"

	"roombook/internal/domains/booking/model"
	roomModel "roombook/internal/domains/room/model"
	"roombook/shared/constant"
)

const keySeparator = "|"

// Key identifies the bookings of one room on one calendar day.
type Key struct {
	RoomID string
	Date   time.Time
}

func (k Key) String() string {
	return k.RoomID + keySeparator + k.Date.Format(constant.DateOnlyFormat)
}

// Tx is the view of storage available while a Key is held.
// Reschedule writes booking only while its stored status still equals expectedStatus
// and returns ErrBookingChanged otherwise. Cancellation does not hold the key.
type Tx interface {
	FindActiveBookings(ctx context.Context, roomID string, date time.Time) ([]model.Booking, error)
	Insert(ctx context.Context, booking model.Booking) error
	Reschedule(ctx context.Context, booking model.Booking, expectedStatus string) error
}

// Ledger runs fn with exclusive access to the bookings under key. It waits at most
// wait for the key and returns ErrBusy when the wait runs out. Writes made through
// the Tx are applied only when fn returns nil, and fn's error is returned unchanged.
type Ledger interface {
	Serialize(ctx context.Context, key Key, wait time.Duration, fn func(ctx context.Context, tx Tx) error) error
}

// RoomFinder returns the zero Room when id does not exist.
type RoomFinder interface {
	Find(ctx context.Context, id string) (roomModel.Room, error)
}
