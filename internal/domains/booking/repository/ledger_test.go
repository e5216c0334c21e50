package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "roombook/infras/otel/mocks"
	"roombook/infras/postgres"
	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/repository"
	"roombook/shared/clock"
)

var (
	ledgerDay = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ledgerKey = engine.Key{RoomID: "room-r", Date: ledgerDay}

	lockTimeoutSQL   = regexp.QuoteMeta("SET LOCAL lock_timeout = 250")
	advisoryLockSQL  = regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))")
	rescheduleSQL    = `UPDATE room_bookings SET .+ WHERE \(room_bookings\.id = \$\d+ AND room_bookings\.status = \$\d+\)`
	ledgerLockWait   = 250 * time.Millisecond
	noRowsAffected   = sqlmock.NewResult(0, 0)
	oneRowAffected   = sqlmock.NewResult(0, 1)
	rescheduledSlots = clock.Range{Start: 840, End: 900}
)

func newLedger(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, otelMocks.NewOtel()), mock
}

func expectLocked(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(lockTimeoutSQL).WillReturnResult(noRowsAffected)
	mock.ExpectExec(advisoryLockSQL).WithArgs(ledgerKey.String()).WillReturnResult(noRowsAffected)
}

func rescheduled() model.Booking {
	return model.Booking{
		ID:          "b-1",
		RoomID:      "room-r",
		BookingDate: ledgerDay,
		StartTime:   rescheduledSlots.Start,
		EndTime:     rescheduledSlots.End,
		Status:      model.StatusConfirmed,
	}
}

func TestSerialize_Commits(t *testing.T) {
	ledger, mock := newLedger(t)

	expectLocked(mock)
	mock.ExpectCommit()

	called := false
	err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(context.Context, engine.Tx) error {
		called = true

		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestSerialize_RollsBackWhenFnFails(t *testing.T) {
	ledger, mock := newLedger(t)

	expectLocked(mock)
	mock.ExpectRollback()

	err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(context.Context, engine.Tx) error {
		return &engine.SlotConflictError{BookingID: "b-0"}
	})

	var conflict *engine.SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "b-0", conflict.BookingID)
}

func TestSerialize_BusyWhenLockTimesOut(t *testing.T) {
	ledger, mock := newLedger(t)

	mock.ExpectBegin()
	mock.ExpectExec(lockTimeoutSQL).WillReturnResult(noRowsAffected)
	mock.ExpectExec(advisoryLockSQL).WithArgs(ledgerKey.String()).WillReturnError(&pq.Error{Code: "55P03"})
	mock.ExpectRollback()

	called := false
	err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(context.Context, engine.Tx) error {
		called = true

		return nil
	})

	assert.ErrorIs(t, err, engine.ErrBusy)
	assert.False(t, called)
}

func TestSerialize_ClassifiesCommitFailure(t *testing.T) {
	ledger, mock := newLedger(t)

	expectLocked(mock)
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "23P01"})

	err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(context.Context, engine.Tx) error {
		return nil
	})

	var conflict *engine.SlotConflictError
	assert.True(t, errors.As(err, &conflict))
}

func TestSerialize_Reschedule(t *testing.T) {
	t.Run("status unchanged", func(t *testing.T) {
		ledger, mock := newLedger(t)

		expectLocked(mock)
		mock.ExpectExec(rescheduleSQL).WillReturnResult(oneRowAffected)
		mock.ExpectCommit()

		err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(ctx context.Context, tx engine.Tx) error {
			return tx.Reschedule(ctx, rescheduled(), model.StatusConfirmed)
		})

		assert.NoError(t, err)
	})

	t.Run("cancelled meanwhile", func(t *testing.T) {
		ledger, mock := newLedger(t)

		expectLocked(mock)
		mock.ExpectExec(rescheduleSQL).WillReturnResult(noRowsAffected)
		mock.ExpectRollback()

		err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(ctx context.Context, tx engine.Tx) error {
			return tx.Reschedule(ctx, rescheduled(), model.StatusConfirmed)
		})

		assert.ErrorIs(t, err, engine.ErrBookingChanged)
	})

	t.Run("row lock wait runs out", func(t *testing.T) {
		ledger, mock := newLedger(t)

		expectLocked(mock)
		mock.ExpectExec(rescheduleSQL).WillReturnError(&pq.Error{Code: "55P03"})
		mock.ExpectRollback()

		err := ledger.Serialize(context.Background(), ledgerKey, ledgerLockWait, func(ctx context.Context, tx engine.Tx) error {
			return tx.Reschedule(ctx, rescheduled(), model.StatusConfirmed)
		})

		assert.ErrorIs(t, err, engine.ErrBusy)
	})
}
