package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/logger"
	gRepo "roombook/shared/repository"
)

const (
	queryLockTimeout  = "SET LOCAL lock_timeout = %d"
	queryAdvisoryLock = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

	argExpectedStatus = "expected_status"
)

type Booking interface {
	engine.Ledger
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	FindActiveBookings(ctx context.Context, roomID string, date time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ActiveFilter selects the non-cancelled bookings of a room on a date.
func ActiveFilter(roomID string, date time.Time) gDto.FilterGroup {
	return gDto.And(
		gDto.Where(model.TableName, model.FieldRoomID, gDto.FilterOperatorEq, roomID),
		gDto.Where(model.TableName, model.FieldBookingDate, gDto.FilterOperatorEq, date.Format(constant.DateOnlyFormat)),
		gDto.Where(model.TableName, model.FieldStatus, gDto.FilterOperatorNotEq, model.StatusCancelled),
	)
}

func activeParams() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: "ASC"}
}

func (r *repositoryImpl) FindActiveBookings(ctx context.Context, roomID string, date time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindActiveBookings")
	defer scope.End()

	return r.GetAll(ctx, activeParams(), ActiveFilter(roomID, date)) //nolint:wrapcheck
}

// Serialize implements engine.Ledger with a transaction scoped advisory lock on the key.
// Postgres releases the lock on commit or rollback.
func (r *repositoryImpl) Serialize(ctx context.Context, key engine.Key, wait time.Duration, fn func(ctx context.Context, tx engine.Tx) error) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Serialize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.key", key.String())

	sqltx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := sqltx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Str("key", key.String()).Msg("failed to rollback booking transaction")
		}
	}()

	if wait > 0 {
		if _, err = sqltx.ExecContext(ctx, fmt.Sprintf(queryLockTimeout, wait.Milliseconds())); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	if _, err = sqltx.ExecContext(ctx, queryAdvisoryLock, key.String()); err != nil {
		if busy(ctx, err) {
			log.Warn().Str("key", key.String()).Dur("wait", wait).Msg("booking key still locked, giving up")

			return engine.ErrBusy
		}

		return fmt.Errorf("failed to lock booking key: %w", err)
	}

	if err = fn(ctx, &ledgerTx{repo: r, sqltx: sqltx}); err != nil {
		return err
	}

	if err = sqltx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit booking transaction: %w", err))
	}

	return nil
}

func busy(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == constant.PqErrorCodeLockNotAvailable || pqErr.Code == constant.PqErrorCodeQueryCanceled
	}

	return false
}

// classify maps constraint violations raised by the schema onto engine errors.
// lock_timeout stays in force after the advisory lock, so a row lock wait that runs
// out is reported as ErrBusy too.
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case constant.PqErrorCodeExclusionViolation:
		return &engine.SlotConflictError{}
	case constant.PqErrorCodeFkViolation:
		return engine.ErrRoomNotFound
	case constant.PqErrorCodeLockNotAvailable:
		return engine.ErrBusy
	}

	return err
}

type ledgerTx struct {
	repo  *repositoryImpl
	sqltx *sqlx.Tx
}

func (tx *ledgerTx) FindActiveBookings(ctx context.Context, roomID string, date time.Time) ([]model.Booking, error) {
	bookings, err := tx.repo.On(tx.sqltx).GetAll(ctx, activeParams(), ActiveFilter(roomID, date))

	return bookings, classify(err)
}

func (tx *ledgerTx) Insert(ctx context.Context, booking model.Booking) error {
	return classify(tx.repo.On(tx.sqltx).Insert(ctx, booking))
}

// Reschedule compares and sets on status so a cancel committed without the key is not undone.
func (tx *ledgerTx) Reschedule(ctx context.Context, booking model.Booking, expectedStatus string) error {
	fields := map[string]any{
		model.FieldRoomID:        booking.RoomID,
		model.FieldGuestName:     booking.GuestName,
		model.FieldGuestEmail:    booking.GuestEmail,
		model.FieldGuestPhone:    booking.GuestPhone,
		model.FieldPurpose:       booking.Purpose,
		model.FieldBookingDate:   booking.BookingDate.Format(constant.DateOnlyFormat),
		model.FieldStartTime:     booking.StartTime,
		model.FieldEndTime:       booking.EndTime,
		model.FieldStatus:        booking.Status,
		constant.FieldModifiedAt: booking.ModifiedAt,
		constant.FieldModifiedBy: booking.ModifiedBy,
	}

	filter := gDto.And(
		gDto.Where(model.TableName, model.FieldID, gDto.FilterOperatorEq, booking.ID),
		gDto.Filter{
			Table:    model.TableName,
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    expectedStatus,
			ArgName:  argExpectedStatus,
		},
	)

	rows, err := tx.repo.On(tx.sqltx).UpdateCount(ctx, fields, filter)
	if err != nil {
		return classify(err)
	}

	if rows == 0 {
		return engine.ErrBookingChanged
	}

	return nil
}
