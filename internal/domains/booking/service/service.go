package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/repository"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/clock"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

var (
	defaultBusinessStart = clock.MustParse("8:00 AM")
	defaultBusinessEnd   = clock.MustParse("8:00 PM")
)

const defaultSlotMinutes = 60

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByEmail(ctx context.Context, email string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, roomID, date string, granularity int) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo          repository.Booking
	rooms         engine.RoomFinder
	engine        *engine.Engine
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	kafka         kafka.Client
	businessStart clock.Minute
	businessEnd   clock.Minute
}

func New(
	repo repository.Booking,
	rooms engine.RoomFinder,
	engine *engine.Engine,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	start, end := businessHours(cfg)

	return &serviceImpl{
		repo:          repo,
		rooms:         rooms,
		engine:        engine,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		kafka:         kafka,
		businessStart: start,
		businessEnd:   end,
	}
}

func businessHours(cfg *config.Config) (clock.Minute, clock.Minute) {
	start, err := clock.Parse(cfg.App.Booking.BusinessStart)
	if err != nil {
		log.Warn().Err(err).Msg("invalid business start, using default")

		start = defaultBusinessStart
	}

	end, err := clock.ParseEnd(cfg.App.Booking.BusinessEnd)
	if err != nil {
		log.Warn().Err(err).Msg("invalid business end, using default")

		end = defaultBusinessEnd
	}

	if start >= end {
		log.Warn().Str("start", start.String()).Str("end", end.String()).Msg("business hours are empty, using defaults")

		return defaultBusinessStart, defaultBusinessEnd
	}

	return start, end
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	parsed, err := engine.ParseRequest(req)
	if err != nil {
		return res, err
	}

	booking, err := s.engine.Create(ctx, parsed)
	if err != nil {
		s.logOutcome(err, parsed.Key(), "failed to create booking")

		return res, err
	}

	log.Info().Str("id", booking.ID).Str("key", parsed.Key().String()).Str("range", parsed.Range.String()).Msg("booking created")

	res.FromModel(booking)

	s.publish(ctx, dto.EventCreated, booking)
	s.invalidate(ctx, booking.ID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// GetByEmail lists the bookings made by a guest, cancelled ones included.
func (s *serviceImpl) GetByEmail(ctx context.Context, email string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.And(gDto.Where(model.TableName, model.FieldGuestEmail, gDto.FilterOperatorEq, strings.TrimSpace(email)))

	return s.GetAll(ctx, req, filter)
}

// Update writes contact changes in place. Moving the booking to another room, date
// or range, or reviving a cancelled one, goes through the engine.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Status == model.StatusCancelled {
		if req.Reschedules() {
			return res, failure.BadRequestFromString("a cancelled booking cannot be rescheduled in the same request") // nolint:wrapcheck
		}

		if req.HasContactChanges() {
			contact := req
			contact.Status = constant.Empty

			if err = s.writeFields(ctx, contact, current); err != nil {
				return res, err
			}
		}

		return s.Cancel(ctx, id)
	}

	reactivates := req.Status != constant.Empty && !current.Active()

	var (
		updated model.Booking
		event   = dto.EventUpdated
	)

	switch {
	case req.Reschedules() || reactivates:
		parsed, parseErr := engine.ParseRequest(req.Merge(current))
		if parseErr != nil {
			return res, parseErr
		}

		updated, err = s.engine.Reschedule(ctx, current, parsed)
		if err != nil {
			s.logOutcome(err, parsed.Key(), "failed to reschedule booking")

			return res, err
		}

		event = dto.EventRescheduled

		if req.Status != constant.Empty && req.Status != updated.Status {
			if err = s.writeFields(ctx, dto.UpdateBookingRequest{Status: req.Status}, updated); err != nil {
				return res, err
			}
		}
	case req.HasContactChanges() || req.Status != constant.Empty:
		if err = s.writeFields(ctx, req, current); err != nil {
			return res, err
		}
	default:
		res.FromModel(current)

		return res, nil
	}

	updated, err = s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	s.publish(ctx, event, updated)
	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) writeFields(ctx context.Context, req dto.UpdateBookingRequest, current model.Booking) error {
	updatedFields := shared.TransformFields(req, current.GuestEmail)
	if req.Status != constant.Empty {
		updatedFields[model.FieldStatus] = req.Status
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(current.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", current.ID).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// Cancel releases the booking's range. Cancelling twice is not an error.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !current.Active() {
		res.FromModel(current)

		return res, nil
	}

	if err = s.writeFields(ctx, dto.UpdateBookingRequest{Status: model.StatusCancelled}, current); err != nil {
		return res, err
	}

	current.Status = model.StatusCancelled
	res.FromModel(current)

	log.Info().Str("id", id).Msg("booking cancelled")

	s.publish(ctx, dto.EventCancelled, current)
	s.invalidate(ctx, id)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publish(ctx, dto.EventDeleted, current)
	s.invalidate(ctx, id)

	return nil
}

// Availability lists the active bookings of a room on date and the slots of the
// business day. A granularity of zero uses the configured slot size.
func (s *serviceImpl) Availability(ctx context.Context, roomID, date string, granularity int) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := time.ParseInLocation(constant.DateOnlyFormat, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return res, failure.InvalidDateParam
	}

	if granularity < 0 || granularity > clock.MinutesPerDay {
		return res, failure.InvalidSlotParam
	}

	if granularity == 0 {
		granularity = s.cfg.App.Booking.SlotMinutes
		if granularity <= 0 {
			granularity = defaultSlotMinutes
		}
	}

	room, err := s.rooms.Find(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to find room")

		return res, fmt.Errorf("failed to find room: %w", err)
	}

	if !room.Bookable() {
		return res, engine.ErrRoomNotFound
	}

	bookings, err := s.repo.FindActiveBookings(ctx, roomID, day)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to get room bookings")

		return res, fmt.Errorf("failed to get room bookings: %w", err)
	}

	slots := engine.Collect(engine.GenerateSlots(roomID, day, granularity, s.businessStart, s.businessEnd, bookings))

	res.FromModels(roomID, granularity, bookings, slots, day.Format(constant.DateOnlyFormat))

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) logOutcome(err error, key engine.Key, msg string) {
	var storage *engine.StorageError

	switch {
	case errors.As(err, &storage):
		log.Error().Err(storage.Err).Str("key", key.String()).Msg(msg)
	case errors.Is(err, engine.ErrBusy):
		log.Warn().Err(err).Str("key", key.String()).Msg(msg)
	default:
		log.Info().Err(err).Str("key", key.String()).Msg(msg)
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c, scope := s.otel.NewScope(context.WithoutCancel(ctx), constant.OtelEventScopeName, constant.OtelEventScopeName+"."+eventType)
		defer scope.End()

		message := kafka.Message{Key: booking.RoomID, Value: dto.NewEvent(eventType, booking)}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Booking, message); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("event", eventType).Str("id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
