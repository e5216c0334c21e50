package di

import (
	"github.com/google/wire"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/infras/redis"
	"roombook/infras/s3"
	"roombook/internal/domains/booking/engine"
	"roombook/shared/cache"
	"roombook/transport/http/middleware"
	"roombook/transport/http/router"

	bookingRepository "roombook/internal/domains/booking/repository"
	bookingService "roombook/internal/domains/booking/service"
	roomRepository "roombook/internal/domains/room/repository"
	roomService "roombook/internal/domains/room/service"
	bookingHandler "roombook/internal/handlers/booking"
	chatbotHandler "roombook/internal/handlers/chatbot"
	roomHandler "roombook/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	ProvideDatabase,
	otel.New,
	redis.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
	wire.Bind(new(engine.RoomFinder), new(roomRepository.Room)),
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	wire.Bind(new(engine.Ledger), new(bookingRepository.Booking)),
	engine.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Bind(new(roomHandler.Availability), new(bookingService.Booking)),
	roomHandler.New,
	bookingHandler.New,
	chatbotHandler.New,
	router.New,
)
