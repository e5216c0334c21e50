package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	"roombook/internal/domains/booking/engine"
	bookingRepository "roombook/internal/domains/booking/repository"
	"roombook/internal/domains/booking/repository/memory"
	roomRepository "roombook/internal/domains/room/repository"
	"roombook/internal/seed"
	"roombook/shared/constant"
	"roombook/shared/logger"
	"roombook/shared/timezone"
)

func main() {
	importData := flag.Bool("i", false, "import the sample rooms and bookings")
	deleteData := flag.Bool("d", false, "delete the sample bookings and deactivate the sample rooms")
	dryRun := flag.Bool("dry-run", false, "seed an in-memory ledger instead of the database")
	flag.Parse()

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	ctx := context.Background()

	if *dryRun {
		db := memory.New()
		run(ctx, seed.New(seed.MemoryRooms{DB: db}, engine.New(db, db, cfg), timezone.Today))

		for _, booking := range db.Bookings() {
			log.Info().
				Str("room", booking.RoomID).
				Str("date", booking.BookingDate.Format(constant.DateOnlyFormat)).
				Str("range", booking.Range().String()).
				Str("guest", booking.GuestName).
				Msg("dry run booking")
		}

		return
	}

	if *importData == *deleteData {
		log.Fatal().Msg("Use exactly one of -i (import) or -d (delete)")
	}

	db := postgres.New(cfg)
	defer db.Close()

	tracer := otel.New(cfg)
	rooms := roomRepository.New(db, tracer)
	bookings := bookingRepository.New(db, tracer)

	if *deleteData {
		purged, err := seed.Purge(ctx, rooms, bookings)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to delete sample data")
		}

		log.Info().Int("rooms", purged).Msg("Sample data deleted")

		return
	}

	run(ctx, seed.New(seed.RepositoryRooms{Repo: rooms}, engine.New(bookings, rooms, cfg), timezone.Today))
}

func run(ctx context.Context, seeder *seed.Seeder) {
	result, err := seeder.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed sample data")
	}

	log.Info().
		Int("rooms", result.Rooms).
		Int("bookings", result.Bookings).
		Int("skipped", result.Skipped).
		Msg("Sample data imported")
}
