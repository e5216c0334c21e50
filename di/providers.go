package di

import (
	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/helper"
	"roombook/infras/postgres"
)

// ProvideDatabase applies pending migrations when AUTO_MIGRATE is set, then opens the pools.
func ProvideDatabase(cfg *config.Config) *postgres.Connection {
	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	return postgres.New(cfg)
}
