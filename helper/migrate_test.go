package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/config"
)

func TestActions(t *testing.T) {
	assert.Equal(t, []string{"down", "drop", "step-up", "up", "version"}, Actions())
}

func TestRunner_UnknownAction(t *testing.T) {
	err := Runner(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Contains(t, err.Error(), `"sideways"`)
}

func TestSource(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "booker"
	cfg.DB.Postgres.Write.Password = "secret"
	cfg.DB.Postgres.Write.Name = "roombook"
	cfg.DB.Postgres.MigrationTable = "roombook_migrations"

	dsn := source(cfg)

	assert.Contains(t, dsn, "postgres://booker:secret@db:5432/roombook")
	assert.Contains(t, dsn, "x-migrations-table=roombook_migrations")
}
