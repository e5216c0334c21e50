// Package helper runs the schema migrations under migrations/postgres.
package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/postgres"
)

const migrationSource = "file://migrations/postgres"

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

// actions maps each action onto the migrate call it runs and the message logged on success.
var actions = map[string]struct {
	run  func(mig *migrate.Migrate) error
	done string
}{
	ActionUp:      {run: (*migrate.Migrate).Up, done: "Database migrations completed successfully"},
	ActionStepUp:  {run: func(mig *migrate.Migrate) error { return mig.Steps(1) }, done: "Applied one migration"},
	ActionDown:    {run: func(mig *migrate.Migrate) error { return mig.Steps(-1) }, done: "Rolled back one migration"},
	ActionDrop:    {run: (*migrate.Migrate).Down, done: "Database migrations rolled back successfully"},
	ActionVersion: {run: logVersion, done: "Database migration version read"},
}

// Actions lists the supported actions in a stable order.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func source(config *config.Config) string {
	params := url.Values{}
	if config.DB.Postgres.MigrationTable != "" {
		params.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	return postgres.WriteEndpoint(config).DSN(params)
}

func Runner(config *config.Config, action string) error {
	step, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w %q, use one of %s", ErrUnknownAction, action, strings.Join(Actions(), ", "))
	}

	mig, err := migrate.New(migrationSource, source(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg(step.done)

	return nil
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("No migration applied yet")

		return nil
	}

	if err != nil {
		return fmt.Errorf("reading version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
