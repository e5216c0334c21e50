package timezone

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"roombook/config"
)

var location atomic.Pointer[time.Location]

func init() {
	Load(config.Get().App.Timezone)
}

// Load sets the application location and returns it.
func Load(name string) *time.Location {
	loc := time.UTC

	switch parsed, err := time.LoadLocation(name); {
	case name == "":
		log.Warn().Msg("No timezone configured, using UTC as default")
	case err != nil:
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")
	default:
		loc = parsed
	}

	location.Store(loc)

	return loc
}

// Location returns the application location.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application location.
func Now() time.Time {
	return time.Now().In(Location())
}

// DateOf returns the calendar day of t, in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar day in the application location.
func Today() time.Time {
	return DateOf(Now())
}

// Format renders t in the application location.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
