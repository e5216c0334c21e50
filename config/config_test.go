package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/config"
)

func TestGet_Defaults(t *testing.T) {
	cfg := config.Get()

	assert.Same(t, cfg, config.Get())
	assert.Equal(t, "8:00 AM", cfg.App.Booking.BusinessStart)
	assert.Equal(t, "8:00 PM", cfg.App.Booking.BusinessEnd)
	assert.Equal(t, 60, cfg.App.Booking.SlotMinutes)
	assert.Equal(t, 3000, cfg.App.Booking.LockTimeoutMS)
	assert.Equal(t, "booking-events", cfg.Kafka.Topics.Booking)
}
