package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model"
	"roombook/shared/clock"
)

func TestGenerateSlots_BusinessDay(t *testing.T) {
	existing := []model.Booking{booking("b-1", "room-r", day, "10:00 AM", "11:00 AM")}

	slots := engine.Collect(engine.GenerateSlots("room-r", day, 60, clock.MustParse("8:00 AM"), clock.MustParse("8:00 PM"), existing))

	assert.Len(t, slots, 12)

	unavailable := 0

	for i, slot := range slots {
		assert.Equal(t, clock.MustParse("8:00 AM").Add(i*60), slot.Range.Start)
		assert.Equal(t, slot.Range.Start.Add(60), slot.Range.End)

		if !slot.Available {
			unavailable++

			assert.Equal(t, "10:00 AM - 11:00 AM", slot.Range.String())
		}
	}

	assert.Equal(t, 1, unavailable)
}

func TestGenerateSlots_Restartable(t *testing.T) {
	existing := []model.Booking{booking("b-1", "room-r", day, "1:30 PM", "2:15 PM")}
	seq := engine.GenerateSlots("room-r", day, 30, clock.MustParse("8:00 AM"), clock.MustParse("8:00 PM"), existing)

	first := engine.Collect(seq)
	second := engine.Collect(seq)
	third := engine.Collect(engine.GenerateSlots("room-r", day, 30, clock.MustParse("8:00 AM"), clock.MustParse("8:00 PM"), existing))

	assert.Len(t, first, 24)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestGenerateSlots_EdgeCases(t *testing.T) {
	start := clock.MustParse("8:00 AM")

	tests := []struct {
		name        string
		granularity int
		end         clock.Minute
		expected    int
	}{
		{name: "zero granularity", granularity: 0, end: clock.MustParse("8:00 PM"), expected: 0},
		{name: "negative granularity", granularity: -30, end: clock.MustParse("8:00 PM"), expected: 0},
		{name: "empty window", granularity: 60, end: start, expected: 0},
		{name: "inverted window", granularity: 60, end: clock.MustParse("7:00 AM"), expected: 0},
		{name: "trailing partial slot dropped", granularity: 60, end: clock.MustParse("9:30 AM"), expected: 1},
		{name: "until midnight", granularity: 240, end: clock.EndOfDay, expected: 4},
		{name: "whole window", granularity: 720, end: clock.MustParse("8:00 PM"), expected: 1},
		{name: "longer than the window", granularity: 721, end: clock.MustParse("8:00 PM"), expected: 0},
		{name: "largest int", granularity: math.MaxInt, end: clock.MustParse("8:00 PM"), expected: 0},
		{name: "near largest int", granularity: math.MaxInt - 100, end: clock.EndOfDay, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := engine.Collect(engine.GenerateSlots("room-r", day, tt.granularity, start, tt.end, nil))

			assert.Len(t, slots, tt.expected)
		})
	}
}

func TestGenerateSlots_StopsEarly(t *testing.T) {
	count := 0

	for slot := range engine.GenerateSlots("room-r", day, 60, clock.MustParse("8:00 AM"), clock.MustParse("8:00 PM"), nil) {
		count++

		if slot.Range.Start == clock.MustParse("10:00 AM") {
			break
		}
	}

	assert.Equal(t, 3, count)
}
