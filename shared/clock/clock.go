package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	// EndOfDay is midnight at the end of the day, valid only as a range end.
	EndOfDay Minute = MinutesPerDay

	rangeSeparator = "-"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidRange      = errors.New("start time must be before end time")
)

const layout24 = "15:04"

var meridiemLayouts = []string{
	"3:04 PM",
	"3:04PM",
}

// Minute is a time of day expressed as minutes since midnight.
type Minute int

// Parse reads a 12-hour label such as "2:00 PM" or a 24-hour label such as "14:00".
func Parse(text string) (Minute, error) {
	value := strings.ToUpper(strings.TrimSpace(text))
	if value == "" {
		return 0, ErrInvalidTimeFormat
	}

	if value == "24:00" {
		return EndOfDay, nil
	}

	if parsed, err := time.Parse(layout24, value); err == nil {
		return Of(parsed), nil
	}

	// time.Parse takes hour 0 for a 12-hour clock.
	if hour, _, _ := strings.Cut(value, ":"); strings.Trim(hour, "0") == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}

	for _, layout := range meridiemLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Of(parsed), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
}

// ParseEnd is Parse for the end of a range, where midnight means EndOfDay.
// It accepts the label String renders for EndOfDay.
func ParseEnd(text string) (Minute, error) {
	minute, err := Parse(text)
	if err != nil {
		return 0, err
	}

	if minute == 0 {
		return EndOfDay, nil
	}

	return minute, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(text string) Minute {
	minute, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return minute
}

// Of returns the time of day of t in its own location.
func Of(t time.Time) Minute {
	return Minute(t.Hour()*MinutesPerHour + t.Minute())
}

func (m Minute) Hour() int {
	return int(m) / MinutesPerHour
}

func (m Minute) Minute() int {
	return int(m) % MinutesPerHour
}

func (m Minute) Valid() bool {
	return m >= 0 && m <= EndOfDay
}

// Add moves m forward by d minutes without wrapping past midnight.
func (m Minute) Add(d int) Minute {
	return m + Minute(d)
}

// On returns the instant at m on the calendar day of date.
func (m Minute) On(date time.Time) time.Time {
	year, month, day := date.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, date.Location()).Add(time.Duration(m) * time.Minute)
}

// String renders the 12-hour label, e.g. "2:00 PM". EndOfDay renders as "12:00 AM",
// which ParseEnd reads back.
func (m Minute) String() string {
	hour := m.Hour() % 24
	meridiem := "AM"

	if hour >= 12 {
		meridiem = "PM"
	}

	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, m.Minute(), meridiem)
}

// Clock24 renders the 24-hour label, e.g. "14:00".
func (m Minute) Clock24() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}

// Range is the half-open interval [Start, End) within a single day.
type Range struct {
	Start Minute
	End   Minute
}

func NewRange(start, end Minute) (Range, error) {
	if !start.Valid() || !end.Valid() {
		return Range{}, ErrInvalidTimeFormat
	}

	if start >= end {
		return Range{}, ErrInvalidRange
	}

	return Range{Start: start, End: end}, nil
}

// ParseRange reads "10:00 AM - 11:00 AM".
func ParseRange(text string) (Range, error) {
	start, end, found := strings.Cut(text, rangeSeparator)
	if !found {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}

	startMinute, err := Parse(start)
	if err != nil {
		return Range{}, err
	}

	endMinute, err := ParseEnd(end)
	if err != nil {
		return Range{}, err
	}

	return NewRange(startMinute, endMinute)
}

// Overlaps reports whether the two ranges share at least one minute.
// Ranges that only touch at an endpoint do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r Range) Contains(m Minute) bool {
	return r.Start <= m && m < r.End
}

func (r Range) Duration() time.Duration {
	return time.Duration(r.End-r.Start) * time.Minute
}

func (r Range) String() string {
	return r.Start.String() + " " + rangeSeparator + " " + r.End.String()
}
