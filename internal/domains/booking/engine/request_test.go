package engine_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model/dto"
	"roombook/shared/clock"
	"roombook/shared/failure"
)

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:      "room-r",
		GuestName:   "Ada Lovelace",
		GuestEmail:  "ada@example.com",
		GuestPhone:  "555-0100",
		BookingDate: "2024-06-01",
		StartTime:   "10:00 AM",
		EndTime:     "11:00 AM",
		Purpose:     "Planning",
	}
}

func fieldNames(fields []failure.FieldError) []string {
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Field
	}

	return names
}

func TestParseRequest_Valid(t *testing.T) {
	req, err := engine.ParseRequest(validRequest())

	require.NoError(t, err)
	assert.Equal(t, "room-r", req.RoomID)
	assert.Equal(t, day, req.Date)
	assert.Equal(t, rangeOf("10:00 AM", "11:00 AM"), req.Range)
	assert.Equal(t, "room-r|2024-06-01", req.Key().String())
}

func TestParseRequest_EndsAtMidnight(t *testing.T) {
	req := validRequest()
	req.StartTime = "11:00 PM"
	req.EndTime = "12:00 AM"

	parsed, err := engine.ParseRequest(req)
	require.NoError(t, err)
	assert.Equal(t, clock.Range{Start: 1380, End: clock.EndOfDay}, parsed.Range)

	req.EndTime = parsed.Range.End.String()

	again, err := engine.ParseRequest(req)
	require.NoError(t, err)
	assert.Equal(t, parsed.Range, again.Range)
}

func TestParseRequest_ListsEveryField(t *testing.T) {
	_, err := engine.ParseRequest(dto.CreateBookingRequest{})

	var validation *engine.ValidationError
	require.True(t, errors.As(err, &validation))

	assert.ElementsMatch(t, []string{
		"room_id", "guest_name", "guest_email", "guest_phone", "booking_date", "start_time", "end_time", "purpose",
	}, fieldNames(validation.Fields))
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Len(t, failure.GetFields(err), 8)
}

func TestParseRequest_MixedViolations(t *testing.T) {
	req := validRequest()
	req.GuestEmail = "not-an-email"
	req.BookingDate = "01/06/2024"
	req.StartTime = "2:00 PM"
	req.EndTime = "1:00 PM"

	_, err := engine.ParseRequest(req)

	var validation *engine.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.ElementsMatch(t, []string{"guest_email", "booking_date", "end_time"}, fieldNames(validation.Fields))
}

func TestParseRequest_MalformedTime(t *testing.T) {
	req := validRequest()
	req.StartTime = "noonish"

	_, err := engine.ParseRequest(req)

	var validation *engine.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, []string{"start_time"}, fieldNames(validation.Fields))
}

func TestParseRequest_EmptyRange(t *testing.T) {
	req := validRequest()
	req.EndTime = req.StartTime

	_, err := engine.ParseRequest(req)

	var validation *engine.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "end_time must be after start_time", validation.Fields[0].Message)
}
