package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("capacity must be a number")), code: http.StatusBadRequest, message: "capacity must be a number"},
		{name: "bad request from string", err: failure.BadRequestFromString("date is required"), code: http.StatusBadRequest, message: "date is required"},
		{name: "internal", err: failure.InternalError(errors.New("connection reset")), code: http.StatusInternalServerError, message: "connection reset"},
		{name: "unimplemented", err: failure.Unimplemented("ExportBookings"), code: http.StatusNotImplemented, message: "ExportBookings"},
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound, message: "room not found"},
		{name: "conflict", err: failure.Conflict("time slot is already booked"), code: http.StatusConflict, message: "time slot is already booked"},
		{name: "busy", err: failure.ServiceUnavailable("room is busy, retry shortly"), code: http.StatusServiceUnavailable, message: "room is busy, retry shortly"},
		{name: "invalid date", err: failure.InvalidDateParam, code: http.StatusBadRequest, message: "date must use the YYYY-MM-DD format"},
		{name: "invalid slot", err: failure.InvalidSlotParam, code: http.StatusBadRequest, message: "granularity must be between 1 and 1440 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.Validation(nil))
	assert.NoError(t, failure.Validation([]failure.FieldError{}))
}

func TestValidation(t *testing.T) {
	fields := []failure.FieldError{
		{Field: "guest_email", Message: "guest_email must be a valid email"},
		{Field: "end_time", Message: "end_time must be after start_time"},
	}

	err := failure.Validation(fields)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "guest_email must be a valid email, end_time must be after start_time", err.Error())
	assert.Equal(t, fields, failure.GetFields(err))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("creating booking: %w", failure.Conflict("time slot is already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
	assert.Nil(t, failure.GetFields(errors.New("plain")))
}
