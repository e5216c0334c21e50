package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/shared/failure"
	"roombook/shared/validator"
)

type holdRequest struct {
	RoomID   string `json:"room_id"     validate:"required"`
	Email    string `json:"guest_email" validate:"required,email"`
	Seats    int    `json:"seats"       validate:"gte=1,lte=40"`
	Status   string `json:"status"      validate:"omitempty,oneof=Confirmed Pending Cancelled"`
	Start    string `json:"start_time"  validate:"required,clock"`
	Untagged string `validate:"max=5"`
}

func validHold() holdRequest {
	return holdRequest{RoomID: "room-1", Email: "ada@example.com", Seats: 4, Start: "10:00 AM"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *holdRequest)
		field  string
		msg    string
	}{
		{name: "valid"},
		{name: "missing room", mutate: func(req *holdRequest) { req.RoomID = "" }, field: "room_id", msg: "room_id is required"},
		{name: "bad email", mutate: func(req *holdRequest) { req.Email = "ada" }, field: "guest_email", msg: "guest_email must be a valid email address"},
		{name: "too few seats", mutate: func(req *holdRequest) { req.Seats = 0 }, field: "seats", msg: "seats must be greater than or equal to 1"},
		{name: "too many seats", mutate: func(req *holdRequest) { req.Seats = 41 }, field: "seats", msg: "seats must be less than or equal to 40"},
		{name: "unknown status", mutate: func(req *holdRequest) { req.Status = "Held" }, field: "status", msg: "status must be one of Confirmed Pending Cancelled"},
		{name: "bad clock", mutate: func(req *holdRequest) { req.Start = "noonish" }, field: "start_time", msg: "start_time must be a time of day such as 2:00 PM"},
		{name: "field without json tag", mutate: func(req *holdRequest) { req.Untagged = "too long" }, field: "Untagged", msg: "Untagged must be less than or equal to 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validHold()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			err := validator.ValidateStruct(&req)
			if tt.field == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, []failure.FieldError{{Field: tt.field, Message: tt.msg}}, failure.GetFields(err))
		})
	}
}

func TestFieldErrors_InFieldOrder(t *testing.T) {
	fields := validator.FieldErrors(&holdRequest{Seats: 2, Start: "later"})

	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Field
	}

	assert.Equal(t, []string{"room_id", "guest_email", "start_time"}, names)
	assert.Nil(t, validator.FieldErrors(&holdRequest{RoomID: "r", Email: "a@b.co", Seats: 1, Start: "9:00"}))
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		tag     string
		wantErr bool
	}{
		{name: "email", value: "ada@example.com", tag: "required,email"},
		{name: "not an email", value: "ada", tag: "required,email", wantErr: true},
		{name: "missing", value: "", tag: "required", wantErr: true},
		{name: "12 hour clock", value: "2:00 PM", tag: "clock"},
		{name: "24 hour clock", value: "14:00", tag: "clock"},
		{name: "lower case clock", value: "9:30am", tag: "clock"},
		{name: "hour out of range", value: "25:00", tag: "clock", wantErr: true},
		{name: "clock on a number", value: 600, tag: "clock", wantErr: true},
		{name: "granularity", value: 30, tag: "gte=5,lte=240"},
		{name: "granularity too small", value: 1, tag: "gte=5,lte=240", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, tt.tag)

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	var req holdRequest

	err := validator.Validate(strings.NewReader(`{"room_id":"room-1","guest_email":"ada@example.com","seats":3,"start_time":"14:00"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "room-1", req.RoomID)
	assert.Equal(t, 3, req.Seats)

	err = validator.Validate(strings.NewReader(`{"room_id":"room-1","seats":3}`), &holdRequest{})
	assert.Len(t, failure.GetFields(err), 2)

	err = validator.Validate(strings.NewReader(`{"room_id":`), &holdRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")
}

func TestDecode_DoesNotValidate(t *testing.T) {
	var req holdRequest

	require.NoError(t, validator.Decode(strings.NewReader(`{"seats":99}`), &req))
	assert.Equal(t, 99, req.Seats)
}
