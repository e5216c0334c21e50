package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantCode       int
		wantRetryAfter string
		wantFields     int
	}{
		{
			name: "validation lists fields",
			err: failure.Validation([]failure.FieldError{
				{Field: "guest_email", Message: "guest_email is required"},
				{Field: "end_time", Message: "end_time must be after start_time"},
			}),
			wantCode:   http.StatusBadRequest,
			wantFields: 2,
		},
		{
			name:           "unavailable asks to retry",
			err:            failure.ServiceUnavailable("busy"),
			wantCode:       http.StatusServiceUnavailable,
			wantRetryAfter: "1",
		},
		{
			name:     "plain error is internal",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRetryAfter, recorder.Header().Get(constant.RequestHeaderRetryAfter))
			assert.Equal(t, constant.ContentTypeJSON, recorder.Header().Get(constant.RequestHeaderContentType))

			var body response.Error
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.err.Error(), *body.Error)
			assert.Len(t, body.Fields, tt.wantFields)
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusCreated, map[string]string{"id": "booking-1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"booking-1"}}`, recorder.Body.String())
}
