package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "roombook/infras/otel/mocks"
	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/booking/service/mocks"
	"roombook/internal/handlers/booking"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/transport/http/response"
)

const createBody = `{
	"room_id": "room-1",
	"guest_name": "Ada",
	"guest_email": "ada@example.com",
	"guest_phone": "555-0100",
	"booking_date": "2024-06-01",
	"start_time": "10:00 AM",
	"end_time": "11:00 AM",
	"purpose": "standup"
}`

type fixture struct {
	service *mocks.MockBooking
	tracer  *otelMocks.Recorder
	router  chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		service: mocks.NewMockBooking(ctrl),
		tracer:  otelMocks.NewOtel(),
		router:  chi.NewRouter(),
	}

	handler := booking.New(f.service, f.tracer)
	handler.Router(f.router)

	return f
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	f.router.ServeHTTP(recorder, request)

	return recorder
}

func errorOf(t *testing.T, recorder *httptest.ResponseRecorder) response.Error {
	t.Helper()

	body := response.Error{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return body
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Create(gomock.Any(), gomock.AssignableToTypeOf(dto.CreateBookingRequest{})).
			DoAndReturn(func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, "room-1", req.RoomID)
				assert.Equal(t, "10:00 AM", req.StartTime)

				return dto.BookingResponse{ID: "b-1", RoomID: req.RoomID, GuestEmail: req.GuestEmail, Status: "Confirmed"}, nil
			})

		recorder := f.do(http.MethodPost, "/bookings/", createBody)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		body := response.Data[dto.BookingResponse]{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.NotNil(t, body.Data)
		assert.Equal(t, "b-1", body.Data.ID)
		assert.Equal(t, "Confirmed", body.Data.Status)

		span, found := f.tracer.Find("handler.CreateBooking")
		require.True(t, found)
		assert.True(t, span.Ended)
		assert.Empty(t, span.Errors)
		assert.Equal(t, []string{"Booking created for ada@example.com"}, span.Events)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodPost, "/bookings/", "{")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, *errorOf(t, recorder).Error, "failed to decode request body")
	})

	t.Run("conflict", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, &engine.SlotConflictError{BookingID: "b-0"})

		recorder := f.do(http.MethodPost, "/bookings/", createBody)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, "time slot is already booked by b-0", *errorOf(t, recorder).Error)

		span, found := f.tracer.Find("handler.CreateBooking")
		require.True(t, found)
		assert.Len(t, span.Errors, 1)
	})

	t.Run("busy", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, engine.ErrBusy)

		recorder := f.do(http.MethodPost, "/bookings/", createBody)

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, "1", recorder.Header().Get(constant.RequestHeaderRetryAfter))
	})

	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, engine.ErrRoomNotFound)

		recorder := f.do(http.MethodPost, "/bookings/", createBody)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_GetBookings(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
			assert.Len(t, filter.Filters, 2)

			return dto.GetBookingsResponse{Bookings: []dto.BookingResponse{{ID: "b-1"}}, TotalPage: 1, TotalData: 1}, nil
		})

	recorder := f.do(http.MethodGet, "/bookings/?page=2&sort_by=password&room_id=room-1&status=Confirmed", "")

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := response.Data[dto.GetBookingsResponse]{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	assert.Equal(t, 1, body.Data.TotalData)
}

func TestHandler_GetUserBookings(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodGet, "/bookings/user/not-an-email", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			GetByEmail(gomock.Any(), "ada@example.com", gomock.Any()).
			Return(dto.GetBookingsResponse{Bookings: []dto.BookingResponse{{ID: "b-1"}}, TotalPage: 1, TotalData: 1}, nil)

		recorder := f.do(http.MethodGet, "/bookings/user/ada@example.com", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_UpdateBooking(t *testing.T) {
	t.Run("rejects unknown status", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodPatch, "/bookings/b-1", `{"status":"Archived"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Len(t, errorOf(t, recorder).Fields, 1)
	})

	t.Run("reschedule", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Update(gomock.Any(), dto.UpdateBookingRequest{StartTime: "2:00 PM", EndTime: "3:00 PM"}, "b-1").
			Return(dto.BookingResponse{ID: "b-1", StartTime: "2:00 PM", EndTime: "3:00 PM"}, nil)

		recorder := f.do(http.MethodPatch, "/bookings/b-1", `{"start_time":"2:00 PM","end_time":"3:00 PM"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_CancelAndDelete(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Cancel(gomock.Any(), "b-1").Return(dto.BookingResponse{ID: "b-1", Status: "Cancelled"}, nil)
	f.service.EXPECT().Delete(gomock.Any(), "b-2").Return(failure.NotFound("booking not found"))

	recorder := f.do(http.MethodPost, "/bookings/b-1/cancel", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(http.MethodDelete, "/bookings/b-2", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
