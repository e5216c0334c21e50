package room

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roombook/infras/otel"
	bookingDto "roombook/internal/domains/booking/model/dto"
	"roombook/internal/domains/room/model"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/service"
	"roombook/shared"
	"roombook/shared/clock"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
	"roombook/shared/validator"
	"roombook/transport/http/response"
)

var sortableFields = []string{
	model.FieldName,
	model.FieldLocation,
	model.FieldCapacity,
	constant.FieldCreatedAt,
}

// Availability lists the bookable slots of a room on a date.
type Availability interface {
	Availability(ctx context.Context, roomID, date string, granularity int) (bookingDto.AvailabilityResponse, error)
}

type Handler struct {
	service      service.Room
	availability Availability
	otel         otel.Otel
}

func New(service service.Room, availability Availability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Get("/{id}/availability", handler.GetRoomAvailability)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

func isMultipart(request *http.Request) bool {
	return strings.HasPrefix(request.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData)
}

// formPhoto returns the uploaded photo, if any. The caller closes the file.
func formPhoto(request *http.Request) (multipart.File, *multipart.FileHeader) {
	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err != nil {
		return nil, nil
	}

	return file, fileHeader
}

func decodeCreateRoom(request *http.Request) (dto.CreateRoomRequest, error) {
	req := dto.CreateRoomRequest{}

	if !isMultipart(request) {
		return req, validator.Decode(request.Body, &req)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, failure.BadRequest(err)
	}

	req.Name = request.FormValue(model.FieldName)
	req.Description = request.FormValue(model.FieldDescription)
	req.Location = request.FormValue(model.FieldLocation)
	req.Amenities = dto.ParseAmenities(request.FormValue(model.FieldAmenities))
	req.Active = shared.ConvertStringToBool(request.FormValue(model.FieldActive))

	if capStr := request.FormValue(model.FieldCapacity); capStr != constant.Empty {
		capacity, err := shared.ConvertStringToInt(capStr)
		if err != nil {
			return req, failure.BadRequestFromString("capacity must be a number")
		}

		req.Capacity = capacity
	}

	req.PhotoFile, req.Photo = formPhoto(request)

	return req, nil
}

func decodeUpdateRoom(request *http.Request) (dto.UpdateRoomRequest, error) {
	req := dto.UpdateRoomRequest{}

	if !isMultipart(request) {
		return req, validator.Decode(request.Body, &req)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, failure.BadRequest(err)
	}

	req.Name = request.FormValue(model.FieldName)
	req.Description = request.FormValue(model.FieldDescription)
	req.Location = request.FormValue(model.FieldLocation)
	req.Active = shared.ConvertStringToBool(request.FormValue(model.FieldActive))

	if amenities := request.FormValue(model.FieldAmenities); amenities != constant.Empty {
		req.Amenities = dto.ParseAmenities(amenities)
	}

	if capStr := request.FormValue(model.FieldCapacity); capStr != constant.Empty {
		capacity, err := shared.ConvertStringToInt(capStr)
		if err != nil {
			return req, failure.BadRequestFromString("capacity must be a number")
		}

		req.Capacity = &capacity
	}

	req.PhotoFile, req.Photo = formPhoto(request)

	return req, nil
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room from a JSON body or a multipart form carrying a photo.
// @Tags Room
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param name formData string true "Room name"
// @Param description formData string false "Room description"
// @Param location formData string true "Room location"
// @Param capacity formData integer true "Room capacity"
// @Param amenities formData string false "Comma separated amenities"
// @Param active formData boolean false "Room active status"
// @Param photo formData file false "Room photo"
// @Success 201 {object} response.Data[dto.RoomResponse] "Created room"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req, err := decodeCreateRoom(request)
	if req.PhotoFile != nil {
		defer req.PhotoFile.Close()
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read request")

		response.WithError(writer, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created " + room.ID)

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms retrieves all room items based on query parameters.
// @Summary Get all rooms
// @Description Retrieve rooms with optional filtering and pagination. Only active rooms are listed unless active=false is given.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param capacity query integer false "Minimum capacity"
// @Param amenities query string false "Comma separated amenities, any of which must match"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Restrict(sortableFields...)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldName, model.FieldLocation} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Where(model.TableName, field, gDto.FilterOperatorLike, value))
		}
	}

	if capStr := query.Get(model.FieldCapacity); capStr != constant.Empty {
		capacity, err := shared.ConvertStringToInt(capStr)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("capacity must be a number"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Where(model.TableName, model.FieldCapacity, gDto.FilterOperatorGreaterEq, capacity))
	}

	if amenities := dto.ParseAmenities(query.Get(model.FieldAmenities)); len(amenities) > 0 {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Where(model.TableName, model.FieldAmenities, gDto.FilterOperatorOverlap, amenities))
	}

	active := true
	if value := shared.ConvertStringToBool(query.Get(model.FieldActive)); value != nil {
		active = *value
	}

	filterGroup.Filters = append(filterGroup.Filters, gDto.Where(model.TableName, model.FieldActive, gDto.FilterOperatorEq, active))

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// GetRoomAvailability lists the free and taken slots of a room on a date.
// @Summary Get room availability
// @Description Split business hours into slots and mark the ones overlapping an active booking.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param granularity query integer false "Slot length in minutes"
// @Success 200 {object} response.Data[bookingDto.AvailabilityResponse] "Slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) GetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomAvailability")
	defer scope.End()

	granularity := 0

	if value := r.URL.Query().Get(constant.RequestParamSlotSize); value != constant.Empty {
		parsed, err := shared.ConvertStringToInt(value)
		if err != nil || parsed <= 0 || parsed > clock.MinutesPerDay {
			response.WithError(w, failure.InvalidSlotParam)

			return
		}

		granularity = parsed
	}

	slots, err := handler.availability.Availability(ctx, chi.URLParam(r, constant.RequestParamID),
		r.URL.Query().Get(constant.RequestParamDate), granularity)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Tags Room
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param description formData string false "Room description"
// @Param location formData string false "Room location"
// @Param capacity formData integer false "Room capacity"
// @Param amenities formData string false "Comma separated amenities"
// @Param active formData boolean false "Room active status"
// @Param photo formData file false "Room photo"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	req, err := decodeUpdateRoom(r)
	if req.PhotoFile != nil {
		defer req.PhotoFile.Close()
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read request")

		response.WithError(w, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// DeleteRoom deactivates a room. Its bookings are kept.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
