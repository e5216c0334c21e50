package dto

import (
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"roombook/internal/domains/room/model"
	"roombook/shared"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
	"roombook/shared/timezone"
)

type CreateRoomRequest struct {
	Name        string                `json:"name"        validate:"required,max=50"`
	Description string                `json:"description" validate:"omitempty,max=500"`
	Location    string                `json:"location"    validate:"required,max=100"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	Amenities   []string              `json:"amenities"   validate:"omitempty,dive,required,max=50"`
	Photo       *multipart.FileHeader `json:"photo"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile   multipart.File        `json:"-"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, photoURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Location:    strings.TrimSpace(c.Location),
		Capacity:    c.Capacity,
		Amenities:   normalizeAmenities(c.Amenities),
		Photo:       photoURL,
		Active:      active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=50"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=500"`
	Location    string                `db:"location"    json:"location"    validate:"omitempty,max=100"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,required,max=50"`
	Photo       *multipart.FileHeader `json:"photo"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile   multipart.File        `json:"-"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Name == constant.Empty && u.Description == constant.Empty && u.Location == constant.Empty &&
		u.Capacity == nil && u.Amenities == nil && u.Photo == nil && u.Active == nil
}

// ParseAmenities splits a comma separated list, dropping blanks.
func ParseAmenities(value string) []string {
	if strings.TrimSpace(value) == constant.Empty {
		return nil
	}

	return normalizeAmenities(strings.Split(value, ","))
}

func normalizeAmenities(amenities []string) pq.StringArray {
	result := pq.StringArray{}

	for _, amenity := range amenities {
		if trimmed := strings.TrimSpace(amenity); trimmed != constant.Empty {
			result = append(result, trimmed)
		}
	}

	return result
}

type RoomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	Amenities   []string `json:"amenities"`
	Photo       string   `json:"photo"`
	Active      bool     `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Location = model.Location
	r.Capacity = model.Capacity
	r.Amenities = append([]string{}, model.Amenities...)
	r.Photo = model.Photo
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
