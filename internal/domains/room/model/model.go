package model

import (
	"github.com/lib/pq"

	"roombook/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldCapacity    = "capacity"
	FieldAmenities   = "amenities"
	FieldPhoto       = "photo"
	FieldActive      = "active"
)

const (
	PhotoDirectory = "rooms"
)

type Room struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Location    string         `db:"location"`
	Capacity    int            `db:"capacity"`
	Amenities   pq.StringArray `db:"amenities"`
	Photo       string         `db:"photo"`
	Active      bool           `db:"active"`
	model.Metadata
}

// Bookable reports whether new bookings may reference the room.
func (r Room) Bookable() bool {
	return r.ID != "" && r.Active
}
