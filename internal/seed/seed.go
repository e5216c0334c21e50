// Package seed loads the sample catalogue and a few bookings used for demos and local runs.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model/dto"
	roomDto "roombook/internal/domains/room/model/dto"
	roomModel "roombook/internal/domains/room/model"
	"roombook/shared/constant"
)

// Actor is recorded as creator of seeded rooms.
const Actor = "seeder"

// RoomStore stores a room unless one with the same name exists, returning the id in use.
type RoomStore interface {
	Ensure(ctx context.Context, room roomModel.Room) (string, error)
}

// Result counts what a run wrote.
type Result struct {
	Rooms    int
	Bookings int
	Skipped  int
}

func photo(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?auto=format&fit=crop&w=800&q=80"
}

// Rooms is the sample catalogue.
func Rooms() []roomDto.CreateRoomRequest {
	return []roomDto.CreateRoomRequest{
		{Name: "Conference Room A", Location: "Floor 1", Capacity: 20, Amenities: []string{"projector", "whiteboard", "videoConference", "wifi"},
			Description: "Large conference room with a projector and video conferencing."},
		{Name: "Meeting Room B", Location: "Floor 2", Capacity: 10, Amenities: []string{"whiteboard", "wifi"},
			Description: "Medium meeting room for team discussions."},
		{Name: "Boardroom", Location: "Floor 3", Capacity: 15, Amenities: []string{"projector", "videoConference", "wifi"},
			Description: "Executive boardroom for formal meetings."},
		{Name: "Huddle Space", Location: "East Wing", Capacity: 5, Amenities: []string{"whiteboard", "wifi"},
			Description: "Small space for quick huddles."},
		{Name: "Training Room", Location: "West Wing", Capacity: 30, Amenities: []string{"projector", "whiteboard", "wifi"},
			Description: "Room set up for workshops and training sessions."},
		{Name: "Creative Space", Location: "Floor 2", Capacity: 12, Amenities: []string{"whiteboard", "wifi"},
			Description: "Informal room for brainstorming."},
	}
}

var photos = []string{
	photo("1497366216548-37526070297c"),
	photo("1497366811353-6870744d04b2"),
	photo("1431540015161-0bf868a2d407"),
	photo("1517502884422-41eaead166d4"),
	photo("1524758631624-e2822e304c36"),
	photo("1519389950473-47ba0277781c"),
}

// Bookings is the sample booking set, dated relative to today. roomIDs follows the order of Rooms.
func Bookings(today time.Time, roomIDs []string) []dto.CreateBookingRequest {
	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(constant.DateOnlyFormat)
	}

	return []dto.CreateBookingRequest{
		{RoomID: roomIDs[0], GuestName: "John Doe", GuestEmail: "john.doe@example.com", GuestPhone: "123-456-7890",
			BookingDate: day(1), StartTime: "10:00 AM", EndTime: "11:00 AM", Purpose: "Team meeting"},
		{RoomID: roomIDs[1], GuestName: "Jane Smith", GuestEmail: "jane.smith@example.com", GuestPhone: "987-654-3210",
			BookingDate: day(2), StartTime: "2:00 PM", EndTime: "3:00 PM", Purpose: "Client presentation"},
		{RoomID: roomIDs[2], GuestName: "Alice Johnson", GuestEmail: "alice@example.com", GuestPhone: "555-123-4567",
			BookingDate: day(3), StartTime: "9:00 AM", EndTime: "10:30 AM", Purpose: "Project planning"},
	}
}

// Seeder writes the sample data through a RoomStore and the booking engine.
type Seeder struct {
	rooms  RoomStore
	engine *engine.Engine
	today  func() time.Time
}

func New(rooms RoomStore, engine *engine.Engine, today func() time.Time) *Seeder {
	return &Seeder{
		rooms:  rooms,
		engine: engine,
		today:  today,
	}
}

// Run stores the catalogue, then books the samples. A sample that collides with an
// existing booking is skipped, so a second run adds nothing.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	result := Result{}
	roomIDs := make([]string, 0, len(Rooms()))

	for i, req := range Rooms() {
		id, err := s.rooms.Ensure(ctx, req.ToModel(Actor, photos[i]))
		if err != nil {
			return result, fmt.Errorf("failed to seed room %s: %w", req.Name, err)
		}

		roomIDs = append(roomIDs, id)
		result.Rooms++
	}

	for _, req := range Bookings(s.today(), roomIDs) {
		parsed, err := engine.ParseRequest(req)
		if err != nil {
			return result, fmt.Errorf("invalid sample booking for %s: %w", req.GuestName, err)
		}

		booking, err := s.engine.Create(ctx, parsed)

		var conflict *engine.SlotConflictError
		if errors.As(err, &conflict) {
			log.Info().Str("guest", req.GuestName).Str("date", req.BookingDate).Msg("sample booking already present, skipping")

			result.Skipped++

			continue
		}

		if err != nil {
			return result, fmt.Errorf("failed to seed booking for %s: %w", req.GuestName, err)
		}

		log.Info().Str("id", booking.ID).Str("room", booking.RoomID).Str("range", booking.Range().String()).Msg("sample booking created")

		result.Bookings++
	}

	return result, nil
}
