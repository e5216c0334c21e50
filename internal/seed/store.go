package seed

import (
	"context"
	"fmt"

	bookingModel "roombook/internal/domains/booking/model"
	bookingRepository "roombook/internal/domains/booking/repository"
	"roombook/internal/domains/booking/repository/memory"
	roomModel "roombook/internal/domains/room/model"
	roomRepository "roombook/internal/domains/room/repository"
	"roombook/shared"
	gDto "roombook/shared/dto"
)

// MemoryRooms keeps rooms in the in-memory ledger used by dry runs.
type MemoryRooms struct {
	DB *memory.DB
}

func (m MemoryRooms) Ensure(_ context.Context, room roomModel.Room) (string, error) {
	m.DB.SaveRoom(room)

	return room.ID, nil
}

// RepositoryRooms matches rooms by name so that seeding twice keeps one row per room.
type RepositoryRooms struct {
	Repo roomRepository.Room
}

func (r RepositoryRooms) Ensure(ctx context.Context, room roomModel.Room) (string, error) {
	existing, err := r.Repo.Get(ctx, ByName(room.Name), roomModel.FieldID)
	if err != nil {
		return "", fmt.Errorf("failed to look up room: %w", err)
	}

	if existing.ID != "" {
		return existing.ID, nil
	}

	if err := r.Repo.Insert(ctx, room); err != nil {
		return "", fmt.Errorf("failed to insert room: %w", err)
	}

	return room.ID, nil
}

// ByName selects a room by its exact name.
func ByName(name string) gDto.FilterGroup {
	return gDto.And(gDto.Where(roomModel.TableName, roomModel.FieldName, gDto.FilterOperatorEq, name))
}

// Purge removes the bookings of the sample rooms and deactivates the rooms.
// It returns the number of rooms touched.
func Purge(ctx context.Context, rooms roomRepository.Room, bookings bookingRepository.Booking) (int, error) {
	purged := 0

	for _, req := range Rooms() {
		room, err := rooms.Get(ctx, ByName(req.Name), roomModel.FieldID)
		if err != nil {
			return purged, fmt.Errorf("failed to look up room %s: %w", req.Name, err)
		}

		if room.ID == "" {
			continue
		}

		if err := bookings.Delete(ctx, shared.FilterByID(room.ID, bookingModel.FieldRoomID, bookingModel.TableName)); err != nil {
			return purged, fmt.Errorf("failed to delete bookings of %s: %w", req.Name, err)
		}

		fields := shared.TransformFields(struct{}{}, Actor)
		fields[roomModel.FieldActive] = false

		if err := rooms.Update(ctx, fields, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName)); err != nil {
			return purged, fmt.Errorf("failed to deactivate %s: %w", req.Name, err)
		}

		purged++
	}

	return purged, nil
}
