package seed_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/internal/domains/booking/engine"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/repository/memory"
	bookingMocks "roombook/internal/domains/booking/mocks"
	roomMocks "roombook/internal/domains/room/mocks"
	roomModel "roombook/internal/domains/room/model"
	"roombook/internal/seed"
	gDto "roombook/shared/dto"
)

func today() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestSeeder_Run(t *testing.T) {
	db := memory.New()
	seeder := seed.New(seed.MemoryRooms{DB: db}, engine.New(db, db, &config.Config{}), today)

	result, err := seeder.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seed.Result{Rooms: 6, Bookings: 3}, result)

	bookings := db.Bookings()
	require.Len(t, bookings, 3)

	for _, booking := range bookings {
		assert.Equal(t, model.StatusConfirmed, booking.Status)

		room, err := db.Find(context.Background(), booking.RoomID)
		require.NoError(t, err)
		assert.True(t, room.Active)
		assert.Equal(t, seed.Actor, room.CreatedBy)
	}
}

func TestSeeder_RunTwiceSkipsBookings(t *testing.T) {
	db := memory.New()
	rooms := &fixedRooms{db: db, ids: map[string]string{}}
	seeder := seed.New(rooms, engine.New(db, db, &config.Config{}), today)

	_, err := seeder.Run(context.Background())
	require.NoError(t, err)

	result, err := seeder.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Bookings)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, db.Bookings(), 3)
}

func TestSeeder_RoomStoreError(t *testing.T) {
	db := memory.New()
	seeder := seed.New(failingRooms{}, engine.New(db, db, &config.Config{}), today)

	_, err := seeder.Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, db.Bookings())
}

func TestBookings(t *testing.T) {
	bookings := seed.Bookings(today(), []string{"a", "b", "c"})

	require.Len(t, bookings, 3)
	assert.Equal(t, "2024-06-02", bookings[0].BookingDate)
	assert.Equal(t, "2024-06-03", bookings[1].BookingDate)
	assert.Equal(t, "2024-06-04", bookings[2].BookingDate)
	assert.Equal(t, "c", bookings[2].RoomID)

	for _, req := range bookings {
		_, err := engine.ParseRequest(req)
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(req.GuestEmail, "@example.com"), req.GuestEmail)
	}
}

func TestRepositoryRooms_Ensure(t *testing.T) {
	room := roomModel.Room{ID: "new-id", Name: "Boardroom"}

	t.Run("existing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := roomMocks.NewMockRoom(ctrl)

		repo.EXPECT().Get(gomock.Any(), seed.ByName("Boardroom"), roomModel.FieldID).Return(roomModel.Room{ID: "old-id"}, nil)

		id, err := seed.RepositoryRooms{Repo: repo}.Ensure(context.Background(), room)
		require.NoError(t, err)
		assert.Equal(t, "old-id", id)
	})

	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := roomMocks.NewMockRoom(ctrl)

		repo.EXPECT().Get(gomock.Any(), seed.ByName("Boardroom"), roomModel.FieldID).Return(roomModel.Room{}, nil)
		repo.EXPECT().Insert(gomock.Any(), room).Return(nil)

		id, err := seed.RepositoryRooms{Repo: repo}.Ensure(context.Background(), room)
		require.NoError(t, err)
		assert.Equal(t, "new-id", id)
	})

	t.Run("insert error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := roomMocks.NewMockRoom(ctrl)

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
		repo.EXPECT().Insert(gomock.Any(), room).Return(errors.New("connection refused"))

		_, err := seed.RepositoryRooms{Repo: repo}.Ensure(context.Background(), room)
		assert.Error(t, err)
	})
}

func TestPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	rooms := roomMocks.NewMockRoom(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	rooms.EXPECT().Get(gomock.Any(), seed.ByName("Boardroom"), roomModel.FieldID).Return(roomModel.Room{ID: "room-3"}, nil)
	rooms.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldID).Return(roomModel.Room{}, nil).Times(5)
	bookings.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	rooms.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[roomModel.FieldActive])
			assert.Equal(t, seed.Actor, fields["modified_by"])

			return nil
		})

	purged, err := seed.Purge(context.Background(), rooms, bookings)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
}

// fixedRooms reuses the id of a room already stored under the same name.
type fixedRooms struct {
	db  *memory.DB
	ids map[string]string
}

func (f *fixedRooms) Ensure(_ context.Context, room roomModel.Room) (string, error) {
	if id, ok := f.ids[room.Name]; ok {
		return id, nil
	}

	f.ids[room.Name] = room.ID
	f.db.SaveRoom(room)

	return room.ID, nil
}

type failingRooms struct{}

func (failingRooms) Ensure(context.Context, roomModel.Room) (string, error) {
	return "", errors.New("connection refused")
}
