package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	s3Mocks "roombook/infras/s3/mocks"
	roomMocks "roombook/internal/domains/room/mocks"
	"roombook/internal/domains/room/model"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/domains/room/service"
	cacheMocks "roombook/shared/cache/mocks"
	gDto "roombook/shared/dto"
	"roombook/shared/failure"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func boardroom() model.Room {
	return model.Room{
		ID:        "room-1",
		Name:      "Boardroom",
		Location:  "Floor 3",
		Capacity:  12,
		Amenities: []string{"projector", "whiteboard"},
		Photo:     "https://cdn.example.com/rooms/old.png",
		Active:    true,
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(f fixture)
		wantErr   bool
		wantPhoto string
	}{
		{
			name: "successful creation without photo",
			req:  dto.CreateRoomRequest{Name: " Boardroom ", Location: "Floor 3", Capacity: 12, Amenities: []string{"projector", " "}},
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "Boardroom", room.Name)
						assert.True(t, room.Active)
						assert.Equal(t, []string{"projector"}, []string(room.Amenities))
						assert.NotEmpty(t, room.ID)

						return nil
					})
			},
		},
		{
			name: "successful creation with photo",
			req: dto.CreateRoomRequest{
				Name: "Boardroom", Location: "Floor 3", Capacity: 12,
				Photo: &multipart.FileHeader{Filename: "room.png"},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), model.PhotoDirectory, gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/rooms/new.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantPhoto: "https://cdn.example.com/rooms/new.png",
		},
		{
			name: "upload error",
			req: dto.CreateRoomRequest{
				Name: "Boardroom", Location: "Floor 3", Capacity: 12,
				Photo: &multipart.FileHeader{Filename: "room.png"},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 upload error"))
			},
			wantErr: true,
		},
		{
			name: "repository error removes uploaded photo",
			req: dto.CreateRoomRequest{
				Name: "Boardroom", Location: "Floor 3", Capacity: 12,
				Photo: &multipart.FileHeader{Filename: "room.png"},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/rooms/new.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/rooms/new.png").Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.ID)
			assert.Equal(t, tt.wantPhoto, result.Photo)
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	t.Run("cache miss reads repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{boardroom()}, nil)

		result, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Len(t, result.Rooms, 1)
		assert.Equal(t, 11, result.TotalData)
		assert.Equal(t, 2, result.TotalPage)
		assert.Equal(t, []string{"projector", "whiteboard"}, result.Rooms[0].Amenities)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

		_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:room-1", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Find(gomock.Any(), "room-1").Return(boardroom(), nil)

		result, err := f.svc.Get(context.Background(), "room-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Boardroom", result.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Find(gomock.Any(), "missing").Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	capacity := 20

	t.Run("replaces photo and deletes the old one", func(t *testing.T) {
		f := newFixture(t)

		updated := boardroom()
		updated.Capacity = capacity
		updated.Photo = "https://cdn.example.com/rooms/new.png"

		gomock.InOrder(
			f.repo.EXPECT().Find(gomock.Any(), "room-1").Return(boardroom(), nil),
			f.s3.EXPECT().UploadFile(gomock.Any(), model.PhotoDirectory, gomock.Any(), gomock.Any()).Return(updated.Photo, nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, &capacity, fields[model.FieldCapacity])
					assert.Equal(t, updated.Photo, fields[model.FieldPhoto])
					assert.NotContains(t, fields, model.FieldName)

					return nil
				}),
			f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/rooms/old.png").Return(nil),
			f.repo.EXPECT().Find(gomock.Any(), "room-1").Return(updated, nil),
		)

		result, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{
			Capacity: &capacity,
			Photo:    &multipart.FileHeader{Filename: "new.png"},
		}, "room-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, capacity, result.Capacity)
		assert.Equal(t, updated.Photo, result.Photo)
	})

	t.Run("empty request changes nothing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Find(gomock.Any(), "room-1").Return(boardroom(), nil)

		result, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{}, "room-1")

		require.NoError(t, err)
		assert.Equal(t, "Boardroom", result.Name)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Find(gomock.Any(), "missing").Return(model.Room{}, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{Capacity: &capacity}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("deactivates the room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])

				return nil
			})

		err := f.svc.Delete(context.Background(), "room-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
