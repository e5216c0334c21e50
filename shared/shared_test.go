package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/shared"
	cacheMocks "roombook/shared/cache/mocks"
	"roombook/shared/constant"
	"roombook/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := map[string]*bool{
		"":      nil,
		"true":  boolPtr(true),
		"1":     boolPtr(true),
		"T":     boolPtr(true),
		"FALSE": boolPtr(false),
		"0":     boolPtr(false),
		"maybe": nil,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, shared.ConvertStringToBool(input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	value, err := shared.ConvertStringToInt(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, value)

	_, err = shared.ConvertStringToInt("twelve")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rooms", total: 0, limit: 10, expected: 1},
		{name: "no limit", total: 100, limit: 0, expected: 1},
		{name: "negative limit", total: 100, limit: -5, expected: 1},
		{name: "exact", total: 30, limit: 10, expected: 3},
		{name: "remainder", total: 31, limit: 10, expected: 4},
		{name: "single page", total: 6, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type contactChange struct {
	GuestName  string `db:"guest_name"`
	GuestEmail string `db:"guest_email"`
	Capacity   *int   `db:"capacity"`
	Active     *bool  `db:"active"`
	StartTime  string `json:"start_time"`
	Internal   string `db:"-"`
}

func TestTransformFields(t *testing.T) {
	zero := 0
	inactive := false

	tests := []struct {
		name     string
		data     any
		expected map[string]any
	}{
		{
			name: "non zero tagged fields",
			data: contactChange{
				GuestName: "Jane Smith",
				StartTime: "10:00 AM",
				Internal:  "skipped",
			},
			expected: map[string]any{"guest_name": "Jane Smith"},
		},
		{
			name: "pointers to zero values are kept",
			data: contactChange{Capacity: &zero, Active: &inactive},
			expected: map[string]any{
				"capacity": &zero,
				"active":   &inactive,
			},
		},
		{
			name:     "pointer to struct",
			data:     &contactChange{GuestEmail: "jane@example.com"},
			expected: map[string]any{"guest_email": "jane@example.com"},
		},
		{
			name:     "empty struct",
			data:     struct{}{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "jane@example.com")

			assert.Equal(t, "jane@example.com", result[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("room-1", "id", "rooms")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	assert.Equal(t, dto.Filter{Field: "id", Value: "room-1", Operator: dto.FilterOperatorEq, Table: "rooms"}, group.Filters[0])

	where, args := group.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "room-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:abc", shared.BuildCacheKey("room:get", "abc"))
	assert.Equal(t, "room:get", shared.BuildCacheKey("room:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("abc", "id", "rooms")

	first := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("room:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("room:gets", params, shared.FilterByID("xyz", "id", "rooms"))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.True(t, strings.HasPrefix(first, "room:gets:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "booking:gets")
}

func boolPtr(b bool) *bool {
	return &b
}
