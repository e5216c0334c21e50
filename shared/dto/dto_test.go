package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roombook/shared/constant"
	"roombook/shared/dto"
	"roombook/shared/model"
	"roombook/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	timezone.Load("UTC")

	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	modified := created.Add(90 * time.Minute)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: created, ModifiedAt: modified, CreatedBy: "ada@example.com", ModifiedBy: "grace@example.com"})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  "2024-06-01T09:00:00Z",
		ModifiedAt: "2024-06-01T10:30:00Z",
		CreatedBy:  "ada@example.com",
		ModifiedBy: "grace@example.com",
	}, metadata)
}

func TestMetadata_FromModelZero(t *testing.T) {
	metadata := dto.Metadata{CreatedAt: "stale"}
	metadata.FromModel(model.Metadata{CreatedBy: "seeder"})

	assert.Empty(t, metadata.CreatedAt)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Equal(t, "seeder", metadata.CreatedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "every parameter",
			query:    "page=2&limit=20&sort_by=capacity&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "capacity", SortDir: "ASC"},
		},
		{
			name:         "defaults",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "nothing without defaults",
			expected: dto.QueryParams{},
		},
		{
			name:         "unparseable and non-positive numbers fall back",
			query:        "page=first&limit=-10",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:         "zero page falls back",
			query:        "page=0&sort_by=booking_date",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "booking_date"},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown direction is ignored",
			query:    "sort_dir=sideways",
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/rooms?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "capacity", Value: 10, Operator: dto.FilterOperatorGreaterEq, Table: "rooms"},
			dto.Filter{Field: "amenities", Value: []string{"Projector"}, Operator: dto.FilterOperatorOverlap, Table: "rooms"},
			dto.Filter{Field: "location", Value: "Floor", Operator: dto.FilterOperatorLike},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(rooms.capacity >= :capacity AND rooms.amenities && :amenities AND LOWER(location) LIKE LOWER(:location) )"
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if args["capacity"] != 10 {
		t.Errorf("expected capacity arg 10, got %v", args["capacity"])
	}

	if args["location"] != "%Floor%" {
		t.Errorf("expected wrapped like arg, got %v", args["location"])
	}

	if _, ok := args["amenities"]; !ok {
		t.Error("expected amenities arg to be set")
	}
}

func TestWhereAnd(t *testing.T) {
	group := dto.And(
		dto.Where("room_bookings", "room_id", dto.FilterOperatorEq, "room-1"),
		dto.Where("room_bookings", "status", dto.FilterOperatorNotEq, "Cancelled"),
	)

	where, args := group.GetWhereClause()

	expected := "(room_bookings.room_id = :room_id AND room_bookings.status != :status)"
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if args["room_id"] != "room-1" || args["status"] != "Cancelled" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilter_In(t *testing.T) {
	filter := dto.Where("room_bookings", "status", dto.FilterOperatorIn, []string{"Confirmed", "Pending"})

	where, args := filter.GetWhereClause()

	expected := "room_bookings.status IN (:status_0, :status_1) "
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if args["status_0"] != "Confirmed" || args["status_1"] != "Pending" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()
	if where != "" || len(args) != 0 {
		t.Errorf("expected empty clause, got %q %v", where, args)
	}
}

func TestQueryParams_Restrict(t *testing.T) {
	params := dto.QueryParams{SortBy: "name; DROP TABLE rooms", SortDir: ""}
	params.Restrict("name", "capacity")

	if params.SortBy != constant.DefaultValueSortBy {
		t.Errorf("expected SortBy to fall back to %s, got %s", constant.DefaultValueSortBy, params.SortBy)
	}

	if params.SortDir != constant.DefaultValueSortDir {
		t.Errorf("expected SortDir to fall back to %s, got %s", constant.DefaultValueSortDir, params.SortDir)
	}

	params = dto.QueryParams{SortBy: "capacity", SortDir: dto.SortDirAsc}
	params.Restrict("name", "capacity")

	if params.SortBy != "capacity" || params.SortDir != dto.SortDirAsc {
		t.Errorf("expected allowed ordering to be kept, got %s %s", params.SortBy, params.SortDir)
	}
}
