package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/commerce-service/internal/domain/model"
)

func TestListQuery_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		query     ListQuery
		wantPage  int
		wantLimit int
		wantSort  string
		wantOrder string
	}{
		{
			name:      "defaults applied",
			query:     ListQuery{},
			wantPage:  1,
			wantLimit: 10,
			wantSort:  "name",
			wantOrder: "asc",
		},
		{
			name:      "negative page resets to first",
			query:     ListQuery{Page: -3, Limit: 20},
			wantPage:  1,
			wantLimit: 20,
			wantSort:  "name",
			wantOrder: "asc",
		},
		{
			name:      "limit capped at maximum",
			query:     ListQuery{Page: 2, Limit: 500},
			wantPage:  2,
			wantLimit: MaxLimit,
			wantSort:  "name",
			wantOrder: "asc",
		},
		{
			name:      "negative limit disables pagination",
			query:     ListQuery{Limit: -1},
			wantPage:  1,
			wantLimit: -1,
			wantSort:  "name",
			wantOrder: "asc",
		},
		{
			name:      "explicit sort preserved",
			query:     ListQuery{SortBy: "created_at", SortOrder: "desc"},
			wantPage:  1,
			wantLimit: 10,
			wantSort:  "created_at",
			wantOrder: "desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.query.Normalize("name")
			assert.Equal(t, tt.wantPage, tt.query.Page)
			assert.Equal(t, tt.wantLimit, tt.query.Limit)
			assert.Equal(t, tt.wantSort, tt.query.SortBy)
			assert.Equal(t, tt.wantOrder, tt.query.SortOrder)
		})
	}
}

func TestListQuery_Validate(t *testing.T) {
	fields := model.BrandFields

	t.Run("valid query", func(t *testing.T) {
		q := ListQuery{SortOrder: "desc", Fields: "name,slug", IsActive: "true"}
		assert.NoError(t, q.Validate(fields))
	})

	t.Run("bad sort order", func(t *testing.T) {
		q := ListQuery{SortOrder: "sideways"}
		err := q.Validate(fields)
		assert.Error(t, err)
	})

	t.Run("unknown projection field", func(t *testing.T) {
		q := ListQuery{SortOrder: "asc", Fields: "name,bogus"}
		err := q.Validate(fields)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 1)
		assert.Equal(t, "fields", verr.Fields[0].Path)
	})

	t.Run("id is always allowed", func(t *testing.T) {
		q := ListQuery{SortOrder: "asc", Fields: "_id,name"}
		assert.NoError(t, q.Validate(fields))
	})

	t.Run("bad bool param", func(t *testing.T) {
		q := ListQuery{SortOrder: "asc", IsActive: "yes"}
		assert.Error(t, q.Validate(fields))
	})
}

func TestBoolParam_Value(t *testing.T) {
	assert.Nil(t, BoolParam("").Value())

	v := BoolParam("true").Value()
	if assert.NotNil(t, v) {
		assert.True(t, *v)
	}

	v = BoolParam("false").Value()
	if assert.NotNil(t, v) {
		assert.False(t, *v)
	}
}

func TestSplitFields(t *testing.T) {
	assert.Nil(t, SplitFields(""))
	assert.Equal(t, []string{"name", "slug"}, SplitFields("name,slug"))
	assert.Equal(t, []string{"name", "slug"}, SplitFields(" name , slug , "))
}

func TestListQuery_Sort(t *testing.T) {
	q := ListQuery{SortBy: "price", SortOrder: "desc"}
	assert.Equal(t, map[string]int{"price": -1}, q.Sort())

	q = ListQuery{SortBy: "name", SortOrder: "asc"}
	assert.Equal(t, map[string]int{"name": 1}, q.Sort())
}
