package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name           string
		items          int64
		page           int
		limit          int
		wantPage       int
		wantTotalPages int
	}{
		{
			name:           "exact division",
			items:          100,
			page:           2,
			limit:          10,
			wantPage:       2,
			wantTotalPages: 10,
		},
		{
			name:           "partial last page",
			items:          101,
			page:           1,
			limit:          10,
			wantPage:       1,
			wantTotalPages: 11,
		},
		{
			name:           "no items",
			items:          0,
			page:           1,
			limit:          10,
			wantPage:       1,
			wantTotalPages: 0,
		},
		{
			name:           "zero limit disables pagination",
			items:          250,
			page:           7,
			limit:          0,
			wantPage:       1,
			wantTotalPages: 1,
		},
		{
			name:           "negative limit disables pagination",
			items:          3,
			page:           2,
			limit:          -1,
			wantPage:       1,
			wantTotalPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.items, tt.page, tt.limit)
			assert.Equal(t, tt.items, p.Items)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
		})
	}
}

func TestErrorResponse_WithRequestID(t *testing.T) {
	resp := NewError("boom", FieldError{Path: "name", Message: "required"}).
		WithRequestID("req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "boom", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.Len(t, resp.Errors, 1)
}
