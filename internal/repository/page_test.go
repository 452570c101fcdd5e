package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMath(t *testing.T) {
	req := PageRequest{Page: 2, Size: 10}

	page := NewPage([]int{1, 2, 3}, req, 23)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, int64(23), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	empty := NewPage[int](nil, req, 0)
	assert.NotNil(t, empty.Content)
	assert.Empty(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		req    PageRequest
		limit  int
		offset int
	}{
		{"defaults", PageRequest{}, 10, 0},
		{"negative page", PageRequest{Page: -3, Size: 20}, 20, 0},
		{"size capped", PageRequest{Page: 1, Size: 5000}, 200, 200},
		{"plain", PageRequest{Page: 3, Size: 25}, 25, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.limit, tt.req.limit())
			assert.Equal(t, tt.offset, tt.req.offset())
		})
	}
}

func TestOrderClauseWhitelist(t *testing.T) {
	sortable := map[string]string{"id": "id", "date": "created_at"}

	assert.Equal(t, "ORDER BY created_at ASC",
		orderClause(sortable, PageRequest{SortBy: "date"}, "id"))
	assert.Equal(t, "ORDER BY created_at DESC",
		orderClause(sortable, PageRequest{SortBy: "date", Direction: "DESC"}, "id"))

	// Anything outside the whitelist falls back, including injection attempts.
	assert.Equal(t, "ORDER BY id ASC",
		orderClause(sortable, PageRequest{SortBy: "1; DROP TABLE users"}, "id"))
	assert.Equal(t, "ORDER BY id ASC",
		orderClause(sortable, PageRequest{SortBy: "", Direction: "sideways"}, "id"))
}
