package repository

import (
	"fmt"
	"strings"
)

// PageRequest captures list pagination and sorting parameters.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// Page is the standard envelope for paginated listings.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a page envelope from a slice and the total row count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// normalize clamps paging values to sane bounds.
func (p PageRequest) normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 10
	}
	if p.Size > 200 {
		p.Size = 200
	}
	return p
}

func (p PageRequest) limit() int {
	return p.normalize().Size
}

func (p PageRequest) offset() int {
	n := p.normalize()
	return n.Page * n.Size
}

// orderClause maps a client-supplied sort field through the column
// whitelist. Unknown fields fall back to the default column so request
// parameters never reach the SQL text directly.
func orderClause(sortable map[string]string, req PageRequest, fallback string) string {
	column, ok := sortable[req.SortBy]
	if !ok {
		column = fallback
	}
	direction := "ASC"
	if strings.EqualFold(req.Direction, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
