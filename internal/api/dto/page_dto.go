package dto

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/repository"
)

// PageRequestFromQuery reads the standard pagination query parameters.
func PageRequestFromQuery(c *fiber.Ctx) repository.PageRequest {
	return repository.PageRequest{
		Page:      c.QueryInt("page", 0),
		Size:      c.QueryInt("size", 10),
		SortBy:    c.Query("sortBy", "id"),
		Direction: c.Query("direction", "asc"),
	}
}
