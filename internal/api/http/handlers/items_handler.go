package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// ItemsHandler exposes catalogue-item CRUD.
type ItemsHandler struct {
	items repository.ItemRepository
}

// NewItemsHandler constructs handler.
func NewItemsHandler(items repository.ItemRepository) *ItemsHandler {
	return &ItemsHandler{items: items}
}

// List handles GET /api/v1/items.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	page, err := h.items.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/items/:id.
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid item id")
	}
	item, err := h.items.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(item)
}

// Create handles POST /api/v1/items.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	var item domain.Item
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if item.Name == "" {
		return apperrors.NewBadRequest("product name is required")
	}
	if err := h.items.Save(c.Context(), &item); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(item)
}

// Update handles PUT /api/v1/items/:id.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid item id")
	}
	var item domain.Item
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	item.ID = int64(id)
	if err := h.items.Update(c.Context(), &item); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(item)
}

// Delete handles DELETE /api/v1/items/:id.
func (h *ItemsHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid item id")
	}
	if err := h.items.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
