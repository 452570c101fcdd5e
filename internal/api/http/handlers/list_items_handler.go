package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// ListItemsHandler exposes standalone line-item CRUD. Line items created
// here attach to an already stored invoice; the bulk path stays on the
// invoice write.
type ListItemsHandler struct {
	listItems repository.ListItemRepository
}

// NewListItemsHandler constructs handler.
func NewListItemsHandler(listItems repository.ListItemRepository) *ListItemsHandler {
	return &ListItemsHandler{listItems: listItems}
}

// List handles GET /api/v1/list-items.
func (h *ListItemsHandler) List(c *fiber.Ctx) error {
	page, err := h.listItems.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/list-items/:id.
func (h *ListItemsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid list item id")
	}
	item, err := h.listItems.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(item)
}

// Create handles POST /api/v1/list-items.
func (h *ListItemsHandler) Create(c *fiber.Ctx) error {
	var item domain.LineItem
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validateListItem(&item); err != nil {
		return err
	}
	if err := h.listItems.Save(c.Context(), &item); err != nil {
		if errors.Is(err, repository.ErrInvoiceMissing) {
			return apperrors.NewBadRequest("invoice does not exist")
		}
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(item)
}

// Update handles PUT /api/v1/list-items/:id.
func (h *ListItemsHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid list item id")
	}
	var item domain.LineItem
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validateListItem(&item); err != nil {
		return err
	}
	item.ID = int64(id)
	if err := h.listItems.Update(c.Context(), &item); err != nil {
		if errors.Is(err, repository.ErrInvoiceMissing) {
			return apperrors.NewBadRequest("invoice does not exist")
		}
		return apperrors.MapError(err)
	}
	return c.JSON(item)
}

// Delete handles DELETE /api/v1/list-items/:id.
func (h *ListItemsHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid list item id")
	}
	if err := h.listItems.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func validateListItem(item *domain.LineItem) error {
	if item.InvoiceID < 1 {
		return apperrors.NewBadRequest("invoice id is required")
	}
	if item.Quantity < 0 {
		return apperrors.NewBadRequest("quantity must be non-negative")
	}
	if item.Price < 0 {
		return apperrors.NewBadRequest("price must be non-negative")
	}
	return nil
}
