package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// PurchasesHandler exposes purchase-aggregate CRUD.
type PurchasesHandler struct {
	purchases repository.PurchaseRepository
}

// NewPurchasesHandler constructs handler.
func NewPurchasesHandler(purchases repository.PurchaseRepository) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchases}
}

// List handles GET /api/v1/purchases.
func (h *PurchasesHandler) List(c *fiber.Ctx) error {
	page, err := h.purchases.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/purchases/:id.
func (h *PurchasesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid purchase id")
	}
	purchase, err := h.purchases.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(purchase)
}

// Create handles POST /api/v1/purchases.
func (h *PurchasesHandler) Create(c *fiber.Ctx) error {
	var purchase domain.Purchase
	if err := c.BodyParser(&purchase); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := h.purchases.Save(c.Context(), &purchase); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(purchase)
}

// Update handles PUT /api/v1/purchases/:id.
func (h *PurchasesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid purchase id")
	}
	var purchase domain.Purchase
	if err := c.BodyParser(&purchase); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	purchase.ID = int64(id)
	if err := h.purchases.Update(c.Context(), &purchase); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(purchase)
}

// Delete handles DELETE /api/v1/purchases/:id.
func (h *PurchasesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid purchase id")
	}
	if err := h.purchases.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
