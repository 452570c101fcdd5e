package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// RefundsHandler exposes cancelled-refund CRUD.
type RefundsHandler struct {
	refunds repository.RefundRepository
}

// NewRefundsHandler constructs handler.
func NewRefundsHandler(refunds repository.RefundRepository) *RefundsHandler {
	return &RefundsHandler{refunds: refunds}
}

// List handles GET /api/v1/refunds-cancelled.
func (h *RefundsHandler) List(c *fiber.Ctx) error {
	page, err := h.refunds.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/refunds-cancelled/:id.
func (h *RefundsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid refund id")
	}
	refund, err := h.refunds.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(refund)
}

// Create handles POST /api/v1/refunds-cancelled.
func (h *RefundsHandler) Create(c *fiber.Ctx) error {
	var refund domain.RefundCancelled
	if err := c.BodyParser(&refund); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := h.refunds.Save(c.Context(), &refund); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(refund)
}

// Update handles PUT /api/v1/refunds-cancelled/:id.
func (h *RefundsHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid refund id")
	}
	var refund domain.RefundCancelled
	if err := c.BodyParser(&refund); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	refund.ID = int64(id)
	if err := h.refunds.Update(c.Context(), &refund); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(refund)
}

// Delete handles DELETE /api/v1/refunds-cancelled/:id.
func (h *RefundsHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid refund id")
	}
	if err := h.refunds.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
