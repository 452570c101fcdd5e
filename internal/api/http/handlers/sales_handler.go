package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// SalesHandler exposes sales-aggregate CRUD.
type SalesHandler struct {
	sales repository.SaleRepository
}

// NewSalesHandler constructs handler.
func NewSalesHandler(sales repository.SaleRepository) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// List handles GET /api/v1/sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	page, err := h.sales.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/sales/:id.
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid sale id")
	}
	sale, err := h.sales.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(sale)
}

// Create handles POST /api/v1/sales.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var sale domain.Sale
	if err := c.BodyParser(&sale); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := h.sales.Save(c.Context(), &sale); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(sale)
}

// CreateBatch handles POST /api/v1/sales/list.
func (h *SalesHandler) CreateBatch(c *fiber.Ctx) error {
	var sales []domain.Sale
	if err := c.BodyParser(&sales); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if len(sales) == 0 {
		return apperrors.NewBadRequest("empty sales list")
	}
	if err := h.sales.SaveAll(c.Context(), sales); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(sales)
}

// Update handles PUT /api/v1/sales/:id.
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid sale id")
	}
	var sale domain.Sale
	if err := c.BodyParser(&sale); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	sale.ID = int64(id)
	if err := h.sales.Update(c.Context(), &sale); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(sale)
}

// Delete handles DELETE /api/v1/sales/:id.
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid sale id")
	}
	if err := h.sales.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
