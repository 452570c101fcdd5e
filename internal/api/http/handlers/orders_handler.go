package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// OrdersHandler exposes order-aggregate CRUD.
type OrdersHandler struct {
	orders repository.OrderRepository
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders repository.OrderRepository) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List handles GET /api/v1/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	page, err := h.orders.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid order id")
	}
	order, err := h.orders.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(order)
}

// Create handles POST /api/v1/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var order domain.Order
	if err := c.BodyParser(&order); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := h.orders.Save(c.Context(), &order); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(order)
}

// Update handles PUT /api/v1/orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid order id")
	}
	var order domain.Order
	if err := c.BodyParser(&order); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	order.ID = int64(id)
	if err := h.orders.Update(c.Context(), &order); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(order)
}

// Delete handles DELETE /api/v1/orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid order id")
	}
	if err := h.orders.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
