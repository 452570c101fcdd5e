package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// StocksHandler exposes stock-valuation CRUD, keyed by client id.
type StocksHandler struct {
	stocks repository.StockRepository
}

// NewStocksHandler constructs handler.
func NewStocksHandler(stocks repository.StockRepository) *StocksHandler {
	return &StocksHandler{stocks: stocks}
}

// List handles GET /api/v1/stocks.
func (h *StocksHandler) List(c *fiber.Ctx) error {
	page, err := h.stocks.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/stocks/:clientId.
func (h *StocksHandler) Get(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	if clientID == "" {
		return apperrors.NewBadRequest("client id is required")
	}
	stock, err := h.stocks.GetByClientID(c.Context(), clientID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(stock)
}

// Create handles POST /api/v1/stocks.
func (h *StocksHandler) Create(c *fiber.Ctx) error {
	var stock domain.Stock
	if err := c.BodyParser(&stock); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if stock.ClientID == "" {
		return apperrors.NewBadRequest("client id is required")
	}
	if err := h.stocks.Save(c.Context(), &stock); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(stock)
}

// Update handles PUT /api/v1/stocks/:clientId.
func (h *StocksHandler) Update(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	if clientID == "" {
		return apperrors.NewBadRequest("client id is required")
	}
	var stock domain.Stock
	if err := c.BodyParser(&stock); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	stock.ClientID = clientID
	if err := h.stocks.Update(c.Context(), &stock); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(stock)
}

// Delete handles DELETE /api/v1/stocks/:clientId.
func (h *StocksHandler) Delete(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	if clientID == "" {
		return apperrors.NewBadRequest("client id is required")
	}
	if err := h.stocks.Delete(c.Context(), clientID); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
