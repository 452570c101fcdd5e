package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/records-service/internal/api/dto"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/repository"
	apperrors "github.com/spec-kit/records-service/pkg/util/errorutil"
)

// InvoicesHandler exposes invoice CRUD.
type InvoicesHandler struct {
	invoices repository.InvoiceRepository
}

// NewInvoicesHandler constructs handler.
func NewInvoicesHandler(invoices repository.InvoiceRepository) *InvoicesHandler {
	return &InvoicesHandler{invoices: invoices}
}

// List handles GET /api/v1/invoices.
func (h *InvoicesHandler) List(c *fiber.Ctx) error {
	page, err := h.invoices.ListPage(c.Context(), dto.PageRequestFromQuery(c))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(page)
}

// Get handles GET /api/v1/invoices/:id.
func (h *InvoicesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid invoice id")
	}
	invoice, err := h.invoices.GetByID(c.Context(), int64(id))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(invoice)
}

// Create handles POST /api/v1/invoices. The invoice and its line items are
// stored in one transaction.
func (h *InvoicesHandler) Create(c *fiber.Ctx) error {
	var invoice domain.Invoice
	if err := c.BodyParser(&invoice); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := validateInvoice(&invoice); err != nil {
		return err
	}
	if err := h.invoices.SaveWithItems(c.Context(), &invoice); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(invoice)
}

// Update handles PUT /api/v1/invoices/:id.
func (h *InvoicesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid invoice id")
	}
	var invoice domain.Invoice
	if err := c.BodyParser(&invoice); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	invoice.ID = int64(id)
	if err := h.invoices.Update(c.Context(), &invoice); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Invoice updated successfully"})
}

// Delete handles DELETE /api/v1/invoices/:id.
func (h *InvoicesHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return apperrors.NewBadRequest("invalid invoice id")
	}
	if err := h.invoices.Delete(c.Context(), int64(id)); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func validateInvoice(invoice *domain.Invoice) error {
	if invoice.NumClient == "" {
		return apperrors.NewBadRequest("client number is required")
	}
	if invoice.Total < 0 {
		return apperrors.NewBadRequest("total amount must be non-negative")
	}
	if invoice.Date == "" {
		return apperrors.NewBadRequest("date cannot be empty")
	}
	if invoice.Employee == "" {
		return apperrors.NewBadRequest("employee cannot be empty")
	}
	for _, item := range invoice.LineItems {
		if item.Quantity < 0 {
			return apperrors.NewBadRequest("list item quantity must be non-negative")
		}
		if item.Price < 0 {
			return apperrors.NewBadRequest("list item price must be non-negative")
		}
	}
	return nil
}
