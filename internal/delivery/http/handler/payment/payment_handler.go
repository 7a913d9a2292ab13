package payment

import (
	"github.com/gofiber/fiber/v2"

	payuc "github.com/navkar-traders/billing-backend/internal/usecase/payment"
)

type Handler struct {
	uc *payuc.Usecase
}

func New(uc *payuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) CreateForInvoice(c *fiber.Ctx) error {
	invoiceID := c.Params("id")

	var req payuc.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	req.InvoiceID = invoiceID
	req.CreatedBy, _ = c.Locals("user_id").(string)

	p, state, err := h.uc.Create(c.Context(), req)
	if err != nil {
		switch err {
		case payuc.ErrInvalidInput:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case payuc.ErrInvoiceMissing:
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "internal error"})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"payment": p,
		"invoice": state,
	})
}

func (h *Handler) ListForInvoice(c *fiber.Ctx) error {
	invoiceID := c.Params("id")

	items, err := h.uc.ListByInvoice(c.Context(), invoiceID)
	if err != nil {
		if err == payuc.ErrInvalidInput {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(fiber.Map{"items": items})
}
