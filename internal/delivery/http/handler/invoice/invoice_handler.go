package invoice

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	invoiceuc "github.com/navkar-traders/billing-backend/internal/usecase/invoice"
)

type Handler struct {
	uc *invoiceuc.Usecase
}

func New(uc *invoiceuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in invoiceuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.CreatedBy, _ = c.Locals("user_id").(string)

	out, err := h.uc.Create(c.Context(), in)
	return writeOne(c, out, err, fiber.StatusCreated)
}

func (h *Handler) List(c *fiber.Ctx) error {
	q := invoiceuc.ListQuery{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("customerId"); v != "" {
		q.CustomerID = &v
	}
	if v := c.Query("createdBy"); v != "" {
		q.CreatedBy = &v
	}

	var err error
	if q.FromDate, err = parseDate(c.Query("fromDate")); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid fromDate")
	}
	if q.ToDate, err = parseDate(c.Query("toDate")); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid toDate")
	}

	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.Context(), id)
	return writeOne(c, out, err, fiber.StatusOK)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeOne(c *fiber.Ctx, out *invoiceuc.Invoice, err error, okStatus int) error {
	if err != nil {
		return mapErr(err)
	}
	return c.Status(okStatus).JSON(out)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, invoiceuc.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, invoiceuc.ErrNotFound),
		errors.Is(err, invoiceuc.ErrCustomerMissing),
		errors.Is(err, invoiceuc.ErrProductMissing):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, invoiceuc.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, invoiceuc.ErrDuplicateNumber):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
