package ledger

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	ledgeruc "github.com/navkar-traders/billing-backend/internal/usecase/ledger"
)

type Handler struct {
	uc *ledgeruc.Usecase
}

func New(uc *ledgeruc.Usecase) *Handler {
	return &Handler{uc: uc}
}

// Get serves the customer account statement. At least one of customerId or
// area is required; dates are accepted as yyyy-mm-dd and applied with
// day-inclusive semantics.
func (h *Handler) Get(c *fiber.Ctx) error {
	var q ledgeruc.Query

	if v := c.Query("customerId"); v != "" {
		q.CustomerID = &v
	}
	if v := c.Query("area"); v != "" {
		q.Area = &v
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

	res, err := h.uc.Generate(c.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, ledgeruc.ErrInvalidQuery):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, ledgeruc.ErrStoreUnavailable):
			return fiber.NewError(fiber.StatusInternalServerError, "store unavailable")
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(res)
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
