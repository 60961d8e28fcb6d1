package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"gorm.io/gorm"
)

// errorResponse maps domain errors onto HTTP status codes. Unknown errors
// collapse to 500 with a generic message so internal detail never leaks.
func errorResponse(c echo.Context, err error) error {
	var bounds *domainErrors.AmountBoundsError
	if errors.As(err, &bounds) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":    bounds.Error(),
			"code":     "AMOUNT_OUT_OF_BOUNDS",
			"min_msat": bounds.MinMsat,
			"max_msat": bounds.MaxMsat,
		})
	}

	var terminal *domainErrors.TerminalStateError
	if errors.As(err, &terminal) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  terminal.Error(),
			"code":   "TERMINAL_STATE",
			"status": string(terminal.Status),
		})
	}

	switch {
	case errors.Is(err, domainErrors.ErrIntentNotFound),
		errors.Is(err, domainErrors.ErrOrderNotFound),
		errors.Is(err, domainErrors.ErrSellerNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": err.Error(),
			"code":  "NOT_FOUND",
		})
	case errors.Is(err, domainErrors.ErrNotParticipant),
		errors.Is(err, domainErrors.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{
			"error": err.Error(),
			"code":  "FORBIDDEN",
		})
	case errors.Is(err, domainErrors.ErrSelfPayment),
		errors.Is(err, domainErrors.ErrAmountRequired),
		errors.Is(err, domainErrors.ErrMalformedAddress):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
			"code":  "INVALID_REQUEST",
		})
	case errors.Is(err, domainErrors.ErrNoWallet),
		errors.Is(err, domainErrors.ErrEntityUnavailable),
		errors.Is(err, domainErrors.ErrAlreadyPaid),
		errors.Is(err, domainErrors.ErrManualConfirmOnly),
		errors.Is(err, domainErrors.ErrOrderStateInvalid):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": err.Error(),
			"code":  "CONFLICT",
		})
	case errors.Is(err, domainErrors.ErrInvoiceGeneration):
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": err.Error(),
			"code":  "INVOICE_GENERATION_FAILED",
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "internal server error",
			"code":  "INTERNAL",
		})
	}
}

// pagination reads limit/offset query params with sane bounds.
func pagination(c echo.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
