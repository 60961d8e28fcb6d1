package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/middleware/auth"
	"github.com/openagora/settlement/internal/usecase"
	"go.uber.org/zap"
)

type ShippingHandler struct {
	shipping *usecase.ShippingService
	logger   *zap.Logger
}

func NewShippingHandler(shipping *usecase.ShippingService, logger *zap.Logger) *ShippingHandler {
	return &ShippingHandler{
		shipping: shipping,
		logger:   logger,
	}
}

type ShippingAddressRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2" validate:"max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
	IsDefault  bool   `json:"is_default"`
}

func (r *ShippingAddressRequest) toModel() *model.ShippingAddress {
	return &model.ShippingAddress{
		Name:       r.Name,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		IsDefault:  r.IsDefault,
	}
}

// Create handles POST /api/v1/shipping-addresses
func (h *ShippingHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ShippingAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	address, err := h.shipping.Create(c.Request().Context(), userID, req.toModel())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, address)
}

// List handles GET /api/v1/shipping-addresses
func (h *ShippingHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	addresses, err := h.shipping.List(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"addresses": addresses})
}

// Update handles PUT /api/v1/shipping-addresses/:id
func (h *ShippingHandler) Update(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	var req ShippingAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	address := req.toModel()
	address.ID = addressID
	updated, err := h.shipping.Update(c.Request().Context(), userID, address)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/shipping-addresses/:id
func (h *ShippingHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	if err := h.shipping.Delete(c.Request().Context(), userID, addressID); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetDefault handles POST /api/v1/shipping-addresses/:id/default
func (h *ShippingHandler) SetDefault(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	if err := h.shipping.SetDefault(c.Request().Context(), userID, addressID); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
