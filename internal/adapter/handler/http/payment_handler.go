package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/middleware/auth"
	"github.com/openagora/settlement/internal/usecase"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments *usecase.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger,
	}
}

type InitiatePaymentRequest struct {
	EntityType        string  `json:"entity_type" validate:"required,oneof=listing campaign"`
	EntityID          string  `json:"entity_id" validate:"required,uuid"`
	AmountSats        int64   `json:"amount_sats" validate:"gte=0"`
	Message           *string `json:"message,omitempty"`
	Anonymous         bool    `json:"anonymous"`
	ShippingAddressID *string `json:"shipping_address_id,omitempty" validate:"omitempty,uuid"`
	BuyerNote         string  `json:"buyer_note,omitempty"`
}

type PaymentIntentResponse struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	Method           string     `json:"method"`
	EntityType       string     `json:"entity_type"`
	EntityID         string     `json:"entity_id"`
	AmountSats       int64      `json:"amount_sats"`
	PaymentRequest   *string    `json:"payment_request,omitempty"`
	OnchainAddress   *string    `json:"onchain_address,omitempty"`
	QRContent        string     `json:"qr_content,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	ExpiresInSeconds *int64     `json:"expires_in_seconds,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func intentResponse(intent *model.PaymentIntent, qrContent string, expiresIn *int64) PaymentIntentResponse {
	return PaymentIntentResponse{
		ID:               intent.ID.String(),
		Status:           string(intent.Status),
		Method:           string(intent.Method),
		EntityType:       string(intent.EntityType),
		EntityID:         intent.EntityID.String(),
		AmountSats:       intent.AmountSats,
		PaymentRequest:   intent.PaymentRequest,
		OnchainAddress:   intent.OnchainAddress,
		QRContent:        qrContent,
		ExpiresAt:        intent.ExpiresAt,
		ExpiresInSeconds: expiresIn,
		PaidAt:           intent.PaidAt,
		CreatedAt:        intent.CreatedAt,
	}
}

// Initiate handles POST /api/v1/payments
func (h *PaymentHandler) Initiate(c echo.Context) error {
	buyerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_id must be a valid UUID"})
	}

	input := usecase.InitiatePaymentInput{
		EntityType: model.EntityType(req.EntityType),
		EntityID:   entityID,
		AmountSats: req.AmountSats,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
		BuyerNote:  req.BuyerNote,
	}
	if req.ShippingAddressID != nil {
		addrID, err := uuid.Parse(*req.ShippingAddressID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "shipping_address_id must be a valid UUID"})
		}
		input.ShippingAddressID = &addrID
	}

	result, err := h.payments.InitiatePayment(c.Request().Context(), buyerID, input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, intentResponse(result.Intent, result.QRContent, result.ExpiresInSeconds))
}

// Get handles GET /api/v1/payments/:id
func (h *PaymentHandler) Get(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	intentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	intent, err := h.payments.GetIntent(c.Request().Context(), callerID, intentID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, intentResponse(intent, "", nil))
}

// CheckStatus handles POST /api/v1/payments/:id/check. For NWC intents this
// performs an active settlement lookup against the seller's wallet.
func (h *PaymentHandler) CheckStatus(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	intentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	intent, err := h.payments.CheckStatus(c.Request().Context(), callerID, intentID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, intentResponse(intent, "", nil))
}

// Confirm handles POST /api/v1/payments/:id/confirm, the buyer's manual
// settlement assertion for methods without an active lookup.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	buyerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	intentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	intent, err := h.payments.ConfirmByBuyer(c.Request().Context(), buyerID, intentID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, intentResponse(intent, "", nil))
}

// List handles GET /api/v1/payments?role=buyer|seller
func (h *PaymentHandler) List(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	limit, offset := pagination(c)

	var intents []*model.PaymentIntent
	switch c.QueryParam("role") {
	case "seller":
		intents, err = h.payments.ListBySeller(c.Request().Context(), callerID, limit, offset)
	default:
		intents, err = h.payments.ListByBuyer(c.Request().Context(), callerID, limit, offset)
	}
	if err != nil {
		return errorResponse(c, err)
	}

	responses := make([]PaymentIntentResponse, 0, len(intents))
	for _, intent := range intents {
		responses = append(responses, intentResponse(intent, "", nil))
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": responses})
}
