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

type OrderHandler struct {
	orders *usecase.OrderService
	logger *zap.Logger
}

func NewOrderHandler(orders *usecase.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

type OrderResponse struct {
	ID                string    `json:"id"`
	IntentID          string    `json:"intent_id"`
	BuyerID           string    `json:"buyer_id"`
	SellerID          string    `json:"seller_id"`
	ListingID         string    `json:"listing_id"`
	TitleSnapshot     string    `json:"title_snapshot"`
	Status            string    `json:"status"`
	ShippingAddressID *string   `json:"shipping_address_id,omitempty"`
	TrackingNumber    *string   `json:"tracking_number,omitempty"`
	Carrier           *string   `json:"carrier,omitempty"`
	BuyerNote         string    `json:"buyer_note,omitempty"`
	SellerNote        string    `json:"seller_note,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func orderResponse(order *model.Order) OrderResponse {
	resp := OrderResponse{
		ID:             order.ID.String(),
		IntentID:       order.IntentID.String(),
		BuyerID:        order.BuyerID.String(),
		SellerID:       order.SellerID.String(),
		ListingID:      order.ListingID.String(),
		TitleSnapshot:  order.TitleSnapshot,
		Status:         string(order.Status),
		TrackingNumber: order.TrackingNumber,
		Carrier:        order.Carrier,
		BuyerNote:      order.BuyerNote,
		SellerNote:     order.SellerNote,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	if order.ShippingAddressID != nil {
		id := order.ShippingAddressID.String()
		resp.ShippingAddressID = &id
	}
	return resp
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	order, err := h.orders.GetOrder(c.Request().Context(), callerID, orderID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}

// List handles GET /api/v1/orders?role=buyer|seller
func (h *OrderHandler) List(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	limit, offset := pagination(c)

	var orders []*model.Order
	switch c.QueryParam("role") {
	case "seller":
		orders, err = h.orders.ListBySeller(c.Request().Context(), callerID, limit, offset)
	default:
		orders, err = h.orders.ListByBuyer(c.Request().Context(), callerID, limit, offset)
	}
	if err != nil {
		return errorResponse(c, err)
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, orderResponse(order))
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": responses})
}

type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	Carrier        string `json:"carrier" validate:"required"`
}

// Ship handles POST /api/v1/orders/:id/ship. Seller only.
func (h *OrderHandler) Ship(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	var req ShipOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	order, err := h.orders.MarkShipped(c.Request().Context(), callerID, orderID, req.TrackingNumber, req.Carrier)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}

// Complete handles POST /api/v1/orders/:id/complete. Buyer only.
func (h *OrderHandler) Complete(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	order, err := h.orders.MarkCompleted(c.Request().Context(), callerID, orderID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}

// Cancel handles POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	order, err := h.orders.Cancel(c.Request().Context(), callerID, orderID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}

type OrderNoteRequest struct {
	Note string `json:"note" validate:"required,max=2000"`
}

// SetNote handles PUT /api/v1/orders/:id/note. The note lands on the buyer or
// seller side depending on who the caller is.
func (h *OrderHandler) SetNote(c echo.Context) error {
	callerID, err := auth.GetUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a valid UUID"})
	}

	var req OrderNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	order, err := h.orders.SetNotes(c.Request().Context(), callerID, orderID, req.Note)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, orderResponse(order))
}
