package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusRefunded       OrderStatus = "refunded"
)

// Order is the dependent record for fixed-price purchases. TitleSnapshot is
// taken at initiation so later listing edits cannot corrupt historical orders.
type Order struct {
	ID                uuid.UUID   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	IntentID          uuid.UUID   `gorm:"column:intent_id;type:uuid;not null;uniqueIndex" json:"intent_id"`
	ListingID         uuid.UUID   `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	BuyerID           uuid.UUID   `gorm:"column:buyer_id;type:uuid;not null;index" json:"buyer_id"`
	SellerID          uuid.UUID   `gorm:"column:seller_id;type:uuid;not null;index" json:"seller_id"`
	TitleSnapshot     string      `gorm:"column:title_snapshot;size:255;not null" json:"title_snapshot"`
	ShippingAddressID *uuid.UUID  `gorm:"column:shipping_address_id;type:uuid" json:"shipping_address_id,omitempty"`
	TrackingNumber    *string     `gorm:"column:tracking_number;size:100" json:"tracking_number,omitempty"`
	Carrier           *string     `gorm:"column:carrier;size:50" json:"carrier,omitempty"`
	BuyerNote         string      `gorm:"column:buyer_note;type:text" json:"buyer_note,omitempty"`
	SellerNote        string      `gorm:"column:seller_note;type:text" json:"seller_note,omitempty"`
	Status            OrderStatus `gorm:"column:status;size:30;not null;default:'pending_payment'" json:"status"`
	CreatedAt         time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"default:now()" json:"updated_at"`

	Intent *PaymentIntent `gorm:"foreignKey:IntentID" json:"intent,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
