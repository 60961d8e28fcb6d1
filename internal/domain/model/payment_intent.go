package model

import (
	"time"

	"github.com/google/uuid"
)

// IntentStatus tracks the lifecycle of one payment attempt.
type IntentStatus string

const (
	IntentStatusCreated        IntentStatus = "created"
	IntentStatusInvoiceReady   IntentStatus = "invoice_ready"
	IntentStatusPaid           IntentStatus = "paid"
	IntentStatusExpired        IntentStatus = "expired"
	IntentStatusFailed         IntentStatus = "failed"
	IntentStatusBuyerConfirmed IntentStatus = "buyer_confirmed"
)

// IsTerminal reports whether no further transition out of s is allowed.
// buyer_confirmed is soft-terminal: it never becomes paid automatically,
// but it is still distinct from a verified settlement.
func (s IntentStatus) IsTerminal() bool {
	return s == IntentStatusPaid || s == IntentStatusExpired || s == IntentStatusFailed
}

// PaymentMethod is the closed set of supported payment rails.
type PaymentMethod string

const (
	PaymentMethodNWC              PaymentMethod = "nwc"
	PaymentMethodLightningAddress PaymentMethod = "lightning_address"
	PaymentMethodOnChain          PaymentMethod = "onchain"
)

// SupportsActiveLookup reports whether settlement can be verified server-side.
func (m PaymentMethod) SupportsActiveLookup() bool {
	return m == PaymentMethodNWC
}

// EntityType identifies what is being paid for.
type EntityType string

const (
	EntityTypeListing  EntityType = "listing"
	EntityTypeCampaign EntityType = "campaign"
)

// PaymentIntent is the root record of one payment attempt and the sole
// source of truth for settlement status.
type PaymentIntent struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BuyerID        uuid.UUID     `gorm:"column:buyer_id;type:uuid;not null;index" json:"buyer_id"`
	SellerID       uuid.UUID     `gorm:"column:seller_id;type:uuid;not null;index" json:"seller_id"`
	EntityType     EntityType    `gorm:"column:entity_type;size:20;not null" json:"entity_type"`
	EntityID       uuid.UUID     `gorm:"column:entity_id;type:uuid;not null;index" json:"entity_id"`
	AmountSats     int64         `gorm:"column:amount_sats;not null" json:"amount_sats"`
	Method         PaymentMethod `gorm:"column:method;size:30;not null" json:"method"`
	Description    string        `gorm:"column:description;size:255" json:"description"`
	PaymentRequest *string       `gorm:"column:payment_request;type:text" json:"payment_request,omitempty"`
	PaymentHash    *string       `gorm:"column:payment_hash;size:100;index" json:"payment_hash,omitempty"`
	OnchainAddress *string       `gorm:"column:onchain_address;size:100" json:"onchain_address,omitempty"`
	Status         IntentStatus  `gorm:"column:status;size:30;not null;default:'created'" json:"status"`
	ExpiresAt      *time.Time    `gorm:"column:expires_at" json:"expires_at,omitempty"`
	PaidAt         *time.Time    `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreatedAt      time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"default:now()" json:"updated_at"`
}

func (PaymentIntent) TableName() string {
	return "payment_intents"
}
