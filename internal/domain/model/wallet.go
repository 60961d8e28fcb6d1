package model

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is a seller-registered receiving endpoint. A single wallet row may
// expose several capabilities; method selection happens in the resolver.
type Wallet struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Label              string    `gorm:"column:label;size:100" json:"label"`
	EncryptedNWCSecret *string   `gorm:"column:encrypted_nwc_secret;type:text" json:"-"`
	LightningAddress   *string   `gorm:"column:lightning_address;size:255" json:"lightning_address,omitempty"`
	OnchainAddress     *string   `gorm:"column:onchain_address;size:100" json:"onchain_address,omitempty"`
	OnchainCapable     bool      `gorm:"column:onchain_capable;default:false" json:"onchain_capable"`
	IsPrimary          bool      `gorm:"column:is_primary;default:false" json:"is_primary"`
	IsActive           bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt          time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
