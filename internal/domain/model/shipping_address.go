package model

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is buyer-owned postal data referenced by orders. At most
// one address per user may be the default.
type ShippingAddress struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name       string    `gorm:"column:name;size:100;not null" json:"name"`
	Line1      string    `gorm:"column:line1;size:255;not null" json:"line1"`
	Line2      string    `gorm:"column:line2;size:255" json:"line2,omitempty"`
	City       string    `gorm:"column:city;size:100;not null" json:"city"`
	State      string    `gorm:"column:state;size:100" json:"state,omitempty"`
	PostalCode string    `gorm:"column:postal_code;size:20;not null" json:"postal_code"`
	Country    string    `gorm:"column:country;size:2;not null" json:"country"`
	IsDefault  bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:now()" json:"updated_at"`
}

func (ShippingAddress) TableName() string {
	return "shipping_addresses"
}
