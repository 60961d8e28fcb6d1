package model

import (
	"time"

	"github.com/google/uuid"
)

// Stall is the selling front a user operates. Listings are owned by a stall,
// not directly by a user; the resolver follows the indirection.
type Stall struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Stall) TableName() string {
	return "stalls"
}

// Listing is a fixed-price item: one buyer pays the stored price for one unit.
type Listing struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	StallID   uuid.UUID `gorm:"column:stall_id;type:uuid;not null;index" json:"stall_id"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	PriceSats int64     `gorm:"column:price_sats;not null" json:"price_sats"`
	Inventory int       `gorm:"column:inventory;not null;default:0" json:"inventory"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`

	Stall *Stall `gorm:"foreignKey:StallID" json:"stall,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}
