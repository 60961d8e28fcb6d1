package model

import (
	"time"

	"github.com/google/uuid"
)

// Contribution is the dependent record for variable-amount campaign support.
// Settlement of the owning intent is its terminal state; there is no fulfillment.
type Contribution struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	IntentID      uuid.UUID `gorm:"column:intent_id;type:uuid;not null;uniqueIndex" json:"intent_id"`
	CampaignID    uuid.UUID `gorm:"column:campaign_id;type:uuid;not null;index" json:"campaign_id"`
	ContributorID uuid.UUID `gorm:"column:contributor_id;type:uuid;not null;index" json:"contributor_id"`
	AmountSats    int64     `gorm:"column:amount_sats;not null" json:"amount_sats"`
	Message       *string   `gorm:"column:message;type:text" json:"message,omitempty"`
	Anonymous     bool      `gorm:"column:anonymous;default:false" json:"anonymous"`
	CreatedAt     time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:now()" json:"updated_at"`

	Intent *PaymentIntent `gorm:"foreignKey:IntentID" json:"intent,omitempty"`
}

func (Contribution) TableName() string {
	return "contributions"
}
