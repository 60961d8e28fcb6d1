package model

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is a fundraising target supported by arbitrary buyer-chosen
// contributions. Owned directly by a user.
type Campaign struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Title      string    `gorm:"column:title;size:255;not null" json:"title"`
	GoalSats   int64     `gorm:"column:goal_sats" json:"goal_sats"`
	RaisedSats int64     `gorm:"column:raised_sats;not null;default:0" json:"raised_sats"`
	IsActive   bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:now()" json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
