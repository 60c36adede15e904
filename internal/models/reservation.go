package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is a standing request: notify the owner when an item matching
// the search query is listed at or under the max price.
type Reservation struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SearchQuery string          `gorm:"size:1000;not null" json:"search_query"`
	MaxPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"max_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
