package models

import (
	"time"
)

// Claim records a buyer's commitment to purchase an item. At most one live
// Claim exists per item.
type Claim struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   uint      `gorm:"index;not null" json:"buyer_id"`
	Buyer     *User     `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	ItemID    uint      `gorm:"uniqueIndex;not null" json:"item_id"`
	Item      *Item     `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Claim model
func (Claim) TableName() string {
	return "claims"
}
