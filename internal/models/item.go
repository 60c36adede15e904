package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a listing for sale. Claimed tracks whether a live Claim
// exists against it; the two are only ever written together in one
// transaction.
type Item struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SellerID    uint            `gorm:"index;not null" json:"seller_id"`
	Seller      *User           `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:1000" json:"description"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Claimed     bool            `gorm:"default:false;index" json:"claimed"`
	ImageHandle *string         `gorm:"size:64" json:"image_handle,omitempty"`
	UploadedAt  time.Time       `gorm:"index" json:"uploaded_at"`
}

// TableName specifies the table name for Item model
func (Item) TableName() string {
	return "items"
}
