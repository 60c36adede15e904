package models

import (
	"github.com/shopspring/decimal"
)

// Location represents a meetup spot shared by users
type Location struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Latitude  decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"latitude"`
	Longitude decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"longitude"`
}

// TableName specifies the table name for Location model
func (Location) TableName() string {
	return "locations"
}
