package models

import (
	"time"
)

// User represents a registered marketplace user
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:25;uniqueIndex;not null" json:"username"`
	FirstName  string    `gorm:"size:25;not null" json:"first_name"`
	LastName   string    `gorm:"size:25;not null" json:"last_name"`
	Email      string    `gorm:"not null" json:"email"`
	CellPhone  *string   `gorm:"size:20" json:"cell_phone,omitempty"`
	LocationID *uint     `gorm:"index" json:"location_id,omitempty"`
	Location   *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
