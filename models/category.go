package models

import (
	"time"
)

// Category names are only unique per owner; two accounts can each have
// their own "Science".
type Category struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_category_owner;not null"`
	CreatedBy string    `json:"-" gorm:"uniqueIndex:idx_category_owner;not null"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
