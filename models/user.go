package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FName     string    `json:"fname" gorm:"not null"`
	LName     string    `json:"lname"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  *string   `json:"-"` // nil for accounts created through Google sign-in
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
