package models

import (
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Category    string    `json:"category" gorm:"not null;index"`
	Difficulty  string    `json:"difficulty" gorm:"not null;default:'medium'"` // easy, medium, hard
	CreatedBy   string    `json:"-" gorm:"not null;index"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`

	Questions []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

// Options holds the ordered option strings as a JSON array; index order is
// presentation order, while correctness is matched by value.
type QuizQuestion struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	QuizID        uint           `json:"-" gorm:"not null;index"`
	Question      string         `json:"question" gorm:"not null"`
	Options       datatypes.JSON `json:"options" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
}

// QuizSummary is the listing shape: quiz columns plus a computed question
// count, never the questions themselves.
type QuizSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	CreatedAt    time.Time `json:"created_at"`
	ImageURL     *string   `json:"image_url"`
	NumQuestions int       `json:"num_questions"`
}
