package models

import (
	"time"
)

// QuizAttempt rows are insert-only. The quiz id is not a foreign key on
// purpose: deleting a quiz keeps its attempt history, so readers must
// tolerate attempts that reference a quiz that no longer exists.
type QuizAttempt struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserEmail      string    `json:"user_email" gorm:"not null;index"`
	QuizID         uint      `json:"quiz_id" gorm:"not null"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	TimeSpent      int       `json:"time_spent" gorm:"not null;default:0"` // seconds
	AttemptedAt    time.Time `json:"attempted_at" gorm:"autoCreateTime"`
}
