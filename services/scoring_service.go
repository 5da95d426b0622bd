package services

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"quizzy/models"

	"gorm.io/gorm"
)

type ScoringService struct {
	db *gorm.DB
}

func NewScoringService(db *gorm.DB) *ScoringService {
	return &ScoringService{db: db}
}

// Answers may be empty (scored against the full question count) but must be
// present; nil means the field was missing from the request.
type SubmitQuizRequest struct {
	Answers   map[string]string `json:"answers"`
	TimeSpent int               `json:"time_spent"`
}

type QuestionResult struct {
	Correct       bool    `json:"correct"`
	UserAnswer    string  `json:"user_answer"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
}

type SubmitQuizResult struct {
	Score          int                       `json:"score"`
	TotalQuestions int                       `json:"total_questions"`
	Percentage     float64                   `json:"percentage"`
	Results        map[string]QuestionResult `json:"results"`
}

// Score grades one submission against the quiz's stored answers.
//
// Answers are keyed by question id; an id that does not belong to the quiz
// never scores and never errors, but is still echoed back as incorrect with
// no correct_answer. A submitted answer is correct only on exact string
// equality. The total is the quiz's question count, so unanswered questions
// count as wrong. When userEmail is non-empty an immutable attempt row is
// written; anonymous submissions are graded but leave no trace.
func (s *ScoringService) Score(ctx context.Context, quizID uint, req *SubmitQuizRequest, userEmail string) (*SubmitQuizResult, error) {
	if req.Answers == nil {
		return nil, fmt.Errorf("%w: answers are required", ErrInvalidArgument)
	}

	var questions []models.QuizQuestion
	err := s.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	correctAnswers := make(map[uint]string, len(questions))
	for _, q := range questions {
		correctAnswers[q.ID] = q.CorrectAnswer
	}

	score := 0
	results := make(map[string]QuestionResult, len(req.Answers))

	for key, userAnswer := range req.Answers {
		questionID, convErr := strconv.ParseUint(key, 10, 32)
		var correct string
		var known bool
		if convErr == nil {
			correct, known = correctAnswers[uint(questionID)]
		}

		if known && userAnswer == correct {
			score++
			results[key] = QuestionResult{Correct: true, UserAnswer: userAnswer}
			continue
		}

		result := QuestionResult{Correct: false, UserAnswer: userAnswer}
		if known {
			result.CorrectAnswer = &correct
		}
		results[key] = result
	}

	total := len(correctAnswers)
	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(score)/float64(total)*100*100) / 100
	}

	if userEmail != "" {
		attempt := models.QuizAttempt{
			UserEmail:      userEmail,
			QuizID:         quizID,
			Score:          score,
			TotalQuestions: total,
			TimeSpent:      req.TimeSpent,
		}
		if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
			return nil, err
		}
	}

	return &SubmitQuizResult{
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Results:        results,
	}, nil
}

// History returns the caller's attempts, newest first. Attempts for quizzes
// that have since been deleted still show up; callers resolve the quiz id
// themselves and must handle the missing-quiz case.
func (s *ScoringService) History(ctx context.Context, userEmail string) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := s.db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Order("attempted_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
