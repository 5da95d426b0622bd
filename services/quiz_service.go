package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quizzy/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	Category    string                  `json:"category" binding:"required"`
	Difficulty  string                  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// Create persists the quiz row and its questions in one transaction; a
// failed question insert rolls the whole quiz back.
func (s *QuizService) Create(ctx context.Context, owner string, req *CreateQuizRequest) (*models.Quiz, error) {
	if req.Title == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: title and category are required", ErrInvalidArgument)
	}
	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: at least one question is required", ErrInvalidArgument)
	}

	var category models.Category
	err := s.db.WithContext(ctx).
		Where("name = ? AND created_by = ?", req.Category, owner).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, req.Category)
		}
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  difficulty,
		CreatedBy:   owner,
	}

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, qReq := range req.Questions {
		options, err := json.Marshal(qReq.Options)
		if err != nil {
			tx.Rollback()
			return nil, err
		}

		question := models.QuizQuestion{
			QuizID:        quiz.ID,
			Question:      qReq.Question,
			Options:       options,
			CorrectAnswer: qReq.CorrectAnswer,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &quiz, nil
}

// Delete removes the quiz; its questions go with it through the foreign key
// cascade. Attempt history keeps referencing the dead id.
func (s *QuizService) Delete(ctx context.Context, owner string, quizID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", quizID, owner).
		Delete(&models.Quiz{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
	}
	return nil
}

func (s *QuizService) SetImage(ctx context.Context, owner string, quizID uint, imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("%w: image URL is required", ErrInvalidArgument)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Where("id = ? AND created_by = ?", quizID, owner).
		Update("image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
	}
	return nil
}

// ListByCategory returns the owner's quiz summaries for one category,
// newest first, with a computed question count.
func (s *QuizService) ListByCategory(ctx context.Context, owner, category string) ([]models.QuizSummary, error) {
	var cat models.Category
	err := s.db.WithContext(ctx).
		Where("name = ? AND created_by = ?", category, owner).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, category)
		}
		return nil, err
	}

	var summaries []models.QuizSummary
	err = s.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.title, quizzes.description, quizzes.difficulty, quizzes.created_at, quizzes.image_url, COUNT(quiz_questions.id) AS num_questions").
		Joins("LEFT JOIN quiz_questions ON quiz_questions.quiz_id = quizzes.id").
		Where("quizzes.category = ? AND quizzes.created_by = ?", category, owner).
		Group("quizzes.id").
		Order("quizzes.created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.QuizSummary{}
	}
	return summaries, nil
}

// ListPublicByCategory is the unauthenticated listing: no ownership gate,
// every quiz filed under the category name regardless of who owns it.
func (s *QuizService) ListPublicByCategory(ctx context.Context, category string) ([]models.QuizSummary, error) {
	var summaries []models.QuizSummary
	err := s.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.title, quizzes.description, quizzes.difficulty, quizzes.created_at, quizzes.image_url, (SELECT COUNT(*) FROM quiz_questions WHERE quiz_questions.quiz_id = quizzes.id) AS num_questions").
		Where("quizzes.category = ?", category).
		Order("quizzes.created_at DESC").
		Limit(ownerListLimit).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.QuizSummary{}
	}
	return summaries, nil
}

// GetForUser loads a quiz with its full question list for anyone holding
// the id. Correct answers ride along so the client can render review state;
// there is no access control here beyond knowing the id.
func (s *QuizService) GetForUser(ctx context.Context, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.id")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quiz %d", ErrNotFound, quizID)
		}
		return nil, err
	}
	return &quiz, nil
}
