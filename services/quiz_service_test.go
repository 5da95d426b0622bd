package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"quizzy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCategory(t *testing.T, db *gorm.DB, owner, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Category{Name: name, CreatedBy: owner}).Error)
}

func TestCreateQuizPersistsQuestionsInOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "a@x.com", "Science")

	quiz, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:       "Basics",
		Description: "Starter quiz",
		Category:    "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B", "C"}, CorrectAnswer: "A"},
			{Question: "Q2", Options: []string{"D", "E", "F"}, CorrectAnswer: "E"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", quiz.Difficulty)

	got, err := svc.GetForUser(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Q1", got.Questions[0].Question)
	assert.Equal(t, "Q2", got.Questions[1].Question)

	var options []string
	require.NoError(t, json.Unmarshal(got.Questions[1].Options, &options))
	assert.Equal(t, []string{"D", "E", "F"}, options)
	assert.Equal(t, "E", got.Questions[1].CorrectAnswer)
}

func TestCreateQuizNoQuestionsIsAtomic(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "a@x.com", "Science")

	_, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Basics",
		Category: "Science",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	var count int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateQuizMissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	_, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateQuizCategoryNotOwned(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "b@x.com", "Science")

	_, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Basics",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteQuizCascadesToQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "a@x.com", "Science")

	quiz, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Basics",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "a@x.com", quiz.ID))

	var questions int64
	require.NoError(t, db.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&questions).Error)
	assert.Zero(t, questions)
}

func TestDeleteQuizOwnershipMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "a@x.com", "Science")

	quiz, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Basics",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "b@x.com", quiz.ID), ErrNotFound)
}

func TestListByCategoryNewestFirstWithCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "a@x.com", "Science")

	older, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Older",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
			{Question: "Q2", Options: []string{"A", "B"}, CorrectAnswer: "B"},
		},
	})
	require.NoError(t, err)
	// Separate the creation timestamps so the ordering is deterministic.
	require.NoError(t, db.Model(&models.Quiz{}).Where("id = ?", older.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Newer",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	summaries, err := svc.ListByCategory(context.Background(), "a@x.com", "Science")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, 1, summaries[0].NumQuestions)
	assert.Equal(t, older.ID, summaries[1].ID)
	assert.Equal(t, 2, summaries[1].NumQuestions)
}

func TestListByCategoryRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "b@x.com", "Science")

	_, err := svc.ListByCategory(context.Background(), "a@x.com", "Science")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPublicByCategoryIgnoresOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "b@x.com", "Science")

	_, err := svc.Create(context.Background(), "b@x.com", &CreateQuizRequest{
		Title:    "Basics",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	summaries, err := svc.ListPublicByCategory(context.Background(), "Science")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Basics", summaries[0].Title)
	assert.Equal(t, 1, summaries[0].NumQuestions)
}

func TestGetForUserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	_, err := svc.GetForUser(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetQuizImage(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	seedCategory(t, db, "a@x.com", "Science")

	quiz, err := svc.Create(context.Background(), "a@x.com", &CreateQuizRequest{
		Title:    "Basics",
		Category: "Science",
		Questions: []CreateQuestionRequest{
			{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetImage(context.Background(), "a@x.com", quiz.ID, "https://example.com/q.jpg"))
	assert.ErrorIs(t, svc.SetImage(context.Background(), "b@x.com", quiz.ID, "https://example.com/q.jpg"), ErrNotFound)

	got, err := svc.GetForUser(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://example.com/q.jpg", *got.ImageURL)
}
