package services

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"quizzy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedQuiz(t *testing.T, db *gorm.DB, owner string, correctAnswers []string) *models.Quiz {
	t.Helper()

	require.NoError(t, db.Create(&models.Category{Name: "Science", CreatedBy: owner}).Error)

	quiz := models.Quiz{
		Title:      "Basics",
		Category:   "Science",
		Difficulty: "medium",
		CreatedBy:  owner,
	}
	require.NoError(t, db.Create(&quiz).Error)

	for i, answer := range correctAnswers {
		options, err := json.Marshal([]string{"A", "B", "C", "D"})
		require.NoError(t, err)
		require.NoError(t, db.Create(&models.QuizQuestion{
			QuizID:        quiz.ID,
			Question:      "Question " + strconv.Itoa(i+1),
			Options:       options,
			CorrectAnswer: answer,
		}).Error)
	}
	return &quiz
}

func questionIDs(t *testing.T, db *gorm.DB, quizID uint) []uint {
	t.Helper()

	var ids []uint
	require.NoError(t, db.Model(&models.QuizQuestion{}).Where("quiz_id = ?", quizID).Order("id").Pluck("id", &ids).Error)
	return ids
}

func TestScoreEmptySubmission(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A", "B", "C"})

	result, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{Answers: map[string]string{}}, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 0.0, result.Percentage)
	assert.Empty(t, result.Results)
}

func TestScoreFullyCorrect(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A", "B", "C"})
	ids := questionIDs(t, db, quiz.ID)

	answers := map[string]string{}
	for i, id := range ids {
		answers[strconv.FormatUint(uint64(id), 10)] = []string{"A", "B", "C"}[i]
	}

	result, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{Answers: answers}, "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 100.0, result.Percentage)
	for _, r := range result.Results {
		assert.True(t, r.Correct)
		assert.Nil(t, r.CorrectAnswer)
	}
}

func TestScorePartiallyCorrect(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A", "B", "C"})
	ids := questionIDs(t, db, quiz.ID)

	answers := map[string]string{
		strconv.FormatUint(uint64(ids[0]), 10): "A",
		strconv.FormatUint(uint64(ids[1]), 10): "X",
		strconv.FormatUint(uint64(ids[2]), 10): "C",
	}

	result, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{Answers: answers}, "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 66.67, result.Percentage)

	wrong := result.Results[strconv.FormatUint(uint64(ids[1]), 10)]
	assert.False(t, wrong.Correct)
	assert.Equal(t, "X", wrong.UserAnswer)
	require.NotNil(t, wrong.CorrectAnswer)
	assert.Equal(t, "B", *wrong.CorrectAnswer)
}

func TestScoreUnknownQuestionID(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A"})

	result, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{
		Answers: map[string]string{"99999": "A"},
	}, "")
	require.NoError(t, err)

	// An id from outside the quiz never scores, never errors, and is echoed
	// back as incorrect without a correct answer.
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 1, result.TotalQuestions)
	echoed := result.Results["99999"]
	assert.False(t, echoed.Correct)
	assert.Equal(t, "A", echoed.UserAnswer)
	assert.Nil(t, echoed.CorrectAnswer)
}

func TestScoreZeroQuestionsNoDivisionByZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", nil)

	result, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{Answers: map[string]string{}}, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalQuestions)
	assert.Equal(t, 0.0, result.Percentage)
}

func TestScoreRecordsAttemptForAuthenticatedCaller(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A", "B"})
	ids := questionIDs(t, db, quiz.ID)

	_, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{
		Answers:   map[string]string{strconv.FormatUint(uint64(ids[0]), 10): "A"},
		TimeSpent: 42,
	}, "taker@x.com")
	require.NoError(t, err)

	var attempts []models.QuizAttempt
	require.NoError(t, db.Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.Equal(t, "taker@x.com", attempts[0].UserEmail)
	assert.Equal(t, quiz.ID, attempts[0].QuizID)
	assert.Equal(t, 1, attempts[0].Score)
	assert.Equal(t, 2, attempts[0].TotalQuestions)
	assert.Equal(t, 42, attempts[0].TimeSpent)
}

func TestScoreAnonymousLeavesNoAttempt(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A"})

	_, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{Answers: map[string]string{}}, "")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestHistoryNewestFirstAndSurvivesQuizDeletion(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoringService(db)
	quizzes := NewQuizService(db)
	quiz := seedQuiz(t, db, "a@x.com", []string{"A"})

	_, err := svc.Score(context.Background(), quiz.ID, &SubmitQuizRequest{Answers: map[string]string{}}, "taker@x.com")
	require.NoError(t, err)

	require.NoError(t, quizzes.Delete(context.Background(), "a@x.com", quiz.ID))

	attempts, err := svc.History(context.Background(), "taker@x.com")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, quiz.ID, attempts[0].QuizID)
}
