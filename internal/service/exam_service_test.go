package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
	"github.com/smart-learners/orca-api/pkg/ai"
)

func examReply(n int) string {
	entries := make([]string, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, fmt.Sprintf(`{
			"question": "q-%d",
			"options": ["a", "b", "c", "d"],
			"correct_answer": %d,
			"explanation": "because",
			"topic": "Module 2"
		}`, i, i%4))
	}
	return fmt.Sprintf(`{"questions": [%s]}`, strings.Join(entries, ","))
}

func newExamService(t *testing.T, name string, model *stubModel) (ExamService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t, name, &models.ExamSession{})
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewExamService(ai.NewGrader(model, zerolog.Nop()), repository.NewExamSessionRepository(db), validate, zerolog.Nop())

	return svc, db
}

func TestExamServiceGenerateEasy(t *testing.T) {
	svc, db := newExamService(t, "exam_generate", &stubModel{reply: examReply(10)})

	response, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.NoError(t, err)
	require.NotZero(t, response.ExamID)
	require.Equal(t, 10, response.TotalQuestions)
	require.Equal(t, 30, response.DurationMinutes)
	require.Len(t, response.Questions, 10)

	// Clients never see the answer key before grading.
	encoded, err := json.Marshal(response.Questions)
	require.NoError(t, err)
	require.NotContains(t, string(encoded), "correct_answer")
	require.NotContains(t, string(encoded), "explanation")

	var session models.ExamSession
	require.NoError(t, db.First(&session).Error)
	require.False(t, session.IsCompleted)
	require.Equal(t, "easy", session.Difficulty)

	var stored []ai.ExamQuestion
	require.NoError(t, json.Unmarshal(session.Questions, &stored))
	require.Len(t, stored, 10)
	require.Equal(t, 1, stored[0].ID)
}

func TestExamServiceGenerateInvalidDifficulty(t *testing.T) {
	model := &stubModel{reply: examReply(10)}
	svc, _ := newExamService(t, "exam_difficulty", model)

	_, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "brutal"})
	require.Error(t, err)
	require.Zero(t, model.calls)
}

func TestExamServiceGenerateShortReply(t *testing.T) {
	svc, db := newExamService(t, "exam_short", &stubModel{reply: examReply(4)})

	_, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.ErrorIs(t, err, ErrExamGenerationFailed)

	var count int64
	require.NoError(t, db.Model(&models.ExamSession{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestExamServiceSubmitGrades(t *testing.T) {
	svc, db := newExamService(t, "exam_submit", &stubModel{reply: examReply(10)})

	generated, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.NoError(t, err)

	// 7 correct answers, 2 wrong, one unanswered.
	answers := map[string]int{}
	for i := 0; i < 7; i++ {
		answers[strconv.Itoa(i+1)] = i % 4
	}
	answers["8"] = (7%4 + 1) % 4
	answers["9"] = (8%4 + 1) % 4

	result, err := svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{ExamID: generated.ExamID, Answers: answers})
	require.NoError(t, err)
	require.Equal(t, 7, result.CorrectCount)
	require.Equal(t, 10, result.TotalQuestions)
	require.InDelta(t, 70.0, result.Score, 0.001)
	require.Len(t, result.Results, 10)

	var session models.ExamSession
	require.NoError(t, db.First(&session).Error)
	require.True(t, session.IsCompleted)
	require.NotNil(t, session.Score)
	require.InDelta(t, 70.0, *session.Score, 0.001)
	require.NotNil(t, session.CompletedAt)
}

func TestExamServiceDoubleSubmitRejected(t *testing.T) {
	svc, db := newExamService(t, "exam_double", &stubModel{reply: examReply(10)})

	generated, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.NoError(t, err)

	answers := map[string]int{"1": 0}
	first, err := svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{ExamID: generated.ExamID, Answers: answers})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{ExamID: generated.ExamID, Answers: map[string]int{}})
	require.ErrorIs(t, err, ErrExamAlreadyCompleted)

	var session models.ExamSession
	require.NoError(t, db.First(&session).Error)
	require.NotNil(t, session.Score)
	require.InDelta(t, first.Score, *session.Score, 0.001)
}

func TestExamServiceSubmitValidation(t *testing.T) {
	svc, _ := newExamService(t, "exam_validate", &stubModel{reply: examReply(10)})

	_, err := svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{})
	require.ErrorIs(t, err, ErrExamIDRequired)

	_, err = svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{ExamID: 999})
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestExamServiceSubmitWrongOwner(t *testing.T) {
	svc, _ := newExamService(t, "exam_owner", &stubModel{reply: examReply(10)})

	generated, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 2, dto.ExamSubmitRequest{ExamID: generated.ExamID, Answers: map[string]int{}})
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestExamServiceHistoryOnlyCompleted(t *testing.T) {
	svc, db := newExamService(t, "exam_history", &stubModel{reply: examReply(10)})

	generated, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{ExamID: generated.ExamID, Answers: map[string]int{"1": 0}})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, generated.ExamID, history[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.ExamSession{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestExamServiceDetailRevealsSolutions(t *testing.T) {
	svc, _ := newExamService(t, "exam_detail", &stubModel{reply: examReply(10)})

	generated, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "easy", DurationMinutes: 45})
	require.NoError(t, err)

	detail, err := svc.Detail(context.Background(), 1, generated.ExamID)
	require.NoError(t, err)
	require.Equal(t, "easy", detail.Difficulty)
	require.Equal(t, 45, detail.DurationMinutes)
	require.Contains(t, string(detail.Questions), "correct_answer")

	_, err = svc.Detail(context.Background(), 2, generated.ExamID)
	require.ErrorIs(t, err, ErrExamNotFound)
}

func TestExamServiceCompletedAtSet(t *testing.T) {
	model := &stubModel{reply: examReply(15)}
	svc, db := newExamService(t, "exam_completed_at", model)

	fixed := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	if concrete, ok := svc.(*examService); ok {
		concrete.now = func() time.Time { return fixed }
	}

	generated, err := svc.Generate(context.Background(), 1, dto.ExamGenerateRequest{Difficulty: "medium"})
	require.NoError(t, err)
	require.Equal(t, 15, generated.TotalQuestions)

	_, err = svc.Submit(context.Background(), 1, dto.ExamSubmitRequest{ExamID: generated.ExamID, Answers: map[string]int{}})
	require.NoError(t, err)

	var session models.ExamSession
	require.NoError(t, db.First(&session).Error)
	require.NotNil(t, session.CompletedAt)
	require.True(t, session.CompletedAt.Equal(fixed))
}
