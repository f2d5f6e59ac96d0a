package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
	"github.com/smart-learners/orca-api/pkg/ai"
)

type stubModel struct {
	reply string
	err   error
	calls int
}

func (s *stubModel) Generate(_ context.Context, _ []ai.Message, _ ai.GenerateOptions) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

const gradedReply = `{
	"is_relevant": true,
	"relevance_issue": null,
	"overall_score": 85,
	"code_quality": 80,
	"accuracy": 90,
	"efficiency": 75,
	"detailed_feedback": "well structured solution"
}`

func openTestDB(t *testing.T, name string, models ...any) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))

	return db
}

func gradePayload() dto.GradeRequest {
	return dto.GradeRequest{
		LabID: "lab-1",
		LabInfo: &dto.LabInfoPayload{
			Title:        "Image Classifier",
			Category:     "Computer Vision",
			Requirements: []string{"Train a model"},
		},
		CodeContent: "model.fit(x, y)",
		FileName:    "lab1.ipynb",
	}
}

func TestGradingServiceGradePersists(t *testing.T) {
	db := openTestDB(t, "grading_persist", &models.LabSubmission{})
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	response, err := svc.Grade(context.Background(), 1, gradePayload())
	require.NoError(t, err)
	require.True(t, response.SavedToDB)
	require.True(t, response.GradingResult.Success)
	require.Equal(t, 85, response.GradingResult.OverallScore)

	var stored models.LabSubmission
	require.NoError(t, db.First(&stored).Error)
	require.Equal(t, "lab-1", stored.LabID)
	require.Equal(t, 85, stored.OverallScore)
	require.Equal(t, "Image Classifier", stored.LabTitle)
}

func TestGradingServiceRegradeReplacesRow(t *testing.T) {
	db := openTestDB(t, "grading_replace", &models.LabSubmission{})
	model := &stubModel{reply: gradedReply}
	svc := NewGradingService(ai.NewGrader(model, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	_, err := svc.Grade(context.Background(), 1, gradePayload())
	require.NoError(t, err)

	model.reply = strings.Replace(gradedReply, `"overall_score": 85`, `"overall_score": 40`, 1)
	response, err := svc.Grade(context.Background(), 1, gradePayload())
	require.NoError(t, err)
	require.True(t, response.SavedToDB)

	var count int64
	require.NoError(t, db.Model(&models.LabSubmission{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var stored models.LabSubmission
	require.NoError(t, db.First(&stored).Error)
	require.Equal(t, 40, stored.OverallScore)
}

func TestGradingServiceAnonymousNotPersisted(t *testing.T) {
	db := openTestDB(t, "grading_anon", &models.LabSubmission{})
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	response, err := svc.Grade(context.Background(), 0, gradePayload())
	require.NoError(t, err)
	require.False(t, response.SavedToDB)
	require.True(t, response.GradingResult.Success)

	var count int64
	require.NoError(t, db.Model(&models.LabSubmission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGradingServiceMissingLabIDNotPersisted(t *testing.T) {
	db := openTestDB(t, "grading_nolab", &models.LabSubmission{})
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	payload := gradePayload()
	payload.LabID = ""

	response, err := svc.Grade(context.Background(), 1, payload)
	require.NoError(t, err)
	require.False(t, response.SavedToDB)
}

func TestGradingServiceValidation(t *testing.T) {
	db := openTestDB(t, "grading_validate", &models.LabSubmission{})
	model := &stubModel{reply: gradedReply}
	svc := NewGradingService(ai.NewGrader(model, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	payload := gradePayload()
	payload.LabInfo = nil
	_, err := svc.Grade(context.Background(), 1, payload)
	require.ErrorIs(t, err, ErrLabInfoRequired)

	payload = gradePayload()
	payload.CodeContent = ""
	_, err = svc.Grade(context.Background(), 1, payload)
	require.ErrorIs(t, err, ErrCodeContentRequired)

	require.Zero(t, model.calls)
}

func TestGradingServiceDegradedSave(t *testing.T) {
	db := openTestDB(t, "grading_degraded", &models.LabSubmission{})
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	require.NoError(t, db.Migrator().DropTable(&models.LabSubmission{}))

	response, err := svc.Grade(context.Background(), 1, gradePayload())
	require.NoError(t, err)
	require.False(t, response.SavedToDB)
	require.True(t, response.GradingResult.Success)
	require.Equal(t, 85, response.GradingResult.OverallScore)
}

func TestGradingServiceTruncatesStoredCode(t *testing.T) {
	db := openTestDB(t, "grading_truncate", &models.LabSubmission{})
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	payload := gradePayload()
	payload.CodeContent = strings.Repeat("a", models.MaxStoredCodeChars+500)

	_, err := svc.Grade(context.Background(), 1, payload)
	require.NoError(t, err)

	var stored models.LabSubmission
	require.NoError(t, db.First(&stored).Error)
	require.Len(t, stored.CodeContent, models.MaxStoredCodeChars)
}

func TestGradingServiceGetSubmissionNotFound(t *testing.T) {
	db := openTestDB(t, "grading_notfound", &models.LabSubmission{})
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repository.NewLabSubmissionRepository(db), zerolog.Nop())

	_, err := svc.GetSubmission(context.Background(), 1, "missing-lab")
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGradingServiceListSubmissionsNewestFirst(t *testing.T) {
	db := openTestDB(t, "grading_list", &models.LabSubmission{})
	repo := repository.NewLabSubmissionRepository(db)
	svc := NewGradingService(ai.NewGrader(&stubModel{reply: gradedReply}, zerolog.Nop()), repo, zerolog.Nop())

	old := models.LabSubmission{UserID: 1, LabID: "lab-old", LabTitle: "Old", GradingResult: []byte(`{}`)}
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&old).Error)
	recent := models.LabSubmission{UserID: 1, LabID: "lab-new", LabTitle: "New", GradingResult: []byte(`{}`)}
	require.NoError(t, db.Create(&recent).Error)

	list, err := svc.ListSubmissions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "lab-new", list[0].LabID)
}
