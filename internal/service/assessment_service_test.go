package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
)

func newAssessmentService(t *testing.T, name string) (AssessmentService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t, name, &models.AssessmentResult{})
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAssessmentService(repository.NewAssessmentResultRepository(db), validate, zerolog.Nop())

	return svc, db
}

func TestAssessmentServiceSubmitAndRetake(t *testing.T) {
	svc, db := newAssessmentService(t, "assessment_retake")

	payload := dto.AssessmentSubmitRequest{
		AssessmentID:    7,
		AssessmentTitle: "Module 2 Quiz",
		Score:           90,
		TotalQuestions:  10,
		CorrectAnswers:  9,
		PassingScore:    80,
	}

	first, err := svc.Submit(context.Background(), 1, payload)
	require.NoError(t, err)
	require.True(t, first.SavedToDB)
	require.False(t, first.IsRetake)
	require.True(t, first.Passed)

	payload.Score = 60
	payload.CorrectAnswers = 6
	second, err := svc.Submit(context.Background(), 1, payload)
	require.NoError(t, err)
	require.True(t, second.SavedToDB)
	require.True(t, second.IsRetake)
	require.False(t, second.Passed)

	var count int64
	require.NoError(t, db.Model(&models.AssessmentResult{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	var stored models.AssessmentResult
	require.NoError(t, db.First(&stored).Error)
	require.Equal(t, 60, stored.Score)
	require.False(t, stored.Passed)
}

func TestAssessmentServiceDefaultPassingScore(t *testing.T) {
	svc, _ := newAssessmentService(t, "assessment_default")

	response, err := svc.Submit(context.Background(), 1, dto.AssessmentSubmitRequest{
		AssessmentID: 3,
		Score:        79,
	})
	require.NoError(t, err)
	require.False(t, response.Passed)

	response, err = svc.Submit(context.Background(), 1, dto.AssessmentSubmitRequest{
		AssessmentID: 4,
		Score:        80,
	})
	require.NoError(t, err)
	require.True(t, response.Passed)
}

func TestAssessmentServiceAnonymousNotPersisted(t *testing.T) {
	svc, db := newAssessmentService(t, "assessment_anon")

	response, err := svc.Submit(context.Background(), 0, dto.AssessmentSubmitRequest{
		AssessmentID: 5,
		Score:        95,
	})
	require.NoError(t, err)
	require.False(t, response.SavedToDB)
	require.True(t, response.Passed)

	var count int64
	require.NoError(t, db.Model(&models.AssessmentResult{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAssessmentServiceValidation(t *testing.T) {
	svc, _ := newAssessmentService(t, "assessment_validate")

	_, err := svc.Submit(context.Background(), 1, dto.AssessmentSubmitRequest{Score: 50})
	require.ErrorIs(t, err, ErrAssessmentIDRequired)

	_, err = svc.Submit(context.Background(), 1, dto.AssessmentSubmitRequest{AssessmentID: 1, Score: 130})
	require.Error(t, err)
}

func TestAssessmentServiceGetResultNotFound(t *testing.T) {
	svc, _ := newAssessmentService(t, "assessment_notfound")

	_, err := svc.GetResult(context.Background(), 1, 42)
	require.ErrorIs(t, err, ErrAssessmentResultNotFound)
}

func TestAssessmentServiceListResultsAnonymousEmpty(t *testing.T) {
	svc, _ := newAssessmentService(t, "assessment_list_anon")

	results, err := svc.ListResults(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, results)
}
