package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
)

func newProgressService(t *testing.T, name string, cache *redis.Client) (ProgressService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t, name, &models.LabSubmission{}, &models.AssessmentResult{}, &models.ExamSession{})
	svc := NewProgressService(
		repository.NewLabSubmissionRepository(db),
		repository.NewAssessmentResultRepository(db),
		repository.NewExamSessionRepository(db),
		cache,
		time.Minute,
		zerolog.Nop(),
	)

	return svc, db
}

func seedProgress(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()

	require.NoError(t, db.Create(&models.LabSubmission{UserID: userID, LabID: "lab-1", OverallScore: 80, GradingResult: []byte(`{}`)}).Error)
	require.NoError(t, db.Create(&models.LabSubmission{UserID: userID, LabID: "lab-2", OverallScore: 90, GradingResult: []byte(`{}`)}).Error)

	require.NoError(t, db.Create(&models.AssessmentResult{UserID: userID, AssessmentID: 1, Score: 85, Passed: true}).Error)
	require.NoError(t, db.Create(&models.AssessmentResult{UserID: userID, AssessmentID: 2, Score: 50, Passed: false}).Error)

	lowScore := 62.5
	highScore := 87.5
	now := time.Now()
	require.NoError(t, db.Create(&models.ExamSession{UserID: userID, Difficulty: "easy", IsCompleted: true, Score: &lowScore, CompletedAt: &now}).Error)
	require.NoError(t, db.Create(&models.ExamSession{UserID: userID, Difficulty: "hard", IsCompleted: true, Score: &highScore, CompletedAt: &now}).Error)
	require.NoError(t, db.Create(&models.ExamSession{UserID: userID, Difficulty: "easy", IsCompleted: false}).Error)
}

func TestProgressServiceAggregates(t *testing.T) {
	svc, db := newProgressService(t, "progress_aggregate", nil)
	seedProgress(t, db, 1)

	response, err := svc.GetProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, response.LabsSubmitted)
	require.InDelta(t, 85.0, response.AverageLabScore, 0.001)
	require.Equal(t, 2, response.AssessmentsCompleted)
	require.Equal(t, 1, response.AssessmentsPassed)
	require.Equal(t, 2, response.ExamsCompleted)
	require.NotNil(t, response.BestExamScore)
	require.InDelta(t, 87.5, *response.BestExamScore, 0.001)
}

func TestProgressServiceEmpty(t *testing.T) {
	svc, _ := newProgressService(t, "progress_empty", nil)

	response, err := svc.GetProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Zero(t, response.LabsSubmitted)
	require.Zero(t, response.AverageLabScore)
	require.Nil(t, response.BestExamScore)
}

func TestProgressServiceCacheHit(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	svc, db := newProgressService(t, "progress_cache", cache)
	seedProgress(t, db, 1)

	first, err := svc.GetProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, first.LabsSubmitted)

	// New activity is invisible until the cache entry expires.
	require.NoError(t, db.Create(&models.LabSubmission{UserID: 1, LabID: "lab-3", OverallScore: 100, GradingResult: []byte(`{}`)}).Error)

	cached, err := svc.GetProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, cached.LabsSubmitted)

	server.FastForward(2 * time.Minute)

	fresh, err := svc.GetProgress(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 3, fresh.LabsSubmitted)
}

func TestProgressServiceScopedToUser(t *testing.T) {
	svc, db := newProgressService(t, "progress_scope", nil)
	seedProgress(t, db, 1)
	seedProgress(t, db, 2)

	response, err := svc.GetProgress(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 2, response.LabsSubmitted)
	require.Equal(t, 2, response.ExamsCompleted)
}
