package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/models"
)

// ErrExamGradingConflict indicates a grading write matched no in-progress
// session row, meaning the session was already completed by a concurrent
// submission.
var ErrExamGradingConflict = errors.New("exam session already graded")

// ExamGrading carries the write-once grading payload for an exam session.
type ExamGrading struct {
	StudentAnswers datatypes.JSON
	Results        datatypes.JSON
	Score          float64
	CorrectCount   int
	CompletedAt    time.Time
}

// ExamSessionRepository defines data operations for exam sessions. SaveGrading
// is guarded: it only updates a session whose completion flag is still unset.
type ExamSessionRepository interface {
	Create(ctx context.Context, session *models.ExamSession) error
	GetByIDAndUser(ctx context.Context, id uint, userID uint) (models.ExamSession, error)
	ListCompletedByUser(ctx context.Context, userID uint) ([]models.ExamSession, error)
	SaveGrading(ctx context.Context, id uint, userID uint, grading ExamGrading) error
}

type examSessionRepository struct {
	db *gorm.DB
}

// NewExamSessionRepository instantiates the repository.
func NewExamSessionRepository(db *gorm.DB) ExamSessionRepository {
	return &examSessionRepository{db: db}
}

func (r *examSessionRepository) Create(ctx context.Context, session *models.ExamSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *examSessionRepository) GetByIDAndUser(ctx context.Context, id uint, userID uint) (models.ExamSession, error) {
	var session models.ExamSession
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error; err != nil {
		return models.ExamSession{}, err
	}

	return session, nil
}

func (r *examSessionRepository) ListCompletedByUser(ctx context.Context, userID uint) ([]models.ExamSession, error) {
	var sessions []models.ExamSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

// SaveGrading writes the grading outcome once. The update is conditional on
// is_completed still being false; a second grading attempt matches no row and
// reports ErrExamGradingConflict, leaving the stored results untouched.
func (r *examSessionRepository) SaveGrading(ctx context.Context, id uint, userID uint, grading ExamGrading) error {
	result := r.db.WithContext(ctx).
		Model(&models.ExamSession{}).
		Where("id = ? AND user_id = ? AND is_completed = ?", id, userID, false).
		Updates(map[string]any{
			"student_answers": grading.StudentAnswers,
			"results":         grading.Results,
			"score":           grading.Score,
			"correct_count":   grading.CorrectCount,
			"is_completed":    true,
			"completed_at":    grading.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrExamGradingConflict
	}

	return nil
}
