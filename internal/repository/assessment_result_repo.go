package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/models"
)

// AssessmentResultRepository defines data operations for assessment results.
// The natural key is (user_id, assessment_id); a retake replaces the row.
type AssessmentResultRepository interface {
	Upsert(ctx context.Context, result *models.AssessmentResult) (created bool, err error)
	ListByUser(ctx context.Context, userID uint) ([]models.AssessmentResult, error)
	GetByUserAndAssessment(ctx context.Context, userID uint, assessmentID int) (models.AssessmentResult, error)
}

type assessmentResultRepository struct {
	db *gorm.DB
}

// NewAssessmentResultRepository instantiates the repository.
func NewAssessmentResultRepository(db *gorm.DB) AssessmentResultRepository {
	return &assessmentResultRepository{db: db}
}

func (r *assessmentResultRepository) Upsert(ctx context.Context, result *models.AssessmentResult) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.AssessmentResult
		err := tx.Where("user_id = ? AND assessment_id = ?", result.UserID, result.AssessmentID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(result).Error
		case err != nil:
			return err
		}

		result.ID = existing.ID
		result.CreatedAt = existing.CreatedAt
		return tx.Save(result).Error
	})

	return created, err
}

func (r *assessmentResultRepository) ListByUser(ctx context.Context, userID uint) ([]models.AssessmentResult, error) {
	var results []models.AssessmentResult
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *assessmentResultRepository) GetByUserAndAssessment(ctx context.Context, userID uint, assessmentID int) (models.AssessmentResult, error) {
	var result models.AssessmentResult
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		First(&result).Error; err != nil {
		return models.AssessmentResult{}, err
	}

	return result, nil
}
