package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/models"
)

// LabSubmissionRepository defines data operations for lab submissions.
// The natural key is (user_id, lab_id); Upsert replaces the prior row.
type LabSubmissionRepository interface {
	Upsert(ctx context.Context, submission *models.LabSubmission) (created bool, err error)
	ListByUser(ctx context.Context, userID uint) ([]models.LabSubmission, error)
	GetByUserAndLab(ctx context.Context, userID uint, labID string) (models.LabSubmission, error)
}

type labSubmissionRepository struct {
	db *gorm.DB
}

// NewLabSubmissionRepository instantiates the repository.
func NewLabSubmissionRepository(db *gorm.DB) LabSubmissionRepository {
	return &labSubmissionRepository{db: db}
}

func (r *labSubmissionRepository) Upsert(ctx context.Context, submission *models.LabSubmission) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.LabSubmission
		err := tx.Where("user_id = ? AND lab_id = ?", submission.UserID, submission.LabID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(submission).Error
		case err != nil:
			return err
		}

		submission.ID = existing.ID
		submission.CreatedAt = existing.CreatedAt
		return tx.Save(submission).Error
	})

	return created, err
}

func (r *labSubmissionRepository) ListByUser(ctx context.Context, userID uint) ([]models.LabSubmission, error) {
	var submissions []models.LabSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *labSubmissionRepository) GetByUserAndLab(ctx context.Context, userID uint, labID string) (models.LabSubmission, error) {
	var submission models.LabSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND lab_id = ?", userID, labID).
		First(&submission).Error; err != nil {
		return models.LabSubmission{}, err
	}

	return submission, nil
}
