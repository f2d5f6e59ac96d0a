package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/observability"
	"github.com/smart-learners/orca-api/internal/repository"
	"github.com/smart-learners/orca-api/pkg/ai"
)

// ErrLabInfoRequired indicates the grading payload omitted the lab description.
var ErrLabInfoRequired = errors.New("lab information is required")

// ErrCodeContentRequired indicates the grading payload omitted the code body.
var ErrCodeContentRequired = errors.New("code content is required")

// ErrSubmissionNotFound indicates no stored submission matches the lab.
var ErrSubmissionNotFound = errors.New("no submission found for this lab")

// GradingService runs the lab grading flow: validate, grade via the model,
// then upsert the latest result for the (user, lab) key.
type GradingService interface {
	Grade(ctx context.Context, userID uint, payload dto.GradeRequest) (dto.GradeResponse, error)
	ListSubmissions(ctx context.Context, userID uint) ([]dto.LabSubmissionResponse, error)
	GetSubmission(ctx context.Context, userID uint, labID string) (dto.LabSubmissionResponse, error)
}

type gradingService struct {
	grader      *ai.Grader
	submissions repository.LabSubmissionRepository
	logger      zerolog.Logger
}

// NewGradingService constructs a GradingService instance.
func NewGradingService(grader *ai.Grader, submissions repository.LabSubmissionRepository, logger zerolog.Logger) GradingService {
	return &gradingService{
		grader:      grader,
		submissions: submissions,
		logger:      logger.With().Str("component", "grading_service").Logger(),
	}
}

// Grade validates the payload, grades the submission and persists the result
// when the caller is authenticated and named a lab. A persistence failure is
// logged and reported through SavedToDB; the grading result still reaches the
// caller (degraded success).
func (s *gradingService) Grade(ctx context.Context, userID uint, payload dto.GradeRequest) (dto.GradeResponse, error) {
	if payload.LabInfo == nil {
		return dto.GradeResponse{}, ErrLabInfoRequired
	}
	if payload.CodeContent == "" {
		return dto.GradeResponse{}, ErrCodeContentRequired
	}

	result := s.grader.GradeLab(ctx, payload.LabInfo.ToLabInfo(), payload.CodeContent, dto.ToNotebookCells(payload.CellsInfo))

	saved := false
	if userID != 0 && payload.LabID != "" {
		if err := s.persist(ctx, userID, payload, result); err != nil {
			s.logger.Warn().Err(err).Uint("user_id", userID).Str("lab_id", payload.LabID).Msg("failed to save lab submission")
			observability.GradingSaved().WithLabelValues("failed").Inc()
		} else {
			saved = true
			observability.GradingSaved().WithLabelValues("saved").Inc()
		}
	}

	return dto.GradeResponse{GradingResult: result, SavedToDB: saved}, nil
}

func (s *gradingService) persist(ctx context.Context, userID uint, payload dto.GradeRequest, result ai.LabGradingResult) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}

	code := payload.CodeContent
	if len(code) > models.MaxStoredCodeChars {
		code = code[:models.MaxStoredCodeChars]
	}

	submission := models.LabSubmission{
		UserID:        userID,
		LabID:         payload.LabID,
		LabTitle:      payload.LabInfo.Title,
		LabCategory:   payload.LabInfo.Category,
		OverallScore:  result.OverallScore,
		CodeQuality:   result.CodeQuality,
		Accuracy:      result.Accuracy,
		Efficiency:    result.Efficiency,
		GradingResult: encoded,
		CodeContent:   code,
		FileName:      payload.FileName,
	}

	_, err = s.submissions.Upsert(ctx, &submission)
	return err
}

func (s *gradingService) ListSubmissions(ctx context.Context, userID uint) ([]dto.LabSubmissionResponse, error) {
	submissions, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewLabSubmissionResponseSlice(submissions), nil
}

func (s *gradingService) GetSubmission(ctx context.Context, userID uint, labID string) (dto.LabSubmissionResponse, error) {
	submission, err := s.submissions.GetByUserAndLab(ctx, userID, labID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LabSubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.LabSubmissionResponse{}, err
	}

	return dto.NewLabSubmissionResponse(submission), nil
}
