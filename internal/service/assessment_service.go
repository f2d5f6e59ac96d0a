package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
)

// ErrAssessmentIDRequired indicates the submit payload omitted the assessment.
var ErrAssessmentIDRequired = errors.New("assessment ID is required")

// ErrAssessmentResultNotFound indicates no stored result for the assessment.
var ErrAssessmentResultNotFound = errors.New("no result found for this assessment")

const defaultPassingScore = 80

// AssessmentService records quiz outcomes with replace-on-retake semantics.
type AssessmentService interface {
	Submit(ctx context.Context, userID uint, payload dto.AssessmentSubmitRequest) (dto.AssessmentSubmitResponse, error)
	ListResults(ctx context.Context, userID uint) ([]dto.AssessmentResultResponse, error)
	GetResult(ctx context.Context, userID uint, assessmentID int) (dto.AssessmentResultResponse, error)
}

type assessmentService struct {
	results   repository.AssessmentResultRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAssessmentService constructs an AssessmentService instance.
func NewAssessmentService(results repository.AssessmentResultRepository, validate *validator.Validate, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		results:   results,
		validator: validate,
		logger:    logger.With().Str("component", "assessment_service").Logger(),
	}
}

// Submit derives the pass flag server-side and upserts the result by
// (user, assessment). Anonymous callers get the computed outcome without
// persistence. Database failures degrade to SavedToDB=false.
func (s *assessmentService) Submit(ctx context.Context, userID uint, payload dto.AssessmentSubmitRequest) (dto.AssessmentSubmitResponse, error) {
	if payload.AssessmentID == 0 {
		return dto.AssessmentSubmitResponse{}, ErrAssessmentIDRequired
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentSubmitResponse{}, err
	}

	passingScore := payload.PassingScore
	if passingScore == 0 {
		passingScore = defaultPassingScore
	}
	passed := payload.Score >= passingScore

	response := dto.AssessmentSubmitResponse{
		AssessmentID: payload.AssessmentID,
		Score:        payload.Score,
		Passed:       passed,
	}

	if userID == 0 {
		return response, nil
	}

	result := models.AssessmentResult{
		UserID:          userID,
		AssessmentID:    payload.AssessmentID,
		AssessmentTitle: payload.AssessmentTitle,
		Score:           payload.Score,
		TotalQuestions:  payload.TotalQuestions,
		CorrectAnswers:  payload.CorrectAnswers,
		PassingScore:    passingScore,
		Passed:          passed,
	}

	created, err := s.results.Upsert(ctx, &result)
	if err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Int("assessment_id", payload.AssessmentID).Msg("failed to save assessment result")
		return response, nil
	}

	response.SavedToDB = true
	response.IsRetake = !created

	return response, nil
}

func (s *assessmentService) ListResults(ctx context.Context, userID uint) ([]dto.AssessmentResultResponse, error) {
	if userID == 0 {
		return []dto.AssessmentResultResponse{}, nil
	}

	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssessmentResultResponseSlice(results), nil
}

func (s *assessmentService) GetResult(ctx context.Context, userID uint, assessmentID int) (dto.AssessmentResultResponse, error) {
	result, err := s.results.GetByUserAndAssessment(ctx, userID, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssessmentResultResponse{}, ErrAssessmentResultNotFound
		}
		return dto.AssessmentResultResponse{}, err
	}

	return dto.NewAssessmentResultResponse(result), nil
}
