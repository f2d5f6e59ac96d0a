package dto

import (
	"time"

	"github.com/smart-learners/orca-api/internal/models"
)

// AssessmentSubmitRequest records a quiz outcome computed by the client-side
// assessment player. Passed is derived server-side from score vs passing_score.
type AssessmentSubmitRequest struct {
	AssessmentID    int    `json:"assessment_id"`
	AssessmentTitle string `json:"assessment_title"`
	Score           int    `json:"score" validate:"gte=0,lte=100"`
	TotalQuestions  int    `json:"total_questions" validate:"gte=0"`
	CorrectAnswers  int    `json:"correct_answers" validate:"gte=0"`
	PassingScore    int    `json:"passing_score" validate:"gte=0,lte=100"`
}

// AssessmentSubmitResponse summarizes the stored outcome.
type AssessmentSubmitResponse struct {
	AssessmentID int  `json:"assessment_id"`
	Score        int  `json:"score"`
	Passed       bool `json:"passed"`
	IsRetake     bool `json:"is_retake"`
	SavedToDB    bool `json:"saved_to_db"`
}

// AssessmentResultResponse serializes a stored assessment result.
type AssessmentResultResponse struct {
	AssessmentID    int       `json:"assessment_id"`
	AssessmentTitle string    `json:"assessment_title"`
	Score           int       `json:"score"`
	TotalQuestions  int       `json:"total_questions"`
	CorrectAnswers  int       `json:"correct_answers"`
	PassingScore    int       `json:"passing_score"`
	Passed          bool      `json:"passed"`
	CompletedAt     time.Time `json:"completed_at"`
}

// NewAssessmentResultResponse converts an AssessmentResult model into a DTO.
func NewAssessmentResultResponse(model models.AssessmentResult) AssessmentResultResponse {
	return AssessmentResultResponse{
		AssessmentID:    model.AssessmentID,
		AssessmentTitle: model.AssessmentTitle,
		Score:           model.Score,
		TotalQuestions:  model.TotalQuestions,
		CorrectAnswers:  model.CorrectAnswers,
		PassingScore:    model.PassingScore,
		Passed:          model.Passed,
		CompletedAt:     model.CreatedAt,
	}
}

// NewAssessmentResultResponseSlice converts assessment result models into DTOs.
func NewAssessmentResultResponseSlice(results []models.AssessmentResult) []AssessmentResultResponse {
	responses := make([]AssessmentResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewAssessmentResultResponse(result))
	}

	return responses
}
