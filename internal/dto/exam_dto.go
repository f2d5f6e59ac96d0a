package dto

import (
	"encoding/json"
	"time"

	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/pkg/ai"
)

// ExamGenerateRequest starts a new exam session.
type ExamGenerateRequest struct {
	Difficulty      string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gt=0"`
}

// SafeExamQuestion is a question as shown to a student during an exam:
// the correct answer and explanation are stripped.
type SafeExamQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Topic    string   `json:"topic"`
}

// ExamGenerateResponse returns the new session and its sanitized questions.
type ExamGenerateResponse struct {
	ExamID          uint               `json:"exam_id"`
	Questions       []SafeExamQuestion `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Difficulty      string             `json:"difficulty"`
	DurationMinutes int                `json:"duration_minutes"`
}

// ExamSubmitRequest carries the student's answers keyed by question ID.
type ExamSubmitRequest struct {
	ExamID  uint           `json:"exam_id"`
	Answers map[string]int `json:"answers"`
}

// ExamSubmitResponse returns the graded outcome with full per-question detail.
type ExamSubmitResponse struct {
	Score          float64             `json:"score"`
	CorrectCount   int                 `json:"correct_count"`
	TotalQuestions int                 `json:"total_questions"`
	Results        []ai.QuestionResult `json:"results"`
}

// ExamSummaryResponse serializes a completed exam for history listings.
type ExamSummaryResponse struct {
	ID              uint       `json:"id"`
	Difficulty      string     `json:"difficulty"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalQuestions  int        `json:"total_questions"`
	Score           *float64   `json:"score"`
	CorrectCount    int        `json:"correct_count"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

// ExamDetailResponse serializes a full exam session including solutions.
// Only served through the detail path, after the session exists for its owner.
type ExamDetailResponse struct {
	ID              uint            `json:"id"`
	Difficulty      string          `json:"difficulty"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalQuestions  int             `json:"total_questions"`
	Score           *float64        `json:"score"`
	CorrectCount    int             `json:"correct_count"`
	Questions       json.RawMessage `json:"questions"`
	StudentAnswers  json.RawMessage `json:"student_answers"`
	Results         json.RawMessage `json:"results"`
	IsCompleted     bool            `json:"is_completed"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at"`
}

// NewSafeExamQuestions strips answer keys and explanations from questions
// before they reach a student who has not yet submitted.
func NewSafeExamQuestions(questions []ai.ExamQuestion) []SafeExamQuestion {
	safe := make([]SafeExamQuestion, 0, len(questions))
	for _, question := range questions {
		safe = append(safe, SafeExamQuestion{
			ID:       question.ID,
			Question: question.Question,
			Options:  question.Options,
			Topic:    question.Topic,
		})
	}

	return safe
}

// NewExamSummaryResponse converts an ExamSession model into a summary DTO.
func NewExamSummaryResponse(model models.ExamSession) ExamSummaryResponse {
	return ExamSummaryResponse{
		ID:              model.ID,
		Difficulty:      model.Difficulty,
		DurationMinutes: model.DurationMinutes,
		TotalQuestions:  model.TotalQuestions,
		Score:           model.Score,
		CorrectCount:    model.CorrectCount,
		CreatedAt:       model.CreatedAt,
		CompletedAt:     model.CompletedAt,
	}
}

// NewExamSummaryResponseSlice converts exam session models into summary DTOs.
func NewExamSummaryResponseSlice(sessions []models.ExamSession) []ExamSummaryResponse {
	responses := make([]ExamSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, NewExamSummaryResponse(session))
	}

	return responses
}

// NewExamDetailResponse converts an ExamSession model into a detail DTO.
func NewExamDetailResponse(model models.ExamSession) ExamDetailResponse {
	return ExamDetailResponse{
		ID:              model.ID,
		Difficulty:      model.Difficulty,
		DurationMinutes: model.DurationMinutes,
		TotalQuestions:  model.TotalQuestions,
		Score:           model.Score,
		CorrectCount:    model.CorrectCount,
		Questions:       json.RawMessage(model.Questions),
		StudentAnswers:  json.RawMessage(model.StudentAnswers),
		Results:         json.RawMessage(model.Results),
		IsCompleted:     model.IsCompleted,
		CreatedAt:       model.CreatedAt,
		CompletedAt:     model.CompletedAt,
	}
}
