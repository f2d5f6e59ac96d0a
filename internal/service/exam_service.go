package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
	"github.com/smart-learners/orca-api/pkg/ai"
)

// ErrExamIDRequired indicates the submit payload omitted the exam.
var ErrExamIDRequired = errors.New("exam ID is required")

// ErrExamNotFound indicates no exam session matches the caller.
var ErrExamNotFound = errors.New("exam session not found")

// ErrExamAlreadyCompleted indicates grading was attempted twice.
var ErrExamAlreadyCompleted = errors.New("this exam has already been submitted")

// ErrExamGenerationFailed wraps a model failure during question generation.
var ErrExamGenerationFailed = errors.New("failed to generate questions")

const defaultExamDuration = 30

// questionCounts maps difficulty to the number of generated questions.
var questionCounts = map[string]int{
	models.ExamDifficultyEasy:   10,
	models.ExamDifficultyMedium: 15,
	models.ExamDifficultyHard:   20,
}

// ExamService manages the exam lifecycle: model-backed question generation,
// local answer scoring, and write-once grading persistence.
type ExamService interface {
	Generate(ctx context.Context, userID uint, payload dto.ExamGenerateRequest) (dto.ExamGenerateResponse, error)
	Submit(ctx context.Context, userID uint, payload dto.ExamSubmitRequest) (dto.ExamSubmitResponse, error)
	History(ctx context.Context, userID uint) ([]dto.ExamSummaryResponse, error)
	Detail(ctx context.Context, userID uint, examID uint) (dto.ExamDetailResponse, error)
}

type examService struct {
	grader    *ai.Grader
	sessions  repository.ExamSessionRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewExamService constructs an ExamService instance.
func NewExamService(grader *ai.Grader, sessions repository.ExamSessionRepository, validate *validator.Validate, logger zerolog.Logger) ExamService {
	return &examService{
		grader:    grader,
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "exam_service").Logger(),
		now:       time.Now,
	}
}

// Generate creates an in-progress session with a model-generated question set.
// The response strips correct answers and explanations.
func (s *examService) Generate(ctx context.Context, userID uint, payload dto.ExamGenerateRequest) (dto.ExamGenerateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExamGenerateResponse{}, err
	}

	duration := payload.DurationMinutes
	if duration == 0 {
		duration = defaultExamDuration
	}

	count := questionCounts[payload.Difficulty]

	questions, err := s.grader.GenerateExamQuestions(ctx, payload.Difficulty, count)
	if err != nil {
		s.logger.Error().Err(err).Str("difficulty", payload.Difficulty).Msg("exam question generation failed")
		return dto.ExamGenerateResponse{}, fmt.Errorf("%w: %s", ErrExamGenerationFailed, err)
	}

	encoded, err := json.Marshal(questions)
	if err != nil {
		return dto.ExamGenerateResponse{}, err
	}

	session := models.ExamSession{
		UserID:          userID,
		Difficulty:      payload.Difficulty,
		DurationMinutes: duration,
		TotalQuestions:  len(questions),
		Questions:       encoded,
	}

	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.ExamGenerateResponse{}, err
	}

	return dto.ExamGenerateResponse{
		ExamID:          session.ID,
		Questions:       dto.NewSafeExamQuestions(questions),
		TotalQuestions:  len(questions),
		Difficulty:      payload.Difficulty,
		DurationMinutes: duration,
	}, nil
}

// Submit grades the answers locally against the stored key and records the
// outcome exactly once. Grading an already-completed session is rejected and
// the stored results stay untouched.
func (s *examService) Submit(ctx context.Context, userID uint, payload dto.ExamSubmitRequest) (dto.ExamSubmitResponse, error) {
	if payload.ExamID == 0 {
		return dto.ExamSubmitResponse{}, ErrExamIDRequired
	}

	session, err := s.sessions.GetByIDAndUser(ctx, payload.ExamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamSubmitResponse{}, ErrExamNotFound
		}
		return dto.ExamSubmitResponse{}, err
	}

	if session.IsCompleted {
		return dto.ExamSubmitResponse{}, ErrExamAlreadyCompleted
	}

	var questions []ai.ExamQuestion
	if err := json.Unmarshal(session.Questions, &questions); err != nil {
		return dto.ExamSubmitResponse{}, fmt.Errorf("decode stored questions: %w", err)
	}

	score := ai.ScoreExam(questions, payload.Answers)

	answersJSON, err := json.Marshal(payload.Answers)
	if err != nil {
		return dto.ExamSubmitResponse{}, err
	}
	resultsJSON, err := json.Marshal(score.Results)
	if err != nil {
		return dto.ExamSubmitResponse{}, err
	}

	grading := repository.ExamGrading{
		StudentAnswers: answersJSON,
		Results:        resultsJSON,
		Score:          score.Score,
		CorrectCount:   score.CorrectCount,
		CompletedAt:    s.now(),
	}

	if err := s.sessions.SaveGrading(ctx, session.ID, userID, grading); err != nil {
		if errors.Is(err, repository.ErrExamGradingConflict) {
			return dto.ExamSubmitResponse{}, ErrExamAlreadyCompleted
		}
		return dto.ExamSubmitResponse{}, err
	}

	return dto.ExamSubmitResponse{
		Score:          score.Score,
		CorrectCount:   score.CorrectCount,
		TotalQuestions: score.TotalQuestions,
		Results:        score.Results,
	}, nil
}

func (s *examService) History(ctx context.Context, userID uint) ([]dto.ExamSummaryResponse, error) {
	sessions, err := s.sessions.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return dto.NewExamSummaryResponseSlice(sessions), nil
}

func (s *examService) Detail(ctx context.Context, userID uint, examID uint) (dto.ExamDetailResponse, error) {
	session, err := s.sessions.GetByIDAndUser(ctx, examID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExamDetailResponse{}, ErrExamNotFound
		}
		return dto.ExamDetailResponse{}, err
	}

	return dto.NewExamDetailResponse(session), nil
}
