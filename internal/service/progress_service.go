package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/repository"
)

// ProgressService aggregates a learner's lab, assessment and exam activity.
type ProgressService interface {
	GetProgress(ctx context.Context, userID uint) (dto.ProgressResponse, error)
}

type progressService struct {
	submissions repository.LabSubmissionRepository
	assessments repository.AssessmentResultRepository
	exams       repository.ExamSessionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewProgressService builds the progress aggregator. The cache client is
// optional; a nil client disables caching.
func NewProgressService(submissions repository.LabSubmissionRepository, assessments repository.AssessmentResultRepository, exams repository.ExamSessionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ProgressService {
	return &progressService{
		submissions: submissions,
		assessments: assessments,
		exams:       exams,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "progress_service").Logger(),
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID uint) (dto.ProgressResponse, error) {
	cacheKey := fmt.Sprintf("progress:user:%d", userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ProgressResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", userID).Msg("progress cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read progress cache")
		}
	}

	response, err := s.buildResponse(ctx, userID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store progress cache")
			}
		}
	}

	return response, nil
}

func (s *progressService) buildResponse(ctx context.Context, userID uint) (dto.ProgressResponse, error) {
	labs, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	assessments, err := s.assessments.ListByUser(ctx, userID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	exams, err := s.exams.ListCompletedByUser(ctx, userID)
	if err != nil {
		return dto.ProgressResponse{}, err
	}

	response := dto.ProgressResponse{
		LabsSubmitted:        len(labs),
		AssessmentsCompleted: len(assessments),
		ExamsCompleted:       len(exams),
	}

	if len(labs) > 0 {
		var total int
		for _, lab := range labs {
			total += lab.OverallScore
		}
		response.AverageLabScore = float64(total) / float64(len(labs))
	}

	for _, result := range assessments {
		if result.Passed {
			response.AssessmentsPassed++
		}
	}

	for _, exam := range exams {
		if exam.Score == nil {
			continue
		}
		if response.BestExamScore == nil || *exam.Score > *response.BestExamScore {
			score := *exam.Score
			response.BestExamScore = &score
		}
	}

	return response, nil
}
