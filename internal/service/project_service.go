package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/pkg/ai"
)

// ErrProjectInfoRequired indicates the payload omitted the project description.
var ErrProjectInfoRequired = errors.New("project information is required")

// ErrProjectFilesRequired indicates the payload had no files to review.
var ErrProjectFilesRequired = errors.New("files content is required")

// ProjectService runs multi-file project evaluations. Results are returned
// to the caller and never persisted.
type ProjectService interface {
	Evaluate(ctx context.Context, payload dto.ProjectEvaluateRequest) (ai.ProjectEvaluationResult, error)
}

type projectService struct {
	grader *ai.Grader
	logger zerolog.Logger
}

// NewProjectService constructs a ProjectService instance.
func NewProjectService(grader *ai.Grader, logger zerolog.Logger) ProjectService {
	return &projectService{
		grader: grader,
		logger: logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) Evaluate(ctx context.Context, payload dto.ProjectEvaluateRequest) (ai.ProjectEvaluationResult, error) {
	if payload.ProjectInfo == nil {
		return ai.ProjectEvaluationResult{}, ErrProjectInfoRequired
	}
	if len(payload.FilesContent) == 0 {
		return ai.ProjectEvaluationResult{}, ErrProjectFilesRequired
	}

	result := s.grader.EvaluateProject(ctx, payload.ProjectInfo.ToProjectInfo(), dto.ToProjectFiles(payload.FilesContent))
	if !result.Success {
		s.logger.Warn().Str("project", payload.ProjectInfo.Title).Msg("project evaluation degraded to failure result")
	}

	return result, nil
}
