package dto

import (
	"encoding/json"
	"time"

	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/pkg/ai"
)

// LabInfoPayload describes the assignment a submission is graded against.
type LabInfoPayload struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

// CellOutputPayload is one captured output of a notebook cell.
type CellOutputPayload struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NotebookCellPayload is a submitted notebook cell.
type NotebookCellPayload struct {
	Index   int                 `json:"index"`
	Type    string              `json:"type"`
	Source  string              `json:"source"`
	Outputs []CellOutputPayload `json:"outputs"`
}

// GradeRequest is the lab grading payload. Unknown extra fields are ignored.
type GradeRequest struct {
	LabID       string                `json:"lab_id"`
	LabInfo     *LabInfoPayload       `json:"lab_info"`
	CodeContent string                `json:"code_content"`
	FileName    string                `json:"file_name"`
	CellsInfo   []NotebookCellPayload `json:"cells_info"`
}

// GradeResponse wraps a grading result with its persistence outcome.
type GradeResponse struct {
	GradingResult ai.LabGradingResult `json:"grading_result"`
	SavedToDB     bool                `json:"saved_to_db"`
}

// LabSubmissionResponse serializes a stored lab submission.
type LabSubmissionResponse struct {
	LabID         string          `json:"lab_id"`
	LabTitle      string          `json:"lab_title"`
	LabCategory   string          `json:"lab_category"`
	OverallScore  int             `json:"overall_score"`
	CodeQuality   int             `json:"code_quality"`
	Accuracy      int             `json:"accuracy"`
	Efficiency    int             `json:"efficiency"`
	FileName      string          `json:"file_name"`
	CodeContent   string          `json:"code_content"`
	SubmittedAt   time.Time       `json:"submitted_at"`
	GradingResult json.RawMessage `json:"grading_result"`
}

// ToLabInfo converts the payload into the grading engine's input type.
func (p LabInfoPayload) ToLabInfo() ai.LabInfo {
	return ai.LabInfo{
		Title:        p.Title,
		Category:     p.Category,
		Description:  p.Description,
		Requirements: p.Requirements,
	}
}

// ToNotebookCells converts cell payloads into the grading engine's input type.
func ToNotebookCells(payloads []NotebookCellPayload) []ai.NotebookCell {
	if len(payloads) == 0 {
		return nil
	}

	cells := make([]ai.NotebookCell, 0, len(payloads))
	for _, payload := range payloads {
		outputs := make([]ai.CellOutput, 0, len(payload.Outputs))
		for _, output := range payload.Outputs {
			outputs = append(outputs, ai.CellOutput{Type: output.Type, Text: output.Text})
		}
		cells = append(cells, ai.NotebookCell{
			Type:    payload.Type,
			Source:  payload.Source,
			Outputs: outputs,
		})
	}

	return cells
}

// NewLabSubmissionResponse converts a LabSubmission model into a DTO.
func NewLabSubmissionResponse(model models.LabSubmission) LabSubmissionResponse {
	return LabSubmissionResponse{
		LabID:         model.LabID,
		LabTitle:      model.LabTitle,
		LabCategory:   model.LabCategory,
		OverallScore:  model.OverallScore,
		CodeQuality:   model.CodeQuality,
		Accuracy:      model.Accuracy,
		Efficiency:    model.Efficiency,
		FileName:      model.FileName,
		CodeContent:   model.CodeContent,
		SubmittedAt:   model.CreatedAt,
		GradingResult: json.RawMessage(model.GradingResult),
	}
}

// NewLabSubmissionResponseSlice converts lab submission models into DTOs.
func NewLabSubmissionResponseSlice(submissions []models.LabSubmission) []LabSubmissionResponse {
	responses := make([]LabSubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewLabSubmissionResponse(submission))
	}

	return responses
}
