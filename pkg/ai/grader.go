package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// RequirementReview is the model's verdict on a single lab requirement.
type RequirementReview struct {
	Requirement string `json:"requirement"`
	Status      string `json:"status"`
	Explanation string `json:"explanation"`
}

// LabGradingResult is the canonical, fully normalized outcome of a lab
// grading run. Every score is inside [0,100], every list respects its cap,
// and failures are shaped results rather than errors.
type LabGradingResult struct {
	Success              bool                `json:"success"`
	Error                string              `json:"error,omitempty"`
	IsRelevant           bool                `json:"is_relevant"`
	RelevanceIssue       *string             `json:"relevance_issue"`
	OverallScore         int                 `json:"overall_score"`
	CodeQuality          int                 `json:"code_quality"`
	Accuracy             int                 `json:"accuracy"`
	Efficiency           int                 `json:"efficiency"`
	RequirementsAnalysis []RequirementReview `json:"requirements_analysis"`
	Strengths            []string            `json:"strengths"`
	AreasForImprovement  []string            `json:"areas_for_improvement"`
	DetailedFeedback     string              `json:"detailed_feedback"`
	CodeSuggestions      []string            `json:"code_suggestions"`
	LearningResources    []string            `json:"learning_resources"`
}

// FileReview is the model's per-file feedback in a project evaluation.
type FileReview struct {
	FileName string `json:"file_name"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// ProjectEvaluationResult is the normalized outcome of a project evaluation.
// Not persisted; returned directly to the caller.
type ProjectEvaluationResult struct {
	Success                 bool         `json:"success"`
	Error                   string       `json:"error,omitempty"`
	OverallScore            int          `json:"overall_score"`
	CodeQuality             int          `json:"code_quality"`
	Completeness            int          `json:"completeness"`
	TechnicalImplementation int          `json:"technical_implementation"`
	Strengths               []string     `json:"strengths"`
	AreasForImprovement     []string     `json:"areas_for_improvement"`
	DetailedFeedback        string       `json:"detailed_feedback"`
	FileReviews             []FileReview `json:"file_reviews"`
}

// Grader orchestrates prompt construction, model invocation, response
// sanitization and business-rule normalization for the model-backed flows.
type Grader struct {
	client ModelClient
	logger zerolog.Logger
}

// NewGrader builds a grading engine on top of the given model client.
func NewGrader(client ModelClient, logger zerolog.Logger) *Grader {
	return &Grader{
		client: client,
		logger: logger.With().Str("component", "grader").Logger(),
	}
}

// GradeLab grades a code submission against a lab assignment. It never
// returns an error: model or parse failures are absorbed into a shaped
// failure result so callers need no per-field nil handling.
func (g *Grader) GradeLab(ctx context.Context, lab LabInfo, code string, cells []NotebookCell) LabGradingResult {
	prompt := BuildGradingPrompt(lab, code, cells)

	reply, err := g.client.Generate(ctx, []Message{{Role: RoleUser, Content: prompt}}, GenerateOptions{ForceJSON: true})
	if err != nil {
		g.logger.Warn().Err(err).Str("lab", lab.Title).Msg("lab grading model call failed")
		return failedLabResult(err)
	}

	data, err := ExtractJSON(reply)
	if err != nil {
		g.logger.Warn().Err(err).Str("lab", lab.Title).Msg("lab grading response not parseable")
		return failedLabResult(err)
	}

	fields, err := decodeObject(data)
	if err != nil {
		return failedLabResult(err)
	}

	result := LabGradingResult{
		Success:              true,
		IsRelevant:           asBool(fields["is_relevant"], true),
		RelevanceIssue:       optionalString(fields["relevance_issue"]),
		OverallScore:         clampScore(fields["overall_score"]),
		CodeQuality:          clampScore(fields["code_quality"]),
		Accuracy:             clampScore(fields["accuracy"]),
		Efficiency:           clampScore(fields["efficiency"]),
		RequirementsAnalysis: requirementReviews(fields["requirements_analysis"]),
		Strengths:            asStringSlice(fields["strengths"], MaxListItems),
		AreasForImprovement:  asStringSlice(fields["areas_for_improvement"], MaxListItems),
		DetailedFeedback:     asString(fields["detailed_feedback"], DefaultFeedback),
		CodeSuggestions:      asStringSlice(fields["code_suggestions"], MaxListItems),
		LearningResources:    asStringSlice(fields["learning_resources"], MaxListItems),
	}

	// Relevance override runs AFTER clamping and is unconditional: the model
	// is not trusted to zero its own scores when the submission is off-topic.
	if !result.IsRelevant || result.RelevanceIssue != nil {
		result.OverallScore = 0
		result.CodeQuality = 0
		result.Accuracy = 0
		result.Efficiency = 0
	}

	return result
}

// EvaluateProject evaluates submitted project files against the assignment.
// Same shaped-failure discipline as GradeLab.
func (g *Grader) EvaluateProject(ctx context.Context, project ProjectInfo, files []ProjectFile) ProjectEvaluationResult {
	prompt := BuildProjectPrompt(project, files)

	reply, err := g.client.Generate(ctx, []Message{{Role: RoleUser, Content: prompt}}, GenerateOptions{ForceJSON: true})
	if err != nil {
		g.logger.Warn().Err(err).Str("project", project.Title).Msg("project evaluation model call failed")
		return failedProjectResult(err)
	}

	data, err := ExtractJSON(reply)
	if err != nil {
		g.logger.Warn().Err(err).Str("project", project.Title).Msg("project evaluation response not parseable")
		return failedProjectResult(err)
	}

	fields, err := decodeObject(data)
	if err != nil {
		return failedProjectResult(err)
	}

	return ProjectEvaluationResult{
		Success:                 true,
		OverallScore:            clampScore(fields["overall_score"]),
		CodeQuality:             clampScore(fields["code_quality"]),
		Completeness:            clampScore(fields["completeness"]),
		TechnicalImplementation: clampScore(fields["technical_implementation"]),
		Strengths:               asStringSlice(fields["strengths"], MaxListItems),
		AreasForImprovement:     asStringSlice(fields["areas_for_improvement"], MaxListItems),
		DetailedFeedback:        asString(fields["detailed_feedback"], DefaultFeedback),
		FileReviews:             fileReviews(fields["file_reviews"]),
	}
}

// GenerateExamQuestions asks the model for exactly count questions and
// normalizes the reply: truncation to count, sequential 1-based IDs (model
// IDs are not trusted), options capped at four, correct answers clamped into
// range. A short reply is an error so an exam never stores a partial set.
func (g *Grader) GenerateExamQuestions(ctx context.Context, difficulty string, count int) ([]ExamQuestion, error) {
	prompt := BuildExamPrompt(difficulty, count)

	reply, err := g.client.Generate(ctx, []Message{{Role: RoleUser, Content: prompt}}, GenerateOptions{
		ForceJSON:   true,
		Temperature: examTemperature,
		TopP:        examTopP,
	})
	if err != nil {
		return nil, err
	}

	data, err := ExtractJSON(reply)
	if err != nil {
		return nil, err
	}

	fields, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	raw := asObjectSlice(fields["questions"])
	if len(raw) > count {
		raw = raw[:count]
	}
	if len(raw) < count {
		return nil, fmt.Errorf("model returned %d questions, expected %d", len(raw), count)
	}

	questions := make([]ExamQuestion, 0, count)
	for i, entry := range raw {
		options := asStringSlice(entry["options"], MaxOptions)
		answer := asInt(entry["correct_answer"], 0)
		if answer < 0 {
			answer = 0
		}
		if answer > MaxAnswerIndex {
			answer = MaxAnswerIndex
		}

		questions = append(questions, ExamQuestion{
			ID:            i + 1,
			Question:      asString(entry["question"], ""),
			Options:       options,
			CorrectAnswer: answer,
			Explanation:   asString(entry["explanation"], ""),
			Topic:         asString(entry["topic"], DefaultTopic),
		})
	}

	return questions, nil
}

// Chat forwards a persona-prefixed conversation to the model and returns the
// plain-text reply. No JSON forcing for chat.
func (g *Grader) Chat(ctx context.Context, history []ChatMessage, userMessage string) (string, error) {
	messages := BuildChatMessages(history, userMessage)

	reply, err := g.client.Generate(ctx, messages, GenerateOptions{
		Temperature: chatTemperature,
		TopP:        chatTopP,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}

func requirementReviews(value any) []RequirementReview {
	reviews := make([]RequirementReview, 0, MaxRequirementsAnalysis)
	for _, entry := range asObjectSlice(value) {
		if len(reviews) == MaxRequirementsAnalysis {
			break
		}
		reviews = append(reviews, RequirementReview{
			Requirement: asString(entry["requirement"], ""),
			Status:      asString(entry["status"], ""),
			Explanation: asString(entry["explanation"], ""),
		})
	}

	return reviews
}

func fileReviews(value any) []FileReview {
	entries := asObjectSlice(value)
	reviews := make([]FileReview, 0, len(entries))
	for _, entry := range entries {
		reviews = append(reviews, FileReview{
			FileName: asString(entry["file_name"], ""),
			Score:    clampScore(entry["score"]),
			Feedback: asString(entry["feedback"], ""),
		})
	}

	return reviews
}

func failedLabResult(err error) LabGradingResult {
	return LabGradingResult{
		Success:              false,
		Error:                err.Error(),
		IsRelevant:           false,
		RequirementsAnalysis: []RequirementReview{},
		Strengths:            []string{},
		AreasForImprovement:  []string{"Error during analysis"},
		DetailedFeedback:     fmt.Sprintf("Analysis error: %s", truncate(err.Error(), 100)),
		CodeSuggestions:      []string{},
		LearningResources:    []string{},
	}
}

func failedProjectResult(err error) ProjectEvaluationResult {
	return ProjectEvaluationResult{
		Success:             false,
		Error:               err.Error(),
		Strengths:           []string{},
		AreasForImprovement: []string{"Error during evaluation"},
		DetailedFeedback:    fmt.Sprintf("Evaluation error: %s", truncate(err.Error(), 100)),
		FileReviews:         []FileReview{},
	}
}
