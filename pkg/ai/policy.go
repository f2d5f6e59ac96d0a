package ai

// Business-rule constants for prompt construction and result normalization.
// Tests assert against these directly; do not scatter the literals.
const (
	// MaxPromptCodeChars bounds the code body embedded in a grading prompt.
	MaxPromptCodeChars = 8000
	// MaxCells is the number of notebook cells rendered into a prompt.
	MaxCells = 15
	// MaxCellSourceChars bounds each rendered cell source.
	MaxCellSourceChars = 1000
	// MaxCellOutputs is the number of outputs rendered per cell.
	MaxCellOutputs = 2
	// MaxOutputTextChars bounds each rendered output text.
	MaxOutputTextChars = 300
	// MaxProjectFileChars bounds each project file embedded in a prompt.
	MaxProjectFileChars = 12000
	// MaxHistoryMessages is the number of prior chat entries forwarded to the model.
	MaxHistoryMessages = 10

	// MaxScore and MinScore bound every numeric score field.
	MinScore = 0
	MaxScore = 100

	// MaxRequirementsAnalysis caps the per-requirement review list.
	MaxRequirementsAnalysis = 6
	// MaxListItems caps strengths, improvement areas, suggestions and resources.
	MaxListItems = 3

	// MaxOptions is the number of answer options per exam question.
	MaxOptions = 4
	// MaxAnswerIndex is the highest valid 0-based correct answer index.
	MaxAnswerIndex = 3

	// DefaultFeedback is used when the model omits detailed feedback.
	DefaultFeedback = "Submission evaluated."
	// DefaultTopic is used when the model omits a question topic tag.
	DefaultTopic = "General"
)

// Chat generation defaults.
const (
	chatTemperature = 0.7
	chatTopP        = 0.9
	chatMaxTokens   = 1024
)

// Exam question generation sampling.
const (
	examTemperature = 0.8
	examTopP        = 0.95
)
