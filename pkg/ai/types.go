package ai

import "context"

// Message roles accepted by the model client.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged entry in a model conversation.
type Message struct {
	Role    string
	Content string
}

// GenerateOptions tunes a single completion request.
type GenerateOptions struct {
	ForceJSON   bool
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// ModelClient is the only network boundary of the grading core. Implementations
// may fail or time out; callers must treat the returned text as untrusted.
type ModelClient interface {
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)
}

// LabInfo describes the assignment a code submission is graded against.
type LabInfo struct {
	Title        string
	Category     string
	Description  string
	Requirements []string
}

// CellOutput is a captured output of a notebook cell.
type CellOutput struct {
	Type string
	Text string
}

// NotebookCell is a single cell of a submitted notebook.
type NotebookCell struct {
	Type    string
	Source  string
	Outputs []CellOutput
}

// ProjectInfo describes a project assignment.
type ProjectInfo struct {
	Title       string
	Description string
	TechStack   []string
	Steps       []string
}

// ProjectFile is one submitted project file.
type ProjectFile struct {
	FileName string
	Content  string
}

// ChatMessage is a prior conversation entry supplied by the caller.
type ChatMessage struct {
	Role    string
	Content string
}
