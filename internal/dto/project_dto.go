package dto

import "github.com/smart-learners/orca-api/pkg/ai"

// ProjectInfoPayload describes the project assignment being evaluated.
type ProjectInfoPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	Steps       []string `json:"steps"`
}

// ProjectFilePayload is one submitted project file.
type ProjectFilePayload struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

// ProjectEvaluateRequest is the project evaluation payload.
type ProjectEvaluateRequest struct {
	ProjectInfo  *ProjectInfoPayload  `json:"project_info"`
	FilesContent []ProjectFilePayload `json:"files_content"`
}

// ToProjectInfo converts the payload into the grading engine's input type.
func (p ProjectInfoPayload) ToProjectInfo() ai.ProjectInfo {
	return ai.ProjectInfo{
		Title:       p.Title,
		Description: p.Description,
		TechStack:   p.TechStack,
		Steps:       p.Steps,
	}
}

// ToProjectFiles converts file payloads into the grading engine's input type.
func ToProjectFiles(payloads []ProjectFilePayload) []ai.ProjectFile {
	files := make([]ai.ProjectFile, 0, len(payloads))
	for _, payload := range payloads {
		files = append(files, ai.ProjectFile{FileName: payload.FileName, Content: payload.Content})
	}

	return files
}
