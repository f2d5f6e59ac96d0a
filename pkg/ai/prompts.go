package ai

import (
	"fmt"
	"strings"
)

// orcaSystemPrompt is the fixed persona block prepended to every chat exchange.
const orcaSystemPrompt = `You are OrcaAI, a friendly and knowledgeable AI learning assistant for the Smart Learners AI platform.

Your role is to:
1. Help students understand AI/ML concepts (machine learning, deep learning, NLP, computer vision, etc.)
2. Explain programming concepts in Python, data science libraries (NumPy, Pandas, Scikit-Learn, TensorFlow, PyTorch)
3. Guide students through their lab assignments and projects
4. Answer questions about the curriculum topics: LLMs, RAG, Prompt Engineering, Fine-tuning, AI Agents
5. Provide coding tips and best practices
6. Encourage and motivate learners

Guidelines:
- Be concise but helpful - keep responses under 200 words unless detailed explanation is needed
- Use simple language and examples
- When explaining code, use markdown code blocks
- Be encouraging and supportive
- If asked about topics outside AI/ML/programming, politely redirect to relevant topics
- Never provide harmful content or help with cheating

You have a friendly, professional tone with a touch of enthusiasm for AI!`

// orcaAcknowledgment is the canned assistant reply that closes the synthetic
// instruction exchange before real history is appended.
const orcaAcknowledgment = "I understand. I am OrcaAI, your AI learning assistant. I'll help you with AI, ML, and programming questions!"

// BuildGradingPrompt assembles the instruction block for grading a code
// submission against a lab assignment. Pure text assembly; no side effects.
func BuildGradingPrompt(lab LabInfo, code string, cells []NotebookCell) string {
	b := strings.Builder{}

	b.WriteString("You are a STRICT AI code grader. Evaluate the student's submission against the lab requirements.\n\n")
	b.WriteString("## CRITICAL RULE - WRONG SUBMISSION = ZERO SCORE\n")
	b.WriteString("If the submitted code is for a DIFFERENT project/task than what was assigned:\n")
	b.WriteString("- Set overall_score to 0\n")
	b.WriteString("- Set code_quality, accuracy, efficiency all to 0\n")
	b.WriteString("- Mark ALL requirements as \"not_met\"\n")
	b.WriteString("- Clearly state in feedback that wrong code was submitted\n\n")

	b.WriteString("## LAB ASSIGNMENT\n\n")
	fmt.Fprintf(&b, "**Title:** %s\n", orDefault(lab.Title, "Unknown"))
	fmt.Fprintf(&b, "**Category:** %s\n", orDefault(lab.Category, "Unknown"))
	fmt.Fprintf(&b, "**Description:** %s\n\n", orDefault(lab.Description, "No description"))

	b.WriteString("**Requirements:**\n")
	for i, requirement := range lab.Requirements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, requirement)
	}

	b.WriteString("\n## STUDENT'S CODE\n\n```python\n")
	b.WriteString(truncate(code, MaxPromptCodeChars))
	b.WriteString("\n```\n")

	if len(cells) > 0 {
		b.WriteString("\n## NOTEBOOK CELLS & OUTPUTS\n")
		for _, cell := range capCells(cells) {
			fmt.Fprintf(&b, "\n[%s]\n```\n%s\n```\n", strings.ToUpper(cell.Type), truncate(cell.Source, MaxCellSourceChars))
			outputs := cell.Outputs
			if len(outputs) > MaxCellOutputs {
				outputs = outputs[:MaxCellOutputs]
			}
			for _, output := range outputs {
				if output.Type == "stream" || output.Type == "text" {
					fmt.Fprintf(&b, "Output: %s\n", truncate(output.Text, MaxOutputTextChars))
				}
			}
		}
	}

	b.WriteString(`
## EVALUATION CRITERIA

1. **RELEVANCE CHECK (MOST IMPORTANT)**
   - Does the code match the assignment topic?
   - Is it the correct type of ML/AI task?
   - If code is for different project -> Score = 0

2. **Code Quality** - Structure, naming, comments, readability
3. **Accuracy** - Correct implementation, logic, outputs
4. **Efficiency** - Optimal algorithms, no redundancy

## RESPONSE FORMAT (JSON)

{
    "is_relevant": true/false,
    "relevance_issue": "null or brief reason why code doesn't match assignment",
    "overall_score": 0-100,
    "code_quality": 0-100,
    "accuracy": 0-100,
    "efficiency": 0-100,
    "requirements_analysis": [
        {"requirement": "req text", "status": "met/partial/not_met", "explanation": "10 words max"}
    ],
    "strengths": ["point 1", "point 2"],
    "areas_for_improvement": ["point 1", "point 2"],
    "detailed_feedback": "2-3 bullet points only, max 15 words each",
    "code_suggestions": ["short suggestion 1", "short suggestion 2"],
    "learning_resources": ["topic 1", "topic 2"]
}

## RULES FOR FEEDBACK
- All feedback must be SHORT bullet points (max 15 words each)
- Max 3 points per section
- Be direct and specific
- No lengthy paragraphs
- If wrong code submitted: overall_score = 0, explain briefly why

Return ONLY valid JSON, no markdown formatting.
`)

	return b.String()
}

// BuildExamPrompt assembles the instruction block requesting exactly count
// multiple-choice questions for the given difficulty.
func BuildExamPrompt(difficulty string, count int) string {
	b := strings.Builder{}

	fmt.Fprintf(&b, "Generate exactly %d unique multiple-choice questions for an Applied AI exam.\n\n", count)
	fmt.Fprintf(&b, "DIFFICULTY: %s\n", strings.ToUpper(difficulty))
	fmt.Fprintf(&b, "GUIDELINES: %s\n\n", difficultyGuide(difficulty))
	b.WriteString("CURRICULUM:\n")
	b.WriteString(curriculumTopics)
	b.WriteString(`
RULES:
1. Each question must test a DIFFERENT concept
2. Distribute questions across ALL 5 modules proportionally
3. Each question has exactly 4 options (A, B, C, D)
4. Exactly one correct answer per question
5. Include a concise educational explanation (2-3 sentences)
6. Tag each question with its module/topic

RETURN FORMAT (strict JSON only, no markdown):
{
  "questions": [
    {
      "id": 1,
      "question": "Question text?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": 0,
      "explanation": "Correct answer is A because...",
      "topic": "Module 1: Foundations of Modern AI"
    }
  ]
}

IMPORTANT:
- correct_answer is 0-based index (0=A, 1=B, 2=C, 3=D)
`)
	fmt.Fprintf(&b, "- Generate EXACTLY %d questions\n", count)
	b.WriteString("- Return ONLY valid JSON\n")
	b.WriteString("- Make distractors plausible but clearly wrong to experts")

	return b.String()
}

// BuildProjectPrompt assembles the instruction block for evaluating a
// project submission consisting of one or more files.
func BuildProjectPrompt(project ProjectInfo, files []ProjectFile) string {
	b := strings.Builder{}

	b.WriteString("You are an AI project evaluator. Evaluate the student's project submission.\n\n")
	b.WriteString("## PROJECT ASSIGNMENT\n")
	fmt.Fprintf(&b, "**Title:** %s\n", orDefault(project.Title, "Unknown"))
	fmt.Fprintf(&b, "**Description:** %s\n", project.Description)
	fmt.Fprintf(&b, "**Tech Stack:** %s\n\n", strings.Join(project.TechStack, ", "))

	b.WriteString("**Expected Steps:**\n")
	for i, step := range project.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\n## SUBMITTED FILES\n")
	for _, file := range files {
		fmt.Fprintf(&b, "\n### File: %s\n```python\n%s\n```\n", file.FileName, truncate(file.Content, MaxProjectFileChars))
	}

	b.WriteString(`
## EVALUATION CRITERIA
1. **Relevance** - Does the code match the project assignment?
2. **Code Quality** - Structure, readability, best practices
3. **Completeness** - Are all project steps implemented?
4. **Technical Implementation** - Correct use of tech stack
5. **Innovation** - Creative solutions, extra features

## RESPONSE FORMAT (JSON)
{
    "overall_score": 0-100,
    "code_quality": 0-100,
    "completeness": 0-100,
    "technical_implementation": 0-100,
    "strengths": ["point 1", "point 2", "point 3"],
    "areas_for_improvement": ["point 1", "point 2"],
    "detailed_feedback": "Brief 2-3 sentence evaluation",
    "file_reviews": [
        {"file_name": "name.py", "score": 0-100, "feedback": "Brief feedback"}
    ]
}

RULES:
- All feedback must be concise (max 15 words per point)
- Max 3 strengths, 3 improvement areas
- If code doesn't match project, score = 0
- Return ONLY valid JSON
`)

	return b.String()
}

// BuildChatMessages assembles the role-tagged conversation forwarded to the
// model: the fixed persona exchange, then at most the last MaxHistoryMessages
// history entries in original order, then the new user message. History roles
// outside the recognized set are coerced to the assistant role.
func BuildChatMessages(history []ChatMessage, userMessage string) []Message {
	messages := make([]Message, 0, len(history)+3)

	messages = append(messages, Message{
		Role:    RoleUser,
		Content: "[System Instructions - Follow these guidelines]\n" + orcaSystemPrompt + "\n\n[End of System Instructions]",
	})
	messages = append(messages, Message{
		Role:    RoleAssistant,
		Content: orcaAcknowledgment,
	})

	if len(history) > MaxHistoryMessages {
		history = history[len(history)-MaxHistoryMessages:]
	}

	for _, entry := range history {
		role := RoleAssistant
		if entry.Role == RoleUser {
			role = RoleUser
		}
		messages = append(messages, Message{Role: role, Content: entry.Content})
	}

	messages = append(messages, Message{Role: RoleUser, Content: userMessage})

	return messages
}

func capCells(cells []NotebookCell) []NotebookCell {
	if len(cells) > MaxCells {
		return cells[:MaxCells]
	}
	return cells
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
