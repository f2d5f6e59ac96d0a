package ai

import (
	"math"
	"strconv"
)

// ExamQuestion is a generated multiple-choice question. CorrectAnswer and
// Explanation must never reach the client before the exam is graded.
type ExamQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

// QuestionResult is the per-question breakdown revealed after grading.
type QuestionResult struct {
	QuestionID    int      `json:"question_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	StudentAnswer *int     `json:"student_answer"`
	CorrectAnswer int      `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
}

// ExamScore aggregates per-question outcomes into a percentage.
type ExamScore struct {
	Results        []QuestionResult `json:"results"`
	Score          float64          `json:"score"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
}

// ScoreExam compares stored answer keys with submitted answers. Pure; no
// model call, no I/O. The answers map is keyed by stringified question ID and
// may be sparse - unanswered questions are marked incorrect, never an error.
func ScoreExam(questions []ExamQuestion, answers map[string]int) ExamScore {
	results := make([]QuestionResult, 0, len(questions))
	correctCount := 0

	for _, question := range questions {
		var studentAnswer *int
		isCorrect := false

		if submitted, ok := answers[strconv.Itoa(question.ID)]; ok {
			answer := submitted
			studentAnswer = &answer
			isCorrect = answer == question.CorrectAnswer
		}

		if isCorrect {
			correctCount++
		}

		results = append(results, QuestionResult{
			QuestionID:    question.ID,
			Question:      question.Question,
			Options:       question.Options,
			StudentAnswer: studentAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   question.Explanation,
			Topic:         question.Topic,
		})
	}

	score := 0.0
	if len(questions) > 0 {
		score = math.Round(float64(correctCount)/float64(len(questions))*1000) / 10
	}

	return ExamScore{
		Results:        results,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: len(questions),
	}
}
