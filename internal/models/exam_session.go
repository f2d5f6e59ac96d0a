package models

import (
	"time"

	"gorm.io/datatypes"
)

// Exam difficulty levels.
const (
	ExamDifficultyEasy   = "easy"
	ExamDifficultyMedium = "medium"
	ExamDifficultyHard   = "hard"
)

// ExamSession is a single timed quiz attempt. The question set (including
// answer keys) is immutable after creation and grading is write-once.
type ExamSession struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	Difficulty      string `gorm:"size:10;not null" json:"difficulty"`
	DurationMinutes int    `gorm:"default:30" json:"duration_minutes"`
	TotalQuestions  int    `json:"total_questions"`

	Score        *float64 `json:"score"`
	CorrectCount int      `json:"correct_count"`

	Questions      datatypes.JSON `json:"questions"`
	StudentAnswers datatypes.JSON `json:"student_answers"`
	Results        datatypes.JSON `json:"results"`

	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
