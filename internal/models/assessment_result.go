package models

import "time"

// AssessmentResult stores the latest quiz outcome per (user, assessment).
// A retake replaces the prior row.
type AssessmentResult struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_user_assessment" json:"user_id"`
	AssessmentID    int    `gorm:"not null;uniqueIndex:idx_user_assessment" json:"assessment_id"`
	AssessmentTitle string `gorm:"size:255" json:"assessment_title"`

	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
	CorrectAnswers int  `json:"correct_answers"`
	PassingScore   int  `gorm:"default:80" json:"passing_score"`
	Passed         bool `json:"passed"`

	CreatedAt time.Time `json:"completed_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
