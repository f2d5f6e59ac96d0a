package models

import (
	"time"

	"gorm.io/datatypes"
)

// LabSubmission stores the latest AI grading outcome per (user, lab).
// Resubmitting replaces the prior row; history is not retained.
type LabSubmission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_user_lab" json:"user_id"`
	LabID       string `gorm:"size:100;not null;uniqueIndex:idx_user_lab" json:"lab_id"`
	LabTitle    string `gorm:"size:255" json:"lab_title"`
	LabCategory string `gorm:"size:100" json:"lab_category"`

	OverallScore int `json:"overall_score"`
	CodeQuality  int `json:"code_quality"`
	Accuracy     int `json:"accuracy"`
	Efficiency   int `json:"efficiency"`

	GradingResult datatypes.JSON `json:"grading_result"`

	CodeContent string `gorm:"type:text" json:"code_content"`
	FileName    string `gorm:"size:255" json:"file_name"`

	CreatedAt time.Time `json:"submitted_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// MaxStoredCodeChars bounds the code text persisted with a submission.
const MaxStoredCodeChars = 10000
