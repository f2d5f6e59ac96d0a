package dto

// ProgressResponse aggregates a learner's activity across labs, assessments
// and exams for the dashboard view.
type ProgressResponse struct {
	LabsSubmitted        int      `json:"labs_submitted"`
	AverageLabScore      float64  `json:"average_lab_score"`
	AssessmentsCompleted int      `json:"assessments_completed"`
	AssessmentsPassed    int      `json:"assessments_passed"`
	ExamsCompleted       int      `json:"exams_completed"`
	BestExamScore        *float64 `json:"best_exam_score"`
}
