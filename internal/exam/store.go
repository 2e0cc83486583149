package exam

import (
	"context"
	"time"
)

// SubmitAnswerInput records one response. Submission is pure recording:
// grading fields are never computed here.
type SubmitAnswerInput struct {
	AttemptID       string
	QuestionID      string
	SelectedOptions []string
	AnswerText      string
	TimeSpentSec    int64
}

// ManualGradeInput is a grader's override for one answer.
type ManualGradeInput struct {
	AnswerID string
	Points   float64
	Feedback string
	GradedBy string
}

type AttemptListOpts struct {
	ExamID    string
	StudentID string
	Status    string
	Limit     int
	Offset    int
}

// QuestionResult pairs a question with the student's answer, if any.
type QuestionResult struct {
	Question Question       `json:"question"`
	Answer   *AttemptAnswer `json:"answer,omitempty"`
}

type ResultsSummary struct {
	Score         float64 `json:"score"`
	Percentage    float64 `json:"percentage"`
	TotalPoints   float64 `json:"total_points"`
	Passed        bool    `json:"passed"`
	Grade         string  `json:"grade,omitempty"` // band label, set once terminal
	TimeSpentSec  int64   `json:"time_spent_sec"`
	PendingManual int     `json:"pending_manual"` // answers still awaiting a grader
}

type AttemptResults struct {
	Attempt   Attempt          `json:"attempt"`
	Breakdown []QuestionResult `json:"per_question"`
	Summary   ResultsSummary   `json:"summary"`
}

type ExamStats struct {
	ExamID          string  `json:"exam_id"`
	CompletedCount  int     `json:"completed_count"`
	AvgScore        float64 `json:"avg_score"`
	MinScore        float64 `json:"min_score"`
	MaxScore        float64 `json:"max_score"`
	AvgPercentage   float64 `json:"avg_percentage"`
	PassRate        float64 `json:"pass_rate"`
	AvgTimeSpentSec float64 `json:"avg_time_spent_sec"`
}

type StudentStats struct {
	StudentID         string  `json:"student_id"`
	ExamsAttempted    int     `json:"exams_attempted"`
	CompletedAttempts int     `json:"completed_attempts"`
	Passed            int     `json:"passed"`
	Failed            int     `json:"failed"`
	AvgPercentage     float64 `json:"avg_percentage"`
	TotalTimeSpentSec int64   `json:"total_time_spent_sec"`
}

// Store owns attempt state: creation, answer upsert, status transitions,
// grading and score aggregation. It is the only writer of attempts and
// attempt answers. Every mutating operation takes the caller's clock reading
// so behavior is deterministic under test.
type Store interface {
	// StartAttempt returns the existing in-progress attempt for
	// (exam, student) unchanged if one exists; otherwise it checks
	// eligibility and creates a new attempt. The check-then-create is atomic
	// against the single-in-progress constraint.
	StartAttempt(ctx context.Context, examID, studentID string, now time.Time) (Attempt, error)

	// SubmitAnswer upserts the answer keyed by (attempt, question):
	// a resubmission replaces the first recording.
	SubmitAnswer(ctx context.Context, in SubmitAnswerInput, now time.Time) (AttemptAnswer, error)

	// CompleteAttempt grades every answer, aggregates the score and finalizes
	// the attempt in one transaction. timeSpentOverride, when non-nil,
	// replaces the wall-clock duration.
	CompleteAttempt(ctx context.Context, attemptID string, timeSpentOverride *int64, now time.Time) (Attempt, error)

	// AbandonAttempt terminates an in-progress attempt without grading.
	AbandonAttempt(ctx context.Context, attemptID string, now time.Time) (Attempt, error)

	// GradeAnswer applies a manual grade to one answer (clamped to the
	// question's points) and recomputes the owning attempt's score from
	// scratch.
	GradeAnswer(ctx context.Context, in ManualGradeInput, now time.Time) (AttemptAnswer, error)

	// Regrade re-runs automatic grading for a completed attempt, preserving
	// manual grades, then recomputes the score. Recovery path for attempts
	// caught mid-finalization and for answer-key corrections.
	Regrade(ctx context.Context, attemptID string, now time.Time) (Attempt, error)

	GetAttempt(ctx context.Context, id string) (Attempt, error)
	GetAnswers(ctx context.Context, attemptID string) ([]AttemptAnswer, error)
	ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)
	Results(ctx context.Context, attemptID string) (AttemptResults, error)

	ExamStatistics(ctx context.Context, examID string) (ExamStats, error)
	StudentStatistics(ctx context.Context, studentID string) (StudentStats, error)
}
