package exam

// Question types understood by the grading engine.
const (
	TypeMultipleChoice  = "multiple_choice"
	TypeMultipleAnswers = "multiple_answers"
	TypeTrueFalse       = "true_false"
	TypeShortAnswer     = "short_answer"
	TypeEssay           = "essay"
)

// Exam lifecycle statuses. The attempt engine only ever starts attempts
// against a published exam; the rest exist for the authoring boundary.
const (
	ExamDraft     = "draft"
	ExamPublished = "published"
	ExamOngoing   = "ongoing"
	ExamCompleted = "completed"
	ExamArchived  = "archived"
)

// Attempt statuses. completed and abandoned are terminal.
const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
	AttemptAbandoned  = "abandoned"
)

type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Key        string `json:"key"` // display label: "A", "B", ...
	Text       string `json:"text"`
	Position   int    `json:"position"`
}

// CorrectAnswer marks one correct option, or one accepted free-text value,
// for a question. multiple_answers questions carry several rows.
type CorrectAnswer struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id,omitempty"`
	AnswerText string `json:"answer_text,omitempty"`
}

type Question struct {
	ID       string   `json:"id"`
	ExamID   string   `json:"exam_id,omitempty"` // empty means "in bank"
	Type     string   `json:"type"`
	Text     string   `json:"text"`
	Points   float64  `json:"points"`
	Position int      `json:"position"`
	Options  []Option `json:"options,omitempty"`

	// Correct is omitted from student-facing views.
	Correct []CorrectAnswer `json:"correct,omitempty"`
}

type Exam struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	StartAt      int64      `json:"start_at"` // unix seconds
	EndAt        int64      `json:"end_at"`
	DurationSec  int        `json:"duration_sec"`
	MaxAttempts  int        `json:"max_attempts"`
	PassingScore float64    `json:"passing_score"` // percentage threshold
	TotalPoints  float64    `json:"total_points"`  // denormalized; re-derived when stale
	Questions    []Question `json:"questions,omitempty"`
	CreatedAt    int64      `json:"created_at,omitempty"`
}

// QuestionPointsSum derives the exam's total from its questions. Scoring uses
// this instead of TotalPoints whenever the denormalized value disagrees,
// since the authoring side owns keeping TotalPoints fresh.
func (e Exam) QuestionPointsSum() float64 {
	var sum float64
	for _, q := range e.Questions {
		sum += q.Points
	}
	return sum
}

type Attempt struct {
	ID           string  `json:"id"`
	ExamID       string  `json:"exam_id"`
	StudentID    string  `json:"student_id"`
	Status       string  `json:"status"`
	Score        float64 `json:"score"`
	Percentage   float64 `json:"percentage"`
	TimeSpentSec int64   `json:"time_spent_sec"`
	StartedAt    int64   `json:"started_at"`
	CompletedAt  int64   `json:"completed_at,omitempty"` // set on complete or abandon
}

// Terminal reports whether no further transitions are permitted.
func (a Attempt) Terminal() bool {
	return a.Status == AttemptCompleted || a.Status == AttemptAbandoned
}

// AttemptAnswer is the student's recorded response to one question within one
// attempt. IsCorrect stays nil for answers awaiting manual grading.
type AttemptAnswer struct {
	ID              string   `json:"id"`
	AttemptID       string   `json:"attempt_id"`
	QuestionID      string   `json:"question_id"`
	SelectedOptions []string `json:"selected_options,omitempty"` // option IDs; single-select carries one
	AnswerText      string   `json:"answer_text,omitempty"`
	IsCorrect       *bool    `json:"is_correct"`
	PointsAwarded   float64  `json:"points_awarded"`
	TimeSpentSec    int64    `json:"time_spent_sec"`
	Feedback        string   `json:"feedback,omitempty"`
	GradedBy        string   `json:"graded_by,omitempty"`
	GradedAt        int64    `json:"graded_at,omitempty"`
}

// HasPassed applies the exam's passing threshold to a finalized attempt.
func HasPassed(a Attempt, e Exam) bool {
	return a.Percentage >= e.PassingScore
}
