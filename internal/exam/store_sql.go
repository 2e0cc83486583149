package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/examforge/examforge/internal/grading"
	"github.com/examforge/examforge/internal/report"
)

// SQLStore is the database-backed attempt store. The single-in-progress
// invariant is enforced by a partial unique index on
// attempts(exam_id, student_id) WHERE status='in_progress'; StartAttempt
// recovers from the resulting conflict by returning the surviving row.
type SQLStore struct {
	db         *sql.DB
	grader     grading.Grader
	manualPass grading.ManualPassPolicy
	gradeScale report.Scale
	enrolled   EnrollmentFunc
}

type StoreOption func(*SQLStore)

func WithGrader(g grading.Grader) StoreOption {
	return func(s *SQLStore) { s.grader = g }
}

func WithManualPassPolicy(p grading.ManualPassPolicy) StoreOption {
	return func(s *SQLStore) { s.manualPass = p }
}

// WithGradeScale replaces the letter scale used for the results grade band.
func WithGradeScale(sc report.Scale) StoreOption {
	return func(s *SQLStore) { s.gradeScale = sc }
}

// WithEnrollmentCheck installs the external class-membership check consulted
// before a new attempt is created.
func WithEnrollmentCheck(f EnrollmentFunc) StoreOption {
	return func(s *SQLStore) { s.enrolled = f }
}

func NewSQLStore(db *sql.DB, opts ...StoreOption) *SQLStore {
	s := &SQLStore{
		db:         db,
		grader:     grading.NewDefaultGrader(),
		manualPass: grading.HalfPointsPass,
		gradeScale: report.Letter,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *SQLStore) StartAttempt(ctx context.Context, examID, studentID string, now time.Time) (Attempt, error) {
	// Fast path: idempotent resume outside any transaction.
	if a, err := s.inProgressAttempt(ctx, s.db, examID, studentID); err == nil {
		return a, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Attempt{}, err
	}
	defer tx.Rollback()

	e, err := loadExamMeta(ctx, tx, examID)
	if err != nil {
		return Attempt{}, err
	}

	var completed int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM attempts WHERE exam_id=$1 AND student_id=$2 AND status=$3`,
		examID, studentID, AttemptCompleted).Scan(&completed); err != nil {
		return Attempt{}, err
	}
	if err := CanStart(e, completed, now); err != nil {
		return Attempt{}, err
	}
	if s.enrolled != nil {
		ok, err := s.enrolled(ctx, examID, studentID)
		if err != nil {
			return Attempt{}, fmt.Errorf("enrollment check: %w", err)
		}
		if !ok {
			return Attempt{}, &IneligibleError{Reason: ReasonNotEnrolled}
		}
	}

	a := Attempt{
		ID:        uuid.NewString(),
		ExamID:    examID,
		StudentID: studentID,
		Status:    AttemptInProgress,
		StartedAt: now.Unix(),
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO attempts (id,exam_id,student_id,status,score,percentage,time_spent_sec,started_at)
		VALUES ($1,$2,$3,$4,0,0,0,$5)`,
		a.ID, a.ExamID, a.StudentID, a.Status, a.StartedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the race: some concurrent start inserted first. Release our
			// transaction, then return the surviving in-progress row.
			tx.Rollback()
			return s.inProgressAttempt(ctx, s.db, examID, studentID)
		}
		return Attempt{}, err
	}
	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return s.inProgressAttempt(ctx, s.db, examID, studentID)
		}
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) SubmitAnswer(ctx context.Context, in SubmitAnswerInput, now time.Time) (AttemptAnswer, error) {
	a, err := s.GetAttempt(ctx, in.AttemptID)
	if err != nil {
		return AttemptAnswer{}, err
	}
	if a.Status != AttemptInProgress {
		return AttemptAnswer{}, ErrInvalidState
	}

	// The question must belong to the attempt's exam.
	var qExamID sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT exam_id FROM questions WHERE id=$1`, in.QuestionID).Scan(&qExamID)
	if errors.Is(err, sql.ErrNoRows) {
		return AttemptAnswer{}, ErrInvalidQuestion
	}
	if err != nil {
		return AttemptAnswer{}, err
	}
	if qExamID.String != a.ExamID {
		return AttemptAnswer{}, ErrInvalidQuestion
	}
	// Every selected option must belong to the question.
	for _, optID := range in.SelectedOptions {
		var one int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM options WHERE id=$1 AND question_id=$2`, optID, in.QuestionID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return AttemptAnswer{}, ErrInvalidQuestion
		}
		if err != nil {
			return AttemptAnswer{}, err
		}
	}

	selJSON, err := json.Marshal(in.SelectedOptions)
	if err != nil {
		return AttemptAnswer{}, err
	}
	// Upsert keyed by (attempt, question): a second submission replaces the
	// first. Grading fields are untouched here; submission is pure recording.
	_, err = s.db.ExecContext(ctx, `INSERT INTO attempt_answers (id,attempt_id,question_id,selected_json,answer_text,points_awarded,time_spent_sec)
		VALUES ($1,$2,$3,$4,$5,0,$6)
		ON CONFLICT (attempt_id,question_id) DO UPDATE SET
		  selected_json=EXCLUDED.selected_json,
		  answer_text=EXCLUDED.answer_text,
		  time_spent_sec=EXCLUDED.time_spent_sec`,
		uuid.NewString(), in.AttemptID, in.QuestionID, string(selJSON), in.AnswerText, in.TimeSpentSec)
	if err != nil {
		return AttemptAnswer{}, err
	}
	return s.answerByAttemptQuestion(ctx, in.AttemptID, in.QuestionID)
}

func (s *SQLStore) CompleteAttempt(ctx context.Context, attemptID string, timeSpentOverride *int64, now time.Time) (Attempt, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Attempt{}, err
	}
	defer tx.Rollback()

	a, err := s.attemptByID(ctx, tx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status != AttemptInProgress {
		return Attempt{}, ErrInvalidState
	}

	e, err := loadExam(ctx, tx, a.ExamID, true)
	if err != nil {
		return Attempt{}, err
	}
	answers, err := s.answersForAttempt(ctx, tx, attemptID)
	if err != nil {
		return Attempt{}, err
	}

	graded, err := s.gradeAll(ctx, tx, e, answers, false, now)
	if err != nil {
		return Attempt{}, err
	}

	a.Score, a.Percentage = AggregateScore(graded, EffectiveTotalPoints(e))
	if timeSpentOverride != nil {
		a.TimeSpentSec = *timeSpentOverride
	} else {
		a.TimeSpentSec = now.Unix() - a.StartedAt
	}
	if a.TimeSpentSec < 0 {
		a.TimeSpentSec = 0
	}
	a.Status = AttemptCompleted
	a.CompletedAt = now.Unix()

	_, err = tx.ExecContext(ctx, `UPDATE attempts SET status=$1, score=$2, percentage=$3, time_spent_sec=$4, completed_at=$5 WHERE id=$6`,
		a.Status, a.Score, a.Percentage, a.TimeSpentSec, a.CompletedAt, a.ID)
	if err != nil {
		return Attempt{}, err
	}
	if err := tx.Commit(); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) AbandonAttempt(ctx context.Context, attemptID string, now time.Time) (Attempt, error) {
	a, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status != AttemptInProgress {
		return Attempt{}, ErrInvalidState
	}
	a.Status = AttemptAbandoned
	a.CompletedAt = now.Unix()
	_, err = s.db.ExecContext(ctx, `UPDATE attempts SET status=$1, completed_at=$2 WHERE id=$3 AND status=$4`,
		a.Status, a.CompletedAt, a.ID, AttemptInProgress)
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) GradeAnswer(ctx context.Context, in ManualGradeInput, now time.Time) (AttemptAnswer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttemptAnswer{}, err
	}
	defer tx.Rollback()

	ans, err := s.answerByID(ctx, tx, in.AnswerID)
	if err != nil {
		return AttemptAnswer{}, err
	}
	a, err := s.attemptByID(ctx, tx, ans.AttemptID)
	if err != nil {
		return AttemptAnswer{}, err
	}
	// Manual grading happens after completion; an in-progress or abandoned
	// attempt has nothing final to revise.
	if a.Status != AttemptCompleted {
		return AttemptAnswer{}, ErrInvalidState
	}

	var maxPoints float64
	if err := tx.QueryRowContext(ctx, `SELECT points FROM questions WHERE id=$1`, ans.QuestionID).Scan(&maxPoints); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AttemptAnswer{}, notFound("question", ans.QuestionID)
		}
		return AttemptAnswer{}, err
	}

	ans.PointsAwarded = grading.ClampPoints(in.Points, maxPoints)
	correct := s.manualPass(ans.PointsAwarded, maxPoints)
	ans.IsCorrect = &correct
	ans.Feedback = in.Feedback
	ans.GradedBy = in.GradedBy
	ans.GradedAt = now.Unix()

	_, err = tx.ExecContext(ctx, `UPDATE attempt_answers SET is_correct=$1, points_awarded=$2, feedback=$3, graded_by=$4, graded_at=$5 WHERE id=$6`,
		correct, ans.PointsAwarded, ans.Feedback, ans.GradedBy, ans.GradedAt, ans.ID)
	if err != nil {
		return AttemptAnswer{}, err
	}

	// Recompute the attempt's score from scratch so the revised points are
	// reflected; this may flip an already-completed attempt's pass/fail.
	if err := s.recomputeScore(ctx, tx, &a); err != nil {
		return AttemptAnswer{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttemptAnswer{}, err
	}
	return ans, nil
}

func (s *SQLStore) Regrade(ctx context.Context, attemptID string, now time.Time) (Attempt, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Attempt{}, err
	}
	defer tx.Rollback()

	a, err := s.attemptByID(ctx, tx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status != AttemptCompleted {
		return Attempt{}, ErrInvalidState
	}
	e, err := loadExam(ctx, tx, a.ExamID, true)
	if err != nil {
		return Attempt{}, err
	}
	answers, err := s.answersForAttempt(ctx, tx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	graded, err := s.gradeAll(ctx, tx, e, answers, true, now)
	if err != nil {
		return Attempt{}, err
	}
	a.Score, a.Percentage = AggregateScore(graded, EffectiveTotalPoints(e))
	_, err = tx.ExecContext(ctx, `UPDATE attempts SET score=$1, percentage=$2 WHERE id=$3`, a.Score, a.Percentage, a.ID)
	if err != nil {
		return Attempt{}, err
	}
	if err := tx.Commit(); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// gradeAll applies the per-type grading rule to every answer and persists the
// grading fields. When preserveManual is set, answers a human already graded
// keep their points.
func (s *SQLStore) gradeAll(ctx context.Context, tx *sql.Tx, e Exam, answers []AttemptAnswer, preserveManual bool, now time.Time) ([]AttemptAnswer, error) {
	questions := map[string]Question{}
	for _, q := range e.Questions {
		questions[q.ID] = q
	}
	out := make([]AttemptAnswer, 0, len(answers))
	for _, ans := range answers {
		if preserveManual && ans.GradedBy != "" {
			out = append(out, ans)
			continue
		}
		q, ok := questions[ans.QuestionID]
		if !ok {
			return nil, fmt.Errorf("grade attempt %s: %w", ans.AttemptID, ErrInvalidQuestion)
		}
		res := s.grader.Grade(gradingView(q), grading.Response{Selected: ans.SelectedOptions, Text: ans.AnswerText})

		ans.PointsAwarded = res.PointsAwarded
		ans.IsCorrect = res.IsCorrect
		if len(res.Feedback) > 0 {
			ans.Feedback = strings.Join(res.Feedback, "; ")
		}

		var isCorrect any
		if ans.IsCorrect != nil {
			isCorrect = *ans.IsCorrect
		}
		_, err := tx.ExecContext(ctx, `UPDATE attempt_answers SET is_correct=$1, points_awarded=$2, feedback=$3 WHERE id=$4`,
			isCorrect, ans.PointsAwarded, ans.Feedback, ans.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ans)
	}
	return out, nil
}

// gradingView materializes the (question, correct set) snapshot the engine
// consumes.
func gradingView(q Question) grading.Q {
	gq := grading.Q{Type: q.Type, Points: q.Points}
	for _, ca := range q.Correct {
		if ca.OptionID != "" {
			gq.CorrectOptions = append(gq.CorrectOptions, ca.OptionID)
		}
		if ca.AnswerText != "" {
			gq.CorrectTexts = append(gq.CorrectTexts, ca.AnswerText)
		}
	}
	return gq
}

func (s *SQLStore) recomputeScore(ctx context.Context, tx *sql.Tx, a *Attempt) error {
	e, err := loadExam(ctx, tx, a.ExamID, false)
	if err != nil {
		return err
	}
	answers, err := s.answersForAttempt(ctx, tx, a.ID)
	if err != nil {
		return err
	}
	a.Score, a.Percentage = AggregateScore(answers, EffectiveTotalPoints(e))
	_, err = tx.ExecContext(ctx, `UPDATE attempts SET score=$1, percentage=$2 WHERE id=$3`, a.Score, a.Percentage, a.ID)
	return err
}

func (s *SQLStore) GetAttempt(ctx context.Context, id string) (Attempt, error) {
	return s.attemptByID(ctx, s.db, id)
}

func (s *SQLStore) GetAnswers(ctx context.Context, attemptID string) ([]AttemptAnswer, error) {
	return s.answersForAttempt(ctx, s.db, attemptID)
}

func (s *SQLStore) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	where := []string{"1=1"}
	args := []any{}
	n := 0
	add := func(cond string, v any) {
		n++
		where = append(where, fmt.Sprintf(cond, n))
		args = append(args, v)
	}
	if opts.ExamID != "" {
		add("exam_id=$%d", opts.ExamID)
	}
	if opts.StudentID != "" {
		add("student_id=$%d", opts.StudentID)
	}
	if opts.Status != "" {
		add("status=$%d", opts.Status)
	}
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	q := fmt.Sprintf(`SELECT id,exam_id,student_id,status,score,percentage,time_spent_sec,started_at,completed_at
		FROM attempts WHERE %s ORDER BY started_at DESC, id LIMIT %d OFFSET %d`,
		strings.Join(where, " AND "), limit, offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) Results(ctx context.Context, attemptID string) (AttemptResults, error) {
	a, err := s.GetAttempt(ctx, attemptID)
	if err != nil {
		return AttemptResults{}, err
	}
	e, err := loadExam(ctx, s.db, a.ExamID, true)
	if err != nil {
		return AttemptResults{}, err
	}
	answers, err := s.answersForAttempt(ctx, s.db, attemptID)
	if err != nil {
		return AttemptResults{}, err
	}
	byQuestion := map[string]AttemptAnswer{}
	for _, ans := range answers {
		byQuestion[ans.QuestionID] = ans
	}

	res := AttemptResults{Attempt: a}
	pending := 0
	for _, q := range e.Questions {
		// Answer keys are only revealed once the attempt is terminal.
		if !a.Terminal() {
			q.Correct = nil
		}
		qr := QuestionResult{Question: q}
		if ans, ok := byQuestion[q.ID]; ok {
			ansCopy := ans
			qr.Answer = &ansCopy
			if ans.IsCorrect == nil && a.Status == AttemptCompleted {
				pending++
			}
		}
		res.Breakdown = append(res.Breakdown, qr)
	}
	res.Summary = ResultsSummary{
		Score:         a.Score,
		Percentage:    a.Percentage,
		TotalPoints:   EffectiveTotalPoints(e),
		Passed:        a.Status == AttemptCompleted && HasPassed(a, e),
		TimeSpentSec:  a.TimeSpentSec,
		PendingManual: pending,
	}
	if a.Status == AttemptCompleted {
		res.Summary.Grade = s.gradeScale.Band(a.Percentage).Label
	}
	return res, nil
}

func (s *SQLStore) ExamStatistics(ctx context.Context, examID string) (ExamStats, error) {
	e, err := loadExamMeta(ctx, s.db, examID)
	if err != nil {
		return ExamStats{}, err
	}
	st := ExamStats{ExamID: examID}
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*),
		COALESCE(AVG(score),0), COALESCE(MIN(score),0), COALESCE(MAX(score),0),
		COALESCE(AVG(percentage),0), COALESCE(AVG(time_spent_sec),0),
		COALESCE(SUM(CASE WHEN percentage >= $1 THEN 1 ELSE 0 END),0)
		FROM attempts WHERE exam_id=$2 AND status=$3`,
		e.PassingScore, examID, AttemptCompleted)
	var passed int
	if err := row.Scan(&st.CompletedCount, &st.AvgScore, &st.MinScore, &st.MaxScore, &st.AvgPercentage, &st.AvgTimeSpentSec, &passed); err != nil {
		return ExamStats{}, err
	}
	if st.CompletedCount > 0 {
		st.PassRate = float64(passed) / float64(st.CompletedCount)
	}
	return st, nil
}

func (s *SQLStore) StudentStatistics(ctx context.Context, studentID string) (StudentStats, error) {
	st := StudentStats{StudentID: studentID}
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT a.exam_id),
		COALESCE(AVG(a.percentage),0), COALESCE(SUM(a.time_spent_sec),0),
		COALESCE(SUM(CASE WHEN a.percentage >= e.passing_score THEN 1 ELSE 0 END),0)
		FROM attempts a JOIN exams e ON e.id=a.exam_id
		WHERE a.student_id=$1 AND a.status=$2`,
		studentID, AttemptCompleted)
	if err := row.Scan(&st.CompletedAttempts, &st.ExamsAttempted, &st.AvgPercentage, &st.TotalTimeSpentSec, &st.Passed); err != nil {
		return StudentStats{}, err
	}
	st.Failed = st.CompletedAttempts - st.Passed
	return st, nil
}

// --- row helpers ---

func (s *SQLStore) inProgressAttempt(ctx context.Context, q querier, examID, studentID string) (Attempt, error) {
	row := q.QueryRowContext(ctx, `SELECT id,exam_id,student_id,status,score,percentage,time_spent_sec,started_at,completed_at
		FROM attempts WHERE exam_id=$1 AND student_id=$2 AND status=$3`,
		examID, studentID, AttemptInProgress)
	return scanAttempt(row)
}

func (s *SQLStore) attemptByID(ctx context.Context, q querier, id string) (Attempt, error) {
	row := q.QueryRowContext(ctx, `SELECT id,exam_id,student_id,status,score,percentage,time_spent_sec,started_at,completed_at
		FROM attempts WHERE id=$1`, id)
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, notFound("attempt", id)
	}
	return a, err
}

const answerColumns = `id,attempt_id,question_id,selected_json,answer_text,is_correct,points_awarded,time_spent_sec,feedback,graded_by,graded_at`

func (s *SQLStore) answerByID(ctx context.Context, q querier, id string) (AttemptAnswer, error) {
	row := q.QueryRowContext(ctx, `SELECT `+answerColumns+` FROM attempt_answers WHERE id=$1`, id)
	a, err := scanAnswer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return AttemptAnswer{}, notFound("answer", id)
	}
	return a, err
}

func (s *SQLStore) answerByAttemptQuestion(ctx context.Context, attemptID, questionID string) (AttemptAnswer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+answerColumns+` FROM attempt_answers WHERE attempt_id=$1 AND question_id=$2`,
		attemptID, questionID)
	a, err := scanAnswer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return AttemptAnswer{}, notFound("answer", attemptID+"/"+questionID)
	}
	return a, err
}

func (s *SQLStore) answersForAttempt(ctx context.Context, q querier, attemptID string) ([]AttemptAnswer, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+answerColumns+` FROM attempt_answers WHERE attempt_id=$1 ORDER BY id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AttemptAnswer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// loadExamMeta fetches the exam row without questions.
func loadExamMeta(ctx context.Context, q querier, id string) (Exam, error) {
	row := q.QueryRowContext(ctx, `SELECT id,title,status,start_at,end_at,duration_sec,max_attempts,passing_score,total_points,created_at
		FROM exams WHERE id=$1`, id)
	var e Exam
	err := row.Scan(&e.ID, &e.Title, &e.Status, &e.StartAt, &e.EndAt, &e.DurationSec, &e.MaxAttempts, &e.PassingScore, &e.TotalPoints, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, notFound("exam", id)
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(r rowScanner) (Attempt, error) {
	var a Attempt
	var completedAt sql.NullInt64
	if err := r.Scan(&a.ID, &a.ExamID, &a.StudentID, &a.Status, &a.Score, &a.Percentage, &a.TimeSpentSec, &a.StartedAt, &completedAt); err != nil {
		return Attempt{}, err
	}
	a.CompletedAt = completedAt.Int64
	return a, nil
}

func scanAnswer(r rowScanner) (AttemptAnswer, error) {
	var a AttemptAnswer
	var selected string
	var isCorrect sql.NullBool
	var gradedAt sql.NullInt64
	if err := r.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &selected, &a.AnswerText, &isCorrect, &a.PointsAwarded, &a.TimeSpentSec, &a.Feedback, &a.GradedBy, &gradedAt); err != nil {
		return AttemptAnswer{}, err
	}
	if isCorrect.Valid {
		v := isCorrect.Bool
		a.IsCorrect = &v
	}
	a.GradedAt = gradedAt.Int64
	if selected != "" {
		if err := json.Unmarshal([]byte(selected), &a.SelectedOptions); err != nil {
			a.SelectedOptions = nil
		}
	}
	return a, nil
}

// isUniqueViolation matches both the pgx and the modernc sqlite wording.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
