package exam

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Catalog is the read side of the authoring subsystem: exams, questions,
// options and correct answers. The attempt engine treats everything behind
// this interface as immutable while an attempt references it.
type Catalog interface {
	// SaveExam upserts an exam together with its questions, options and
	// correct answers, recomputing total_points. This is the minimal
	// authoring surface the engine and its tests need.
	SaveExam(ctx context.Context, e Exam) (Exam, error)
	// GetExam returns the student-safe view: correct answers stripped.
	GetExam(ctx context.Context, id string) (Exam, error)
	// GetExamAdmin returns the full exam including answer keys.
	GetExamAdmin(ctx context.Context, id string) (Exam, error)
}

// querier is satisfied by both *sql.DB and *sql.Tx so the loaders can run
// inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type SQLCatalog struct {
	db *sql.DB
}

func NewSQLCatalog(db *sql.DB) *SQLCatalog { return &SQLCatalog{db: db} }

func (c *SQLCatalog) SaveExam(ctx context.Context, e Exam) (Exam, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = ExamDraft
	}
	e.TotalPoints = e.QuestionPointsSum()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return Exam{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO exams (id,title,status,start_at,end_at,duration_sec,max_attempts,passing_score,total_points,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, status=EXCLUDED.status,
		  start_at=EXCLUDED.start_at, end_at=EXCLUDED.end_at, duration_sec=EXCLUDED.duration_sec,
		  max_attempts=EXCLUDED.max_attempts, passing_score=EXCLUDED.passing_score,
		  total_points=EXCLUDED.total_points`,
		e.ID, e.Title, e.Status, e.StartAt, e.EndAt, e.DurationSec, e.MaxAttempts, e.PassingScore, e.TotalPoints, time.Now().Unix())
	if err != nil {
		return Exam{}, err
	}

	for qi := range e.Questions {
		q := &e.Questions[qi]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.ExamID = e.ID
		if q.Position == 0 {
			q.Position = qi + 1
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO questions (id,exam_id,type,text,points,position)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO UPDATE SET exam_id=EXCLUDED.exam_id, type=EXCLUDED.type,
			  text=EXCLUDED.text, points=EXCLUDED.points, position=EXCLUDED.position`,
			q.ID, q.ExamID, q.Type, q.Text, q.Points, q.Position)
		if err != nil {
			return Exam{}, err
		}
		for oi := range q.Options {
			o := &q.Options[oi]
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			o.QuestionID = q.ID
			if o.Position == 0 {
				o.Position = oi + 1
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO options (id,question_id,key,text,position)
				VALUES ($1,$2,$3,$4,$5)
				ON CONFLICT (id) DO UPDATE SET question_id=EXCLUDED.question_id, key=EXCLUDED.key,
				  text=EXCLUDED.text, position=EXCLUDED.position`,
				o.ID, o.QuestionID, o.Key, o.Text, o.Position)
			if err != nil {
				return Exam{}, err
			}
		}
		// Correct answers are replaced wholesale: the designated set, not a
		// merge, defines correctness.
		if _, err = tx.ExecContext(ctx, `DELETE FROM correct_answers WHERE question_id=$1`, q.ID); err != nil {
			return Exam{}, err
		}
		for ci := range q.Correct {
			ca := &q.Correct[ci]
			if ca.ID == "" {
				ca.ID = uuid.NewString()
			}
			ca.QuestionID = q.ID
			var optID any
			if ca.OptionID != "" {
				optID = ca.OptionID
			}
			_, err = tx.ExecContext(ctx, `INSERT INTO correct_answers (id,question_id,option_id,answer_text)
				VALUES ($1,$2,$3,$4)`,
				ca.ID, ca.QuestionID, optID, ca.AnswerText)
			if err != nil {
				return Exam{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (c *SQLCatalog) GetExam(ctx context.Context, id string) (Exam, error) {
	e, err := loadExam(ctx, c.db, id, false)
	if err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (c *SQLCatalog) GetExamAdmin(ctx context.Context, id string) (Exam, error) {
	return loadExam(ctx, c.db, id, true)
}

// loadExam materializes an exam with its questions and options; withKeys
// additionally loads the correct-answer sets.
func loadExam(ctx context.Context, q querier, id string, withKeys bool) (Exam, error) {
	row := q.QueryRowContext(ctx, `SELECT id,title,status,start_at,end_at,duration_sec,max_attempts,passing_score,total_points,created_at
		FROM exams WHERE id=$1`, id)
	var e Exam
	if err := row.Scan(&e.ID, &e.Title, &e.Status, &e.StartAt, &e.EndAt, &e.DurationSec, &e.MaxAttempts, &e.PassingScore, &e.TotalPoints, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, notFound("exam", id)
		}
		return Exam{}, err
	}

	rows, err := q.QueryContext(ctx, `SELECT id,type,text,points,position FROM questions WHERE exam_id=$1 ORDER BY position, id`, id)
	if err != nil {
		return Exam{}, err
	}
	defer rows.Close()
	byID := map[string]*Question{}
	for rows.Next() {
		var qu Question
		if err := rows.Scan(&qu.ID, &qu.Type, &qu.Text, &qu.Points, &qu.Position); err != nil {
			return Exam{}, err
		}
		qu.ExamID = e.ID
		e.Questions = append(e.Questions, qu)
	}
	if err := rows.Err(); err != nil {
		return Exam{}, err
	}
	for i := range e.Questions {
		byID[e.Questions[i].ID] = &e.Questions[i]
	}

	orows, err := q.QueryContext(ctx, `SELECT o.id,o.question_id,o.key,o.text,o.position
		FROM options o JOIN questions qs ON qs.id=o.question_id
		WHERE qs.exam_id=$1 ORDER BY o.position, o.id`, id)
	if err != nil {
		return Exam{}, err
	}
	defer orows.Close()
	for orows.Next() {
		var o Option
		if err := orows.Scan(&o.ID, &o.QuestionID, &o.Key, &o.Text, &o.Position); err != nil {
			return Exam{}, err
		}
		if qu, ok := byID[o.QuestionID]; ok {
			qu.Options = append(qu.Options, o)
		}
	}
	if err := orows.Err(); err != nil {
		return Exam{}, err
	}

	if !withKeys {
		return e, nil
	}

	crows, err := q.QueryContext(ctx, `SELECT ca.id,ca.question_id,ca.option_id,ca.answer_text
		FROM correct_answers ca JOIN questions qs ON qs.id=ca.question_id
		WHERE qs.exam_id=$1`, id)
	if err != nil {
		return Exam{}, err
	}
	defer crows.Close()
	for crows.Next() {
		var ca CorrectAnswer
		var optID sql.NullString
		if err := crows.Scan(&ca.ID, &ca.QuestionID, &optID, &ca.AnswerText); err != nil {
			return Exam{}, err
		}
		ca.OptionID = optID.String
		if qu, ok := byID[ca.QuestionID]; ok {
			qu.Correct = append(qu.Correct, ca)
		}
	}
	return e, crows.Err()
}
