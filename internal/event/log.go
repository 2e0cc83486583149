// Package event records attempt lifecycle events: an append-only SQL log for
// audit and recovery, and an optional broker publisher for downstream
// consumers (notifications stay external to this service).
package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"
)

// Event types emitted by the attempt engine.
const (
	TypeAttemptStarted   = "attempt.started"
	TypeAttemptCompleted = "attempt.completed"
	TypeAttemptAbandoned = "attempt.abandoned"
	TypeAnswerGraded     = "answer.graded"
)

type Event struct {
	Offset    int64
	Type      string
	Key       string // natural key: attempt or answer ID
	DataJSON  string
	CreatedAt int64
}

// Publisher delivers an event to an external broker.
type Publisher interface {
	Publish(eventType, key string, payload any) error
	Close()
}

// Recorder appends to the SQL event log and, when a publisher is configured,
// forwards to the broker. Recording is best-effort: a failure is logged, not
// propagated, since the owning operation has already committed.
type Recorder struct {
	db  *sql.DB
	pub Publisher
}

func NewRecorder(db *sql.DB, pub Publisher) *Recorder {
	return &Recorder{db: db, pub: pub}
}

func (r *Recorder) Record(ctx context.Context, eventType, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("event %s %s: marshal: %v", eventType, key, err)
		return
	}
	if r.db != nil {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO event_log (typ, key, data, created_at) VALUES ($1,$2,$3,$4)`,
			eventType, key, string(data), time.Now().Unix())
		if err != nil {
			log.Printf("event %s %s: append: %v", eventType, key, err)
		}
	}
	if r.pub != nil {
		if err := r.pub.Publish(eventType, key, payload); err != nil {
			log.Printf("event %s %s: publish: %v", eventType, key, err)
		}
	}
}
