package exam

import (
	"context"
	"time"
)

// EnrollmentFunc is the external class-membership check. Nil means the
// deployment does not gate attempts on enrollment.
type EnrollmentFunc func(ctx context.Context, examID, studentID string) (bool, error)

const ReasonNotEnrolled = "not enrolled"

// CanStart decides whether a student may start an exam, in order: exam is
// published and the clock is inside its window, then the completed-attempt
// cap. It has no side effects; callers supply the completed count.
func CanStart(e Exam, completedAttempts int, now time.Time) error {
	if e.Status != ExamPublished {
		return &IneligibleError{Reason: ReasonNotAvailable}
	}
	ts := now.Unix()
	if ts < e.StartAt || (e.EndAt > 0 && ts > e.EndAt) {
		return &IneligibleError{Reason: ReasonNotAvailable}
	}
	if e.MaxAttempts > 0 && completedAttempts >= e.MaxAttempts {
		return &IneligibleError{Reason: ReasonMaxAttemptsReached}
	}
	return nil
}
