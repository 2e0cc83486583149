package exam

import (
	"errors"
	"testing"
	"time"
)

func TestCanStart(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	base := Exam{
		ID:          "ex1",
		Status:      ExamPublished,
		StartAt:     now.Add(-time.Hour).Unix(),
		EndAt:       now.Add(time.Hour).Unix(),
		MaxAttempts: 2,
	}

	tests := []struct {
		name       string
		mutate     func(*Exam)
		completed  int
		wantReason string // empty means eligible
	}{
		{name: "eligible", completed: 0},
		{name: "one attempt left", completed: 1},
		{name: "draft", mutate: func(e *Exam) { e.Status = ExamDraft }, wantReason: ReasonNotAvailable},
		{name: "archived", mutate: func(e *Exam) { e.Status = ExamArchived }, wantReason: ReasonNotAvailable},
		{name: "before window", mutate: func(e *Exam) { e.StartAt = now.Add(time.Minute).Unix() }, wantReason: ReasonNotAvailable},
		{name: "after window", mutate: func(e *Exam) { e.EndAt = now.Add(-time.Minute).Unix() }, wantReason: ReasonNotAvailable},
		{name: "open-ended window", mutate: func(e *Exam) { e.EndAt = 0 }},
		{name: "cap reached", completed: 2, wantReason: ReasonMaxAttemptsReached},
		{name: "cap exceeded", completed: 5, wantReason: ReasonMaxAttemptsReached},
		{name: "unlimited attempts", mutate: func(e *Exam) { e.MaxAttempts = 0 }, completed: 99},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := base
			if tc.mutate != nil {
				tc.mutate(&e)
			}
			err := CanStart(e, tc.completed, now)
			if tc.wantReason == "" {
				if err != nil {
					t.Fatalf("CanStart = %v, want nil", err)
				}
				return
			}
			var inel *IneligibleError
			if !errors.As(err, &inel) {
				t.Fatalf("CanStart = %v, want IneligibleError", err)
			}
			if inel.Reason != tc.wantReason {
				t.Errorf("reason = %q, want %q", inel.Reason, tc.wantReason)
			}
		})
	}
}
