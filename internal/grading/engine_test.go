package grading

import "testing"

func boolPtr(b bool) *bool { return &b }

func assertResult(t *testing.T, got Result, wantPoints float64, wantCorrect *bool, wantManual bool) {
	t.Helper()
	if got.PointsAwarded != wantPoints {
		t.Errorf("points = %v, want %v", got.PointsAwarded, wantPoints)
	}
	if (got.IsCorrect == nil) != (wantCorrect == nil) {
		t.Fatalf("is_correct = %v, want %v", got.IsCorrect, wantCorrect)
	}
	if got.IsCorrect != nil && *got.IsCorrect != *wantCorrect {
		t.Errorf("is_correct = %v, want %v", *got.IsCorrect, *wantCorrect)
	}
	if got.NeedsManual != wantManual {
		t.Errorf("needs_manual = %v, want %v", got.NeedsManual, wantManual)
	}
}

func TestGradeSingleChoice(t *testing.T) {
	q := Q{Type: "multiple_choice", Points: 5, CorrectOptions: []string{"opt-b"}}
	tests := []struct {
		name     string
		selected []string
		points   float64
		correct  *bool
	}{
		{name: "correct option", selected: []string{"opt-b"}, points: 5, correct: boolPtr(true)},
		{name: "wrong option", selected: []string{"opt-a"}, points: 0, correct: boolPtr(false)},
		{name: "no selection", selected: nil, points: 0, correct: boolPtr(false)},
		{name: "two selections", selected: []string{"opt-a", "opt-b"}, points: 0, correct: boolPtr(false)},
	}
	g := NewDefaultGrader()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Grade(q, Response{Selected: tc.selected})
			assertResult(t, got, tc.points, tc.correct, false)
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	g := NewDefaultGrader()
	q := Q{Type: "true_false", Points: 2, CorrectOptions: []string{"opt-true"}}

	got := g.Grade(q, Response{Selected: []string{"opt-true"}})
	assertResult(t, got, 2, boolPtr(true), false)

	got = g.Grade(q, Response{Selected: []string{"opt-false"}})
	assertResult(t, got, 0, boolPtr(false), false)
}

func TestGradeMultipleAnswers(t *testing.T) {
	q := Q{Type: "multiple_answers", Points: 4, CorrectOptions: []string{"a", "d"}}
	tests := []struct {
		name     string
		selected []string
		points   float64
		correct  *bool
	}{
		{name: "exact set any order", selected: []string{"d", "a"}, points: 4, correct: boolPtr(true)},
		{name: "missing one", selected: []string{"a"}, points: 0, correct: boolPtr(false)},
		{name: "extra one", selected: []string{"a", "d", "b"}, points: 0, correct: boolPtr(false)},
		{name: "empty selection", selected: nil, points: 0, correct: boolPtr(false)},
		{name: "duplicate selection collapses", selected: []string{"a", "a", "d"}, points: 4, correct: boolPtr(true)},
	}
	g := NewDefaultGrader()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Grade(q, Response{Selected: tc.selected})
			assertResult(t, got, tc.points, tc.correct, false)
		})
	}
}

func TestGradeMultipleAnswersPartialCredit(t *testing.T) {
	q := Q{Type: "multiple_answers", Points: 4, CorrectOptions: []string{"a", "d"}}
	g := NewDefaultGrader(WithPartialMultiCredit(true))

	// Half the correct set, no wrong picks: half credit, still marked wrong.
	got := g.Grade(q, Response{Selected: []string{"a"}})
	assertResult(t, got, 2, boolPtr(false), false)

	// A wrong pick voids partial credit.
	got = g.Grade(q, Response{Selected: []string{"a", "b"}})
	assertResult(t, got, 0, boolPtr(false), false)

	// Full set still earns full credit and correct.
	got = g.Grade(q, Response{Selected: []string{"d", "a"}})
	assertResult(t, got, 4, boolPtr(true), false)
}

func TestGradeManualTypes(t *testing.T) {
	g := NewDefaultGrader()
	for _, typ := range []string{"short_answer", "essay"} {
		t.Run(typ, func(t *testing.T) {
			got := g.Grade(Q{Type: typ, Points: 10}, Response{Text: "some prose"})
			assertResult(t, got, 0, nil, true)
		})
	}
}

func TestGradeUnknownTypeDefersToManual(t *testing.T) {
	g := NewDefaultGrader()
	got := g.Grade(Q{Type: "matching", Points: 3}, Response{})
	assertResult(t, got, 0, nil, true)
}

func TestHalfPointsPass(t *testing.T) {
	tests := []struct {
		points, max float64
		want        bool
	}{
		{3, 5, true},
		{2.5, 5, true},
		{2, 5, false},
		{0, 5, false},
		{5, 5, true},
		{1, 0, true}, // degenerate zero-point question: any credit passes
		{0, 0, false},
	}
	for _, tc := range tests {
		if got := HalfPointsPass(tc.points, tc.max); got != tc.want {
			t.Errorf("HalfPointsPass(%v,%v) = %v, want %v", tc.points, tc.max, got, tc.want)
		}
	}
}

func TestClampPoints(t *testing.T) {
	if got := ClampPoints(-1, 5); got != 0 {
		t.Errorf("clamp below = %v, want 0", got)
	}
	if got := ClampPoints(7, 5); got != 5 {
		t.Errorf("clamp above = %v, want 5", got)
	}
	if got := ClampPoints(3, 5); got != 3 {
		t.Errorf("clamp inside = %v, want 3", got)
	}
}
