// Package grading turns a submitted answer into correctness and points.
// Every strategy is a pure function of the question's correct-answer set and
// the submitted response; nothing here touches storage.
package grading

import "strings"

// Q is the snapshot of a question the engine needs: type, max points, and the
// designated correct answers. Stores materialize it; the engine never walks
// live object graphs.
type Q struct {
	Type           string
	Points         float64
	CorrectOptions []string // option IDs marked correct
	CorrectTexts   []string // accepted free-text values (objective text types)
}

// Response is the student's recorded answer for one question.
type Response struct {
	Selected []string // option IDs; single-select types carry at most one
	Text     string
}

// Result is the outcome of grading a single response.
//
// IsCorrect is nil when the question requires manual review; the answer then
// contributes zero points until a grader assigns some.
type Result struct {
	PointsAwarded float64
	MaxPoints     float64
	IsCorrect     *bool
	NeedsManual   bool
	Feedback      []string
}

// Strategy grades a single question type.
type Strategy interface {
	Grade(q Q, resp Response) Result
}

// Grader routes by question type to the registered Strategy.
type Grader interface {
	Grade(q Q, resp Response) Result
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(q Q, resp Response) Result {
	s, ok := g.strategies[q.Type]
	if !ok {
		// Unknown types fall through to manual review rather than silently
		// awarding or denying credit.
		return Result{MaxPoints: q.Points, NeedsManual: true, Feedback: []string{"no strategy for type " + q.Type}}
	}
	return s.Grade(q, resp)
}

type config struct {
	PartialMultiCredit bool
}

type Option func(*config)

// WithPartialMultiCredit enables proportional credit for multiple_answers
// questions with no wrong selections. Off by default: the stock rule is
// all-or-nothing set equality.
func WithPartialMultiCredit(b bool) Option {
	return func(c *config) { c.PartialMultiCredit = b }
}

// NewDefaultGrader installs the built-in strategies.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[string]Strategy{
			"multiple_choice":  singleChoiceStrategy{},
			"true_false":       singleChoiceStrategy{},
			"multiple_answers": multiAnswerStrategy{allowPartial: cfg.PartialMultiCredit},
			"short_answer":     manualStrategy{},
			"essay":            manualStrategy{},
		},
	}
}

// --- Strategies ---

// singleChoiceStrategy covers multiple_choice and true_false: correct iff the
// single selected option is exactly the option marked correct.
type singleChoiceStrategy struct{}

func (singleChoiceStrategy) Grade(q Q, resp Response) Result {
	res := Result{MaxPoints: q.Points}
	correct := len(resp.Selected) == 1 && contains(q.CorrectOptions, resp.Selected[0])
	res.IsCorrect = &correct
	if correct {
		res.PointsAwarded = q.Points
	}
	return res
}

// multiAnswerStrategy grades multiple_answers by exact set equality between
// selected and correct option sets.
type multiAnswerStrategy struct{ allowPartial bool }

func (s multiAnswerStrategy) Grade(q Q, resp Response) Result {
	res := Result{MaxPoints: q.Points}
	correctSet := toSet(q.CorrectOptions)
	selected := toSet(resp.Selected)

	if len(correctSet) > 0 && setEqual(correctSet, selected) {
		t := true
		res.IsCorrect = &t
		res.PointsAwarded = q.Points
		return res
	}

	f := false
	res.IsCorrect = &f
	if !s.allowPartial || len(correctSet) == 0 {
		return res
	}
	// Partial credit: fraction of correct options selected, but only when no
	// wrong option was picked.
	hits := 0
	for id := range selected {
		if _, ok := correctSet[id]; !ok {
			return res
		}
		hits++
	}
	res.PointsAwarded = q.Points * float64(hits) / float64(len(correctSet))
	return res
}

// manualStrategy defers short_answer and essay to a human grader: correctness
// stays undetermined and no points are awarded automatically.
type manualStrategy struct{}

func (manualStrategy) Grade(q Q, resp Response) Result {
	res := Result{MaxPoints: q.Points, NeedsManual: true}
	if strings.TrimSpace(resp.Text) == "" && len(resp.Selected) == 0 {
		res.Feedback = append(res.Feedback, "empty response")
	}
	return res
}

// helpers

func contains(arr []string, v string) bool {
	for _, s := range arr {
		if s == v {
			return true
		}
	}
	return false
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
