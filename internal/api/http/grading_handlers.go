package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/event"
	"github.com/examforge/examforge/internal/exam"
	"github.com/examforge/examforge/internal/rbac"
)

type gradeAnswerReq struct {
	Points   float64 `json:"points" validate:"gte=0"`
	Feedback string  `json:"feedback"`
}

// POST /answers/{answerID}/grade
// Manual override for short_answer/essay answers (or any answer a grader
// wants to revise). Points are clamped to the question's maximum and the
// owning attempt's score is recomputed.
func (api *API) GradeAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		answerID := chi.URLParam(r, "answerID")
		var req gradeAnswerReq
		if !api.decode(w, r, &req) {
			return
		}
		ans, err := api.Store.GradeAnswer(r.Context(), exam.ManualGradeInput{
			AnswerID: answerID,
			Points:   req.Points,
			Feedback: req.Feedback,
			GradedBy: rbac.SubjectFromContext(r.Context()),
		}, api.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		api.Events.Record(r.Context(), event.TypeAnswerGraded, ans.ID, ans)
		writeJSON(w, http.StatusOK, ans)
	}
}

// POST /attempts/{attemptID}/regrade
// Re-runs automatic grading (preserving manual grades) and recomputes the
// score. Recovery path for attempts caught mid-finalization and for answer
// key corrections.
func (api *API) RegradeAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attemptID := chi.URLParam(r, "attemptID")
		a, err := api.Store.Regrade(r.Context(), attemptID, api.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}
