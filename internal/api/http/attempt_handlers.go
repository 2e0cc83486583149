package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/event"
	"github.com/examforge/examforge/internal/exam"
	"github.com/examforge/examforge/internal/rbac"
)

type startAttemptReq struct {
	ExamID    string `json:"exam_id" validate:"required"`
	StudentID string `json:"student_id"`
}

// POST /attempts
// Students always start for themselves; teacher/admin may start on behalf of
// a student by passing student_id.
func (api *API) StartAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startAttemptReq
		if !api.decode(w, r, &req) {
			return
		}
		studentID := req.StudentID
		role := rbac.RoleFromContext(r.Context())
		if role == "student" || studentID == "" {
			studentID = rbac.SubjectFromContext(r.Context())
		}
		if studentID == "" {
			http.Error(w, "student_id required", http.StatusBadRequest)
			return
		}
		a, err := api.Store.StartAttempt(r.Context(), req.ExamID, studentID, api.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		api.Events.Record(r.Context(), event.TypeAttemptStarted, a.ID, a)
		writeJSON(w, http.StatusOK, a)
	}
}

type submitAnswerReq struct {
	QuestionID   string   `json:"question_id" validate:"required"`
	OptionID     string   `json:"option_id"`
	OptionIDs    []string `json:"option_ids"`
	AnswerText   string   `json:"answer_text"`
	TimeSpentSec int64    `json:"time_spent_sec" validate:"gte=0"`
}

// POST /attempts/{attemptID}/answers
func (api *API) SubmitAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attemptID := chi.URLParam(r, "attemptID")
		var req submitAnswerReq
		if !api.decode(w, r, &req) {
			return
		}
		if !api.ownsAttemptOr(w, r, attemptID, "attempt:view-all") {
			return
		}
		selected := req.OptionIDs
		if req.OptionID != "" {
			selected = append(selected, req.OptionID)
		}
		ans, err := api.Store.SubmitAnswer(r.Context(), exam.SubmitAnswerInput{
			AttemptID:       attemptID,
			QuestionID:      req.QuestionID,
			SelectedOptions: selected,
			AnswerText:      req.AnswerText,
			TimeSpentSec:    req.TimeSpentSec,
		}, api.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ans)
	}
}

type completeAttemptReq struct {
	TimeSpentSec *int64 `json:"time_spent_sec"`
}

// POST /attempts/{attemptID}/complete
func (api *API) CompleteAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attemptID := chi.URLParam(r, "attemptID")
		var req completeAttemptReq
		if r.ContentLength > 0 {
			if !api.decode(w, r, &req) {
				return
			}
		}
		if !api.ownsAttemptOr(w, r, attemptID, "attempt:view-all") {
			return
		}
		a, err := api.Store.CompleteAttempt(r.Context(), attemptID, req.TimeSpentSec, api.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		api.Events.Record(r.Context(), event.TypeAttemptCompleted, a.ID, a)
		writeJSON(w, http.StatusOK, a)
	}
}

// POST /attempts/{attemptID}/abandon
func (api *API) AbandonAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attemptID := chi.URLParam(r, "attemptID")
		if !api.ownsAttemptOr(w, r, attemptID, "attempt:view-all") {
			return
		}
		a, err := api.Store.AbandonAttempt(r.Context(), attemptID, api.Now())
		if err != nil {
			writeError(w, err)
			return
		}
		api.Events.Record(r.Context(), event.TypeAttemptAbandoned, a.ID, a)
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /attempts/{attemptID}/results
func (api *API) AttemptResults() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attemptID := chi.URLParam(r, "attemptID")
		if !api.ownsAttemptOr(w, r, attemptID, "attempt:view-all") {
			return
		}
		res, err := api.Store.Results(r.Context(), attemptID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /attempts/{attemptID}
func (api *API) GetAttempt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attemptID := chi.URLParam(r, "attemptID")
		if !api.ownsAttemptOr(w, r, attemptID, "attempt:view-all") {
			return
		}
		a, err := api.Store.GetAttempt(r.Context(), attemptID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /attempts?exam_id=&student_id=&status=&limit=&offset=
// Callers without attempt:view-all are scoped to their own attempts.
func (api *API) ListAttempts() http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		studentID := strings.TrimSpace(r.URL.Query().Get("student_id"))
		if !checker.Has(role, "attempt:view-all") {
			studentID = rbac.SubjectFromContext(r.Context())
		}
		list, err := api.Store.ListAttempts(r.Context(), exam.AttemptListOpts{
			ExamID:    strings.TrimSpace(r.URL.Query().Get("exam_id")),
			StudentID: studentID,
			Status:    strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:     parseIntDefault(r.URL.Query().Get("limit"), 50),
			Offset:    parseIntDefault(r.URL.Query().Get("offset"), 0),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// ownsAttemptOr allows the attempt's owner through, or any role holding the
// given permission. Writes the error response itself when denying.
func (api *API) ownsAttemptOr(w http.ResponseWriter, r *http.Request, attemptID, perm string) bool {
	role := rbac.RoleFromContext(r.Context())
	if rbac.NewChecker(nil).Has(role, perm) {
		return true
	}
	a, err := api.Store.GetAttempt(r.Context(), attemptID)
	if err != nil {
		writeError(w, err)
		return false
	}
	if a.StudentID != rbac.SubjectFromContext(r.Context()) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return false
	}
	return true
}
