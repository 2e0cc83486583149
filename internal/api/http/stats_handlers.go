package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/rbac"
)

// GET /exams/{examID}/stats
func (api *API) ExamStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := api.Store.ExamStatistics(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

// GET /students/{studentID}/stats
// A caller without stats:view may only read their own aggregate.
func (api *API) StudentStatistics() http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")
		role := rbac.RoleFromContext(r.Context())
		if !checker.Has(role, "stats:view") && studentID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		st, err := api.Store.StudentStatistics(r.Context(), studentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
