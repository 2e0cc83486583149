package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/exam"
	"github.com/examforge/examforge/internal/rbac"
)

// POST /exams
// Authoring boundary: upsert an exam with questions, options and correct
// answers. total_points is recomputed from the question set.
func (api *API) SaveExam() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e exam.Exam
		if !api.decode(w, r, &e) {
			return
		}
		saved, err := api.Catalog.SaveExam(r.Context(), e)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, saved)
	}
}

// GET /exams/{examID}
// Roles holding exam:view-keys get the full exam; everyone else gets the
// student-safe view with correct answers stripped.
func (api *API) GetExam() http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "examID")
		role := rbac.RoleFromContext(r.Context())
		var (
			e   exam.Exam
			err error
		)
		if checker.Has(role, "exam:view-keys") {
			e, err = api.Catalog.GetExamAdmin(r.Context(), id)
		} else {
			e, err = api.Catalog.GetExam(r.Context(), id)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}
