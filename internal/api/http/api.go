// Package http exposes the attempt engine over JSON endpoints. Handlers
// validate input, map domain errors to statuses, and thread an explicit
// clock reading into every mutating operation.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/examforge/examforge/internal/event"
	"github.com/examforge/examforge/internal/exam"
	"github.com/examforge/examforge/internal/storage"
)

type API struct {
	Store   exam.Store
	Catalog exam.Catalog
	Assets  storage.AssetStore
	Events  *event.Recorder
	// Now supplies the clock; tests swap it for a fixed instant.
	Now func() time.Time

	validate *validator.Validate
}

func NewAPI(store exam.Store, catalog exam.Catalog, assets storage.AssetStore, events *event.Recorder) *API {
	return &API{
		Store:    store,
		Catalog:  catalog,
		Assets:   assets,
		Events:   events,
		Now:      time.Now,
		validate: validator.New(),
	}
}

func (api *API) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := api.validate.Struct(dst); err != nil {
		http.Error(w, "validation: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var inel *exam.IneligibleError
	switch {
	case errors.As(err, &inel):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "ineligible", "reason": inel.Reason})
	case errors.Is(err, exam.ErrInvalidState):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "invalid state"})
	case errors.Is(err, exam.ErrInvalidQuestion):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid question"})
	case errors.Is(err, exam.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
