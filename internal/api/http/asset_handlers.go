package http

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/storage"
)

// PUT /exams/{examID}/assets/{name}
// Stores a question attachment (image, reference sheet) for an exam. The
// exam must exist; the body is the raw asset.
func (api *API) UploadExamAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		examID := chi.URLParam(r, "examID")
		name := chi.URLParam(r, "name")
		if _, err := api.Catalog.GetExam(r.Context(), examID); err != nil {
			writeError(w, err)
			return
		}
		a, err := api.Assets.Put(r.Context(), examID, name, r.Header.Get("Content-Type"), r.Body)
		if err != nil {
			writeAssetError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// GET /exams/{examID}/assets/{name}
func (api *API) GetExamAsset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc, a, err := api.Assets.Open(r.Context(), chi.URLParam(r, "examID"), chi.URLParam(r, "name"))
		if err != nil {
			writeAssetError(w, err)
			return
		}
		defer rc.Close()
		if a.ContentType != "" {
			w.Header().Set("Content-Type", a.ContentType)
		}
		_, _ = io.Copy(w, rc)
	}
}

// GET /exams/{examID}/assets
func (api *API) ListExamAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := api.Assets.List(r.Context(), chi.URLParam(r, "examID"))
		if err != nil {
			writeAssetError(w, err)
			return
		}
		if list == nil {
			list = []storage.Asset{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func writeAssetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrBadName):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad asset name"})
	case os.IsNotExist(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeError(w, err)
	}
}
