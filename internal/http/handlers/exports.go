package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RunArchiveExport executes the full archive pipeline for an export record.
// The artifact is fetched separately via its signed storage path; this
// endpoint only reports success or failure, flipping the export record as a
// side effect.
func (a *App) RunArchiveExport(w http.ResponseWriter, r *http.Request) {
	carouselID := chi.URLParam(r, "id")
	exportID := chi.URLParam(r, "exportID")
	if carouselID == "" || exportID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "carousel id and export id required")
		return
	}
	if err := a.Pipeline.RunArchive(r.Context(), carouselID, exportID); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunVideoPrep captures layered background/overlay frames for every slide of
// the carousel and returns their URLs for downstream video assembly.
func (a *App) RunVideoPrep(w http.ResponseWriter, r *http.Request) {
	carouselID := chi.URLParam(r, "id")
	if carouselID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "carousel id required")
		return
	}
	result, err := a.Pipeline.RunVideoPrep(r.Context(), carouselID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, result)
}
