package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slideforge/internal/domain"
)

// SlideImage rasterizes one slide and returns it as a binary attachment.
// Query parameters: format (png|jpeg, default png) and size (one of the
// supported WxH values, default 1080x1350).
func (a *App) SlideImage(w http.ResponseWriter, r *http.Request) {
	slideID := chi.URLParam(r, "id")
	if slideID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "slide id required")
		return
	}

	format := domain.ExportFormatPNG
	switch r.URL.Query().Get("format") {
	case "", "png":
	case "jpeg", "jpg":
		format = domain.ExportFormatJPEG
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported format")
		return
	}

	size := domain.ExportSize{Width: 1080, Height: 1350}
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, ok := domain.ParseExportSize(raw)
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "unsupported size")
			return
		}
		size = parsed
	}

	data, contentType, err := a.Pipeline.RenderSlide(r.Context(), slideID, format, size)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	ext := "png"
	if format == domain.ExportFormatJPEG {
		ext = "jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=slide-%s.%s", slideID, ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
