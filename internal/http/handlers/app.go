package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"slideforge/internal/domain"
	"slideforge/internal/export"
	"slideforge/internal/infra"
	"slideforge/internal/storage"
)

// App is the handler container; the router hangs every endpoint off it.
type App struct {
	Config   *infra.Config
	Log      zerolog.Logger
	Store    *storage.FileStore
	Pipeline *export.Pipeline
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, log zerolog.Logger, store *storage.FileStore, pipeline *export.Pipeline) *App {
	return &App{Config: cfg, Log: log, Store: store, Pipeline: pipeline}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]string{"error": errCode, "message": msg})
}

// fail maps pipeline errors onto client responses. Internal detail stays in
// the logs; the caller sees a single user-facing message.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrExportNotPending):
		a.error(w, http.StatusConflict, "already_processed", "export already processed")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", "invalid request")
	case errors.Is(err, domain.ErrNoTemplate):
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("export failed: template")
		a.error(w, http.StatusUnprocessableEntity, "no_template", err.Error())
	default:
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("export failed")
		a.error(w, http.StatusInternalServerError, "internal", "export failed")
	}
}
