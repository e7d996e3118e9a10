package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"slideforge/internal/http/handlers"
	"slideforge/internal/middleware"
)

// Options carries the middleware knobs the router needs beyond the App.
type Options struct {
	Logger          zerolog.Logger
	CountryLookup   middleware.CountryLookup
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter builds the service router with the shared middleware stack.
func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Geo(opts.CountryLookup))
	r.Use(middleware.Logger(opts.Logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.AllowedOrigins))
	}
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/slides", func(r chi.Router) {
		r.Get("/{id}/image", app.SlideImage)
	})

	r.Route("/v1/carousels", func(r chi.Router) {
		r.Post("/{id}/exports/{exportID}", app.RunArchiveExport)
		r.Post("/{id}/video-frames", app.RunVideoPrep)
	})

	r.Get("/v1/files/*", app.ServeSignedFile)

	return r
}
