package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"slideforge/internal/adapter/repo"
	"slideforge/internal/background"
	"slideforge/internal/export"
	"slideforge/internal/http/handlers"
	httpapi "slideforge/internal/http/httpapi"
	"slideforge/internal/infra"
	"slideforge/internal/infra/geoip"
	"slideforge/internal/middleware"
	"slideforge/internal/rasterize"
	"slideforge/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	store, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL, cfg.StorageSigningSecret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var countryLookup middleware.CountryLookup
	if geo != nil {
		countryLookup = geo.CountryCode
	}

	assets := repo.NewAssetRepository(dbpool)
	resolver := background.NewResolver(store, assets, cfg.SignedURLTTL, logger)

	rasterCfg := rasterize.Config{
		Bin:         cfg.BrowserBin,
		NavTimeout:  cfg.RasterNavTimeout,
		SettleDelay: cfg.RasterSettleDelay,
	}
	pipeline := &export.Pipeline{
		Templates: repo.NewTemplateRepository(dbpool),
		Slides:    repo.NewSlideRepository(dbpool),
		Carousels: repo.NewCarouselRepository(dbpool),
		Exports:   repo.NewExportRepository(dbpool),
		Brands:    repo.NewBrandKitRepository(dbpool),
		Store:     store,
		Resolver:  resolver,
		NewSession: func(ctx context.Context) (export.Rasterizer, error) {
			return rasterize.NewSession(ctx, rasterCfg)
		},
		SignedTTL: cfg.SignedURLTTL,
		Log:       logger,
	}

	app := handlers.NewApp(cfg, logger, store, pipeline)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		CountryLookup:   countryLookup,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
