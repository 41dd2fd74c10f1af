package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"versegen/internal/adapter/repo"
	"versegen/internal/auth"
	"versegen/internal/domain"
	"versegen/internal/http/handlers"
	httpapi "versegen/internal/http/httpapi"
	"versegen/internal/infra"
	"versegen/internal/infra/credentials"
	"versegen/internal/infra/geoip"
	"versegen/internal/middleware"
	"versegen/internal/providers/genai"
	"versegen/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	catalog, err := domain.ParseCatalogJSON(cfg.FeatureTiersJSON)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid FEATURE_TIERS configuration")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	geoResolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var lookup middleware.CountryLookup
	if geoResolver != nil {
		lookup = geoResolver.CountryCode
	}

	authClient, err := auth.NewClient(auth.Options{
		BaseURL: cfg.SupabaseURL,
		AnonKey: cfg.SupabaseAnonKey,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid supabase configuration")
	}

	profiles := repo.NewProfileRepo(runner)
	vods := repo.NewVodRepo(runner)
	usage := repo.NewUsageRepo(runner, logger)
	keyStore := credentials.NewStore(runner)

	generator := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiModel,
		ImageModel: cfg.ImagenModel,
		Logger:     &logger,
		Keys:       keyStore,
	})

	sessions := session.NewManager(authClient, profiles, catalog, logger)

	app := &handlers.App{
		Logger:    logger,
		Catalog:   catalog,
		Generator: generator,
		Sessions:  sessions,
		Profiles:  profiles,
		Vods:      vods,
		Usage:     usage,
	}

	router := httpapi.NewRouter(app, cfg, lookup)
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
