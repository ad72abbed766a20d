package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/memberhub/media-api/internal/config"
	domain "github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/infrastructure/cache"
	"github.com/memberhub/media-api/internal/infrastructure/database"
	"github.com/memberhub/media-api/internal/infrastructure/logger"
	"github.com/memberhub/media-api/internal/infrastructure/observability"
	eventsrepo "github.com/memberhub/media-api/internal/infrastructure/repository/events"
	mediarepo "github.com/memberhub/media-api/internal/infrastructure/repository/media"
	"github.com/memberhub/media-api/internal/infrastructure/storage"
	"github.com/memberhub/media-api/internal/infrastructure/thumbnail"
	"github.com/memberhub/media-api/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	var blobs domain.BlobStore
	if cfg.IsLocalStorage() {
		blobs, err = storage.NewLocalStorage(cfg, log)
	} else {
		blobs, err = storage.NewS3Storage(ctx, cfg, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	mediaCache := cache.New(cfg.CacheCapacityBytes, log)
	mediaRepository := mediarepo.NewRepository(db)
	eventRecorder := eventsrepo.NewRepository(db)
	thumbnailer := thumbnail.NewGenerator()

	mediaService := domain.NewService(cfg, mediaRepository, blobs, mediaCache, eventRecorder, thumbnailer, log)

	httpServer := httpserver.New(cfg, log, mediaService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
