package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutritrack/foodlog-api/internal/api"
	"github.com/nutritrack/foodlog-api/internal/infrastructure/classifier"
	mongodb "github.com/nutritrack/foodlog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nutritrack/foodlog-api/internal/infrastructure/db/redis"
	"github.com/nutritrack/foodlog-api/internal/infrastructure/storage"
	"github.com/nutritrack/foodlog-api/internal/pkg/config"
	"github.com/nutritrack/foodlog-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}
	logRepo := mongodb.NewFoodLogRepository(db)
	if err := logRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure food log indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Image storage ---
	images, err := storage.NewS3Storage(ctx, storage.S3Config{
		Bucket:        cfg.S3.Bucket,
		Region:        cfg.S3.Region,
		PublicBaseURL: cfg.S3.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("image storage init failed")
	}

	// --- Inference gateway (classifier loaded once, shared by the pool) ---
	backend, err := classifier.NewRekognitionClassifier(ctx, cfg.Classifier.Region, float32(cfg.Classifier.MinConfidence))
	if err != nil {
		log.Fatal().Err(err).Msg("classifier init failed")
	}
	gateway := classifier.NewGateway(
		backend,
		cfg.Classifier.Workers,
		cfg.Classifier.QueueDepth,
		cfg.Classifier.Timeout,
		log,
	)
	gateway.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, images, gateway, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
