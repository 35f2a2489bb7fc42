package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/supfront/commerce-system/internal/api"
	"github.com/supfront/commerce-system/internal/infrastructure/config"
	mongodb "github.com/supfront/commerce-system/internal/infrastructure/db/mongo"
	redisdb "github.com/supfront/commerce-system/internal/infrastructure/db/redis"
	"github.com/supfront/commerce-system/internal/store"
	"github.com/supfront/commerce-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Commerce System API
// @version         1.0
// @description     Storefront cart, checkout, and onboarding service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Partition store ---
	blobs := redisdb.NewPartitionStore(rdb)
	queue := store.NewPersistQueue(0, blobs, log)
	st := store.New(queue, log)
	st.Rehydrate(ctx, blobs)
	queue.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(cfg, db, rdb, st)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
