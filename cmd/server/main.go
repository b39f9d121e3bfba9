package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reloc/community-backend/internal/router"
	"github.com/reloc/community-backend/pkg/config"
	"github.com/reloc/community-backend/pkg/firebase"
	"github.com/reloc/community-backend/pkg/logger"
	"github.com/reloc/community-backend/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("development")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.Close()

	deps := router.Dependencies{Config: cfg, DB: db, Logger: log}
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Firebase")
	}
	if firebaseApp != nil {
		deps.Auth = firebaseApp.AuthClient
		log.Info().Msg("Firebase auth client initialized")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	router.SetupMiddleware(e, log)

	queue, err := router.SetupRoutes(e, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup
	if queue != nil {
		workers.Add(1)
		go func() {
			defer workers.Done()
			queue.Run(workersCtx, cfg.FanoutWorkers)
		}()
		log.Info().Int("workers", cfg.FanoutWorkers).Int("queue_size", cfg.FanoutQueueSize).Msg("fan-out workers started")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	stopWorkers()
	workers.Wait()
}
