package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/clientdesk/clientdesk-backend/config"
	"github.com/clientdesk/clientdesk-backend/internal/bootstrap"
	"github.com/clientdesk/clientdesk-backend/internal/logging"
	userrepo "github.com/clientdesk/clientdesk-backend/internal/users/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Setup(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Redis backs the token store and is optional for the other auth modes.
	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		if cfg.Auth.Mode == config.AuthModeToken {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Warn().Err(err).Msg("redis unavailable, continuing without it")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	authenticator, revoker, err := bootstrap.NewAuthenticator(ctx, &cfg.Auth, userrepo.NewUserRepository(db), rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize authentication")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "clientdesk-backend",
		Version:        cfg.App.Version,
		DB:             db,
		Redis:          rdb,
		Authenticator:  authenticator,
		Revoker:        revoker,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("auth_mode", cfg.Auth.Mode).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
