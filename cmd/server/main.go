package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/machingclee/scriptdeck/internal/services"
	transporthttp "github.com/machingclee/scriptdeck/internal/transport/http"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	SpannerDB       string        `env:"SPANNER_DATABASE" envDefault:"projects/test-project/instances/dev-instance/databases/scriptdeck-db"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(logger zerolog.Logger) error {
	ctx := context.Background()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return err
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	logger.Info().
		Str("spanner_db", cfg.SpannerDB).
		Str("http_port", cfg.HTTPPort).
		Msg("starting scriptdeck server")

	opts, err := services.NewServiceOptions(ctx, cfg.SpannerDB, logger)
	if err != nil {
		return err
	}
	defer opts.Close()

	router := transporthttp.NewRouter(opts.CommandsHandler, opts.AuditHandler, opts.Notifications, opts.FlowHandler, logger)
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}
	return nil
}
