package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"tareas/internal/config"
	"tareas/internal/server"
	"tareas/internal/service"
	"tareas/internal/storage/sqlite"
)

func main() {
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to read config")
		os.Exit(1)
	}
	logger = loggerForEnv(logger, cfg.Env)

	store, err := sqlite.Open(cfg.DB.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.DB.Path).Msg("unable to open database")
		os.Exit(1)
	}
	defer store.Close()
	logger.Info().Str("path", cfg.DB.Path).Msg("opened database")

	srv := server.New(service.New(store), logger)

	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}

	logger.Info().Msg("server stopped")
}

func loggerForEnv(logger zerolog.Logger, env string) zerolog.Logger {
	switch env {
	case config.EnvProd:
		return logger.Level(zerolog.InfoLevel)
	case config.EnvDev:
		return logger.Level(zerolog.DebugLevel)
	case config.EnvLocal:
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		return logger.Output(consoleWriter).Level(zerolog.TraceLevel)
	}
	return logger.Level(zerolog.InfoLevel)
}
