package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wordspy/internal/config"
	"wordspy/internal/game"
	httpTransport "wordspy/internal/transport/http"
	"wordspy/internal/words"
)

func main() {
	cmd := &cobra.Command{
		Use:           "wordspy",
		Short:         "Session server for the word-imposter party game.",
		Args:          cobra.ExactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	config.RegisterFlags(cmd.Flags())
	cobra.CheckErr(cmd.Execute())
}

func run(cfg *config.Config) error {
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting wordspy server",
		"addr", cfg.Addr(),
		"difficulty", cfg.Game.Difficulty,
	)

	settings := game.Settings{
		ClueDuration:       cfg.Game.ClueDuration,
		VotingDuration:     cfg.Game.VotingDuration,
		DisconnectGrace:    cfg.Game.DisconnectGrace,
		SessionIdleTimeout: cfg.Game.SessionIdleTimeout,
		Difficulty:         cfg.Difficulty(),
	}

	registry := game.NewRegistry(settings, words.NewDirSource(cfg.Words.Dir), logger)
	defer registry.Close()

	server := httpTransport.NewServer(cfg, registry, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
