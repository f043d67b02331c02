package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/conorfennell/flashquote/internal/app"
	"github.com/conorfennell/flashquote/internal/config"
	"github.com/conorfennell/flashquote/internal/logger"
	"github.com/conorfennell/flashquote/internal/seed"
	"github.com/conorfennell/flashquote/internal/storage"
	"github.com/conorfennell/flashquote/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "flashquote: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// A missing .env is normal; only the environment and flags are required.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Log.Level, os.Stderr)
	log.Info("Configuration loaded",
		"addr", cfg.Server.Addr,
		"log_level", cfg.Log.Level,
		"deck_path", cfg.Deck.Path,
		"deck_repo", cfg.Deck.Repo,
		"journal", cfg.Journal.DSN != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cards, _, err := seed.Load(ctx, seed.Source{
		Path:     cfg.Deck.Path,
		Repo:     cfg.Deck.Repo,
		Checkout: cfg.Deck.Checkout,
	})
	if err != nil {
		return fmt.Errorf("failed to load seed deck: %w", err)
	}

	opts := []app.Option{app.WithLogger(log)}
	if cfg.Journal.DSN != "" {
		db, err := storage.Open(cfg.Journal.DSN)
		if err != nil {
			return fmt.Errorf("failed to open activity journal: %w", err)
		}
		defer db.Close()
		log.Info("Activity journal opened", "dsn", cfg.Journal.DSN)
		opts = append(opts, app.WithJournal(db))
	}

	session, err := app.New(cards, opts...)
	if err != nil {
		return err
	}

	handler, err := web.NewServer(session, log)
	if err != nil {
		return fmt.Errorf("failed to build web server: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}
