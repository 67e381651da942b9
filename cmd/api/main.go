package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget/store"
	"github.com/MrJamesThe3rd/pocketplan/internal/config"
	"github.com/MrJamesThe3rd/pocketplan/internal/export"
	pocketplanHttp "github.com/MrJamesThe3rd/pocketplan/internal/http"
	authHandler "github.com/MrJamesThe3rd/pocketplan/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/pocketplan/internal/http/budget"
	exportHandler "github.com/MrJamesThe3rd/pocketplan/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/pocketplan/internal/http/importcsv"
	projectionHandler "github.com/MrJamesThe3rd/pocketplan/internal/http/projection"
	"github.com/MrJamesThe3rd/pocketplan/internal/importer"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	budgetStore, closer, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	defer closer.Close()

	secret, err := tokenSecret(cfg.Auth.TokenSecret)
	if err != nil {
		return err
	}

	var (
		tokens        = auth.NewTokens(secret, cfg.Auth.TokenTTL)
		creds         = auth.Credentials{Login: cfg.Auth.Login, Password: cfg.Auth.Password}
		budgetService = budget.NewService(budgetStore, loc, cfg.Series.MaxDays)
		importService = importer.NewService(loc)
		exportService = export.NewService(budgetService)
	)

	router := pocketplanHttp.New(pocketplanHttp.Handlers{
		Auth:       authHandler.NewHandler(creds, tokens),
		Budget:     budgetHandler.NewHandler(budgetService),
		Projection: projectionHandler.NewHandler(budgetService),
		Import:     importHandler.NewHandler(importService, budgetService),
		Export:     exportHandler.NewHandler(exportService, loc),
	}, tokens, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "store", cfg.Store.Backend, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// tokenSecret falls back to a random per-process key, which logs everyone out on restart.
func tokenSecret(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating token secret: %w", err)
	}

	slog.Warn("AUTH_TOKEN_SECRET not set, using a random secret")

	return secret, nil
}
