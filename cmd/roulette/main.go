package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/randomtoy/roulette/internal/adapters/csvfiles"
	httpadapter "github.com/randomtoy/roulette/internal/adapters/http"
	"github.com/randomtoy/roulette/internal/app"
	"github.com/randomtoy/roulette/internal/config"
	"github.com/randomtoy/roulette/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var source ports.CatalogSource = csvfiles.NewLoader(cfg.CatalogDir, logger)
	catalog, err := source.Load(ctx)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	svc := app.NewRouletteService(catalog, stdRNG{}, cfg.SpinTick, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware(logger))
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, logger)
	handler.Register(e)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "categories", catalog.Len())
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
