package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/roulette/internal/domain"
)

// DrawResponse is the application-level output of an instant draw.
type DrawResponse struct {
	Category string
	Value    string
}

// RouletteService serves draws and spin sessions over a read-only catalog.
type RouletteService struct {
	catalog      domain.Catalog
	rng          domain.RNG
	tickInterval time.Duration
	logger       *slog.Logger
}

func NewRouletteService(catalog domain.Catalog, rng domain.RNG, tickInterval time.Duration, logger *slog.Logger) *RouletteService {
	if tickInterval <= 0 {
		tickInterval = domain.TickInterval
	}
	return &RouletteService{
		catalog:      catalog,
		rng:          rng,
		tickInterval: tickInterval,
		logger:       logger,
	}
}

// Categories returns the sorted category names.
func (s *RouletteService) Categories() []string {
	return s.catalog.Categories()
}

// Draw picks one value from category with no animation.
func (s *RouletteService) Draw(_ context.Context, category string) (DrawResponse, error) {
	if category == "" {
		return DrawResponse{}, domain.ErrNoCategory
	}
	if !s.catalog.Has(category) {
		return DrawResponse{}, domain.ErrCategoryNotFound
	}
	value, err := domain.Draw(s.catalog.Values(category), s.rng)
	if err != nil {
		return DrawResponse{}, err
	}
	return DrawResponse{Category: category, Value: value}, nil
}

// NewSession starts an animated spin session. emit receives every changed
// view, in order, until the session is closed.
func (s *RouletteService) NewSession(ctx context.Context, emit func(domain.View)) *Session {
	id := uuid.NewString()
	return newSession(ctx, id, domain.NewSpinner(s.catalog, s.rng), s.tickInterval, emit,
		s.logger.With("session_id", id))
}
