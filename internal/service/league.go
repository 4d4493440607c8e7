package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/repository"
)

// LeagueService serves the public reference reads: divisions and events.
type LeagueService struct {
	pool      *pgxpool.Pool
	divisions repository.DivisionRepository
	events    repository.EventRepository
}

// NewLeagueService creates a LeagueService.
func NewLeagueService(pool *pgxpool.Pool, divisions repository.DivisionRepository, events repository.EventRepository) *LeagueService {
	return &LeagueService{pool: pool, divisions: divisions, events: events}
}

// ListDivisions returns all weight divisions.
func (s *LeagueService) ListDivisions(ctx context.Context) ([]domain.Division, error) {
	divisions, err := s.divisions.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list divisions", err)
	}
	return divisions, nil
}

// ListEvents returns events, optionally filtered by status.
func (s *LeagueService) ListEvents(ctx context.Context, status string) ([]domain.Event, error) {
	if status != "" {
		switch status {
		case domain.EventUpcoming, domain.EventCompleted, domain.EventLive:
		default:
			return nil, domain.ErrValidation("unknown event status")
		}
	}
	events, err := s.events.List(ctx, s.pool, status)
	if err != nil {
		return nil, domain.ErrInternal("list events", err)
	}
	return events, nil
}
