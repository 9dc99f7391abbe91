package services

import (
	"context"

	"go-timers/internal/standings/models"
	"go-timers/pkg/keys"
)

// StandingStore is the store surface the service needs. *Repository is the
// production implementation.
type StandingStore interface {
	Upsert(ctx context.Context, standing *models.Standing) error
	Scan(ctx context.Context) ([]*models.Standing, error)
	Delete(ctx context.Context, sortKey string) error
}

// Service implements standing CRUD and the ticker → standing mapping the
// importer consumes.
type Service struct {
	store StandingStore
}

func NewService(store StandingStore) *Service {
	return &Service{store: store}
}

// SetStanding creates or replaces the standing record for an alliance.
func (s *Service) SetStanding(ctx context.Context, ticker, standingType, notes string) (*models.Standing, error) {
	standing := &models.Standing{
		PK:           keys.PartitionStanding,
		SK:           keys.StandingKey(ticker),
		Ticker:       ticker,
		StandingType: standingType,
		Notes:        notes,
	}

	if err := s.store.Upsert(ctx, standing); err != nil {
		return nil, err
	}
	return standing, nil
}

// ListStandings returns all standings with the ticker re-derived from the
// sort key. Records whose key does not carry the alliance prefix are
// filtered out silently.
func (s *Service) ListStandings(ctx context.Context) ([]*models.Standing, error) {
	records, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]*models.Standing, 0, len(records))
	for _, standing := range records {
		ticker, ok := keys.TickerFromStandingKey(standing.SK)
		if !ok {
			continue
		}
		standing.Ticker = ticker
		standings = append(standings, standing)
	}

	return standings, nil
}

// DeleteStanding removes the standing for an alliance ticker, idempotently.
func (s *Service) DeleteStanding(ctx context.Context, ticker string) error {
	return s.store.Delete(ctx, keys.StandingKey(ticker))
}

// StandingsByTicker returns the tracked ticker → standing type mapping.
func (s *Service) StandingsByTicker(ctx context.Context) (map[string]string, error) {
	standings, err := s.ListStandings(ctx)
	if err != nil {
		return nil, err
	}

	byTicker := make(map[string]string, len(standings))
	for _, standing := range standings {
		byTicker[standing.Ticker] = standing.StandingType
	}
	return byTicker, nil
}
