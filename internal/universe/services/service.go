package services

import (
	"context"
	"errors"

	"go-timers/internal/universe/models"
	"go-timers/pkg/keys"
)

// ErrSystemNotFound is returned when a lookup does not match exactly one
// system. Zero matches and duplicates are both failures: duplicates in
// reference data are never silently resolved.
var ErrSystemNotFound = errors.New("system not found")

// SystemStore is the store surface the service needs. *Repository is the
// production implementation.
type SystemStore interface {
	FindByKey(ctx context.Context, sortKey string) ([]*models.System, error)
	FindBySecondaryKey(ctx context.Context, indexKey string) ([]*models.System, error)
	BulkUpsert(ctx context.Context, systems []*models.System) error
}

// Service resolves solar system names and ids to regions.
type Service struct {
	store SystemStore
}

func NewService(store SystemStore) *Service {
	return &Service{store: store}
}

// ResolveByName resolves a system name to its region name.
func (s *Service) ResolveByName(ctx context.Context, name string) (string, error) {
	systems, err := s.store.FindByKey(ctx, keys.SystemNameKey(name))
	if err != nil {
		return "", err
	}
	if len(systems) != 1 {
		return "", ErrSystemNotFound
	}

	return systems[0].RegionName, nil
}

// ResolveByID resolves an external system id to the system name and region
// name via the secondary index.
func (s *Service) ResolveByID(ctx context.Context, systemID int64) (string, string, error) {
	systems, err := s.store.FindBySecondaryKey(ctx, keys.SystemIDKey(systemID))
	if err != nil {
		return "", "", err
	}
	if len(systems) != 1 {
		return "", "", ErrSystemNotFound
	}

	name, ok := keys.NameFromSystemKey(systems[0].SK)
	if !ok {
		return "", "", ErrSystemNotFound
	}

	return name, systems[0].RegionName, nil
}
