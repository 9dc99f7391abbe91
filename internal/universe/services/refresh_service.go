package services

import (
	"context"
	"fmt"
	"log/slog"

	"go-timers/internal/universe/models"
	"go-timers/pkg/evegateway"
	"go-timers/pkg/keys"
)

// namesBatchSize is the id limit of the bulk name resolution endpoint.
const namesBatchSize = 1000

// UniverseFeed is the slice of the ESI gateway the refresh consumes.
type UniverseFeed interface {
	GetRegions(ctx context.Context) ([]int64, error)
	GetRegionInfo(ctx context.Context, regionID int64) (*evegateway.RegionInfo, error)
	GetConstellationInfo(ctx context.Context, constellationID int64) (*evegateway.ConstellationInfo, error)
	ResolveNames(ctx context.Context, ids []int64) ([]evegateway.UniverseName, error)
}

// RefreshService rebuilds the system reference data from the universe
// endpoints. Outside of new regions being added to the game this data
// never changes, so the job runs rarely.
type RefreshService struct {
	store SystemStore
	feed  UniverseFeed
}

func NewRefreshService(store SystemStore, feed UniverseFeed) *RefreshService {
	return &RefreshService{
		store: store,
		feed:  feed,
	}
}

// Run walks regions, constellations and systems, resolves system names in
// bulk and upserts the reference records. A failed region or batch is
// logged and skipped; the rest of the refresh continues.
func (s *RefreshService) Run(ctx context.Context) error {
	regionIDs, err := s.feed.GetRegions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch region list: %w", err)
	}

	// system id → region name
	regionBySystem := make(map[int64]string)

	for _, regionID := range regionIDs {
		region, err := s.feed.GetRegionInfo(ctx, regionID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to fetch region, skipping", "region_id", regionID, "error", err)
			continue
		}

		for _, constellationID := range region.Constellations {
			constellation, err := s.feed.GetConstellationInfo(ctx, constellationID)
			if err != nil {
				slog.WarnContext(ctx, "Failed to fetch constellation, skipping",
					"constellation_id", constellationID, "error", err)
				continue
			}

			for _, systemID := range constellation.Systems {
				regionBySystem[systemID] = region.Name
			}
		}
	}

	systemIDs := make([]int64, 0, len(regionBySystem))
	for systemID := range regionBySystem {
		systemIDs = append(systemIDs, systemID)
	}

	upserted := 0
	for start := 0; start < len(systemIDs); start += namesBatchSize {
		end := min(start+namesBatchSize, len(systemIDs))

		names, err := s.feed.ResolveNames(ctx, systemIDs[start:end])
		if err != nil {
			slog.WarnContext(ctx, "Failed to resolve system names, skipping batch", "error", err)
			continue
		}

		batch := make([]*models.System, 0, len(names))
		for _, name := range names {
			regionName, ok := regionBySystem[name.ID]
			if !ok {
				continue
			}

			batch = append(batch, &models.System{
				PK:         keys.PartitionSystem,
				SK:         keys.SystemNameKey(name.Name),
				GSI1PK:     keys.SystemIDKey(name.ID),
				Name:       name.Name,
				RegionName: regionName,
			})
		}

		if err := s.store.BulkUpsert(ctx, batch); err != nil {
			slog.WarnContext(ctx, "Failed to upsert system batch, skipping", "error", err)
			continue
		}
		upserted += len(batch)
	}

	slog.InfoContext(ctx, "Universe refresh finished",
		"systems", len(systemIDs),
		"upserted", upserted,
	)
	return nil
}
