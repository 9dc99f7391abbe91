package services

import (
	"context"
	"fmt"
	"log/slog"

	"go-timers/internal/timers/models"
	"go-timers/pkg/evegateway"
)

// eventTypeMap maps sovereignty campaign event types to structure type
// codes. Campaigns with other event types are not imported.
var eventTypeMap = map[string]string{
	"station_defense": "STATION",
	"ihub_defense":    "I_HUB",
	"tcu_defense":     "TCU",
}

// CampaignFeed is the slice of the ESI gateway the importer consumes.
type CampaignFeed interface {
	GetSovereigntyCampaigns(ctx context.Context) ([]evegateway.SovereigntyCampaign, error)
	GetAllianceInfo(ctx context.Context, allianceID int64) (*evegateway.AllianceInfo, error)
}

// SystemResolver resolves a solar system id to its name and region.
type SystemResolver interface {
	ResolveByID(ctx context.Context, systemID int64) (name, regionName string, err error)
}

// StandingsProvider supplies the tracked alliance ticker → standing map.
type StandingsProvider interface {
	StandingsByTicker(ctx context.Context) (map[string]string, error)
}

// TimerWriter is the slice of the timer service the importer uses.
type TimerWriter interface {
	CreateTimer(ctx context.Context, params CreateTimerParams) (*models.Timer, error)
	ListTimers(ctx context.Context, onlyActive, includeSecret bool) ([]*models.Timer, error)
}

// ImportService reconciles the sovereignty campaign feed into timers.
// Each run is idempotent: campaigns already represented among non-expired
// timers are never inserted twice.
type ImportService struct {
	feed      CampaignFeed
	systems   SystemResolver
	standings StandingsProvider
	timers    TimerWriter
}

func NewImportService(feed CampaignFeed, systems SystemResolver, standings StandingsProvider, timers TimerWriter) *ImportService {
	return &ImportService{
		feed:      feed,
		systems:   systems,
		standings: standings,
		timers:    timers,
	}
}

// Run performs one reconciliation pass. A failure to fetch the feed or the
// reference data aborts the run; any per-campaign failure is logged and
// that campaign alone is skipped.
func (s *ImportService) Run(ctx context.Context) error {
	campaigns, err := s.feed.GetSovereigntyCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch sovereignty campaigns: %w", err)
	}

	existing, err := s.existingCampaignIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect existing campaign ids: %w", err)
	}

	standings, err := s.standings.StandingsByTicker(ctx)
	if err != nil {
		return fmt.Errorf("failed to load standings: %w", err)
	}

	// Memoize alliance lookups per run; campaigns often share a defender.
	tickerCache := make(map[int64]string)

	imported := 0
	for _, campaign := range campaigns {
		if _, seen := existing[campaign.CampaignID]; seen {
			continue
		}

		structureType, known := eventTypeMap[campaign.EventType]
		if !known {
			continue
		}

		ticker, cached := tickerCache[campaign.DefenderID]
		if !cached {
			info, err := s.feed.GetAllianceInfo(ctx, campaign.DefenderID)
			if err != nil {
				slog.WarnContext(ctx, "Failed to resolve defending alliance, skipping campaign",
					"campaign_id", campaign.CampaignID,
					"defender_id", campaign.DefenderID,
					"error", err,
				)
				continue
			}
			ticker = info.Ticker
			tickerCache[campaign.DefenderID] = ticker
		}
		if ticker == "" {
			continue
		}

		standing, tracked := standings[ticker]
		if !tracked {
			continue
		}

		systemName, regionName, err := s.systems.ResolveByID(ctx, campaign.SolarSystemID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to resolve solar system, skipping campaign",
				"campaign_id", campaign.CampaignID,
				"solar_system_id", campaign.SolarSystemID,
				"error", err,
			)
			continue
		}

		_, err = s.timers.CreateTimer(ctx, CreateTimerParams{
			StartTime:         campaign.StartTime.UTC(),
			SystemName:        systemName,
			RegionName:        regionName,
			CorporationTicker: "AUTO",
			AllianceTicker:    ticker,
			StandingType:      standing,
			StructureType:     structureType,
			TimerType:         "Unknown",
			Replace:           "Not Applicable",
			Notes:             "",
			AddedBy:           "ESI",
			ESICampaignID:     campaign.CampaignID,
		})
		if err != nil {
			slog.WarnContext(ctx, "Failed to insert imported timer, skipping campaign",
				"campaign_id", campaign.CampaignID,
				"error", err,
			)
			continue
		}

		imported++
	}

	slog.InfoContext(ctx, "Campaign import finished",
		"campaigns", len(campaigns),
		"imported", imported,
	)
	return nil
}

// existingCampaignIDs collects campaign ids over every non-expired timer,
// secret and past ones included: dedup must not depend on visibility.
func (s *ImportService) existingCampaignIDs(ctx context.Context) (map[int64]struct{}, error) {
	timers, err := s.timers.ListTimers(ctx, false, true)
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]struct{})
	for _, timer := range timers {
		if timer.ESICampaignID != 0 {
			ids[timer.ESICampaignID] = struct{}{}
		}
	}
	return ids, nil
}
