package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-timers/internal/timers/models"
	"go-timers/pkg/evegateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	campaigns     []evegateway.SovereigntyCampaign
	campaignsErr  error
	alliances     map[int64]string
	allianceErr   error
	allianceCalls int
}

func (f *fakeFeed) GetSovereigntyCampaigns(ctx context.Context) ([]evegateway.SovereigntyCampaign, error) {
	return f.campaigns, f.campaignsErr
}

func (f *fakeFeed) GetAllianceInfo(ctx context.Context, allianceID int64) (*evegateway.AllianceInfo, error) {
	f.allianceCalls++
	if f.allianceErr != nil {
		return nil, f.allianceErr
	}
	ticker, ok := f.alliances[allianceID]
	if !ok {
		return nil, errors.New("alliance not found")
	}
	return &evegateway.AllianceInfo{Ticker: ticker}, nil
}

type fakeResolver struct {
	systems map[int64][2]string
}

func (f *fakeResolver) ResolveByID(ctx context.Context, systemID int64) (string, string, error) {
	system, ok := f.systems[systemID]
	if !ok {
		return "", "", errors.New("system not found")
	}
	return system[0], system[1], nil
}

type fakeStandings struct {
	byTicker map[string]string
}

func (f *fakeStandings) StandingsByTicker(ctx context.Context) (map[string]string, error) {
	return f.byTicker, nil
}

// recordingWriter captures created timers and serves a canned listing for
// the dedup pass.
type recordingWriter struct {
	existing  []*models.Timer
	created   []CreateTimerParams
	createErr error
}

func (w *recordingWriter) CreateTimer(ctx context.Context, params CreateTimerParams) (*models.Timer, error) {
	if w.createErr != nil {
		return nil, w.createErr
	}
	w.created = append(w.created, params)
	return &models.Timer{}, nil
}

func (w *recordingWriter) ListTimers(ctx context.Context, onlyActive, includeSecret bool) ([]*models.Timer, error) {
	return w.existing, nil
}

func TestImportRun(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		campaigns: []evegateway.SovereigntyCampaign{
			{CampaignID: 1, EventType: "ihub_defense", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
			{CampaignID: 2, EventType: "nodes", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
			{CampaignID: 3, EventType: "tcu_defense", DefenderID: 200, SolarSystemID: 30000001, StartTime: start},
			{CampaignID: 4, EventType: "tcu_defense", DefenderID: 100, SolarSystemID: 30000002, StartTime: start},
		},
		alliances: map[int64]string{
			100: "GEWNS",
			200: "NOTUS",
		},
	}
	resolver := &fakeResolver{systems: map[int64][2]string{
		30000001: {"1DQ1-A", "Delve"},
	}}
	standings := &fakeStandings{byTicker: map[string]string{"GEWNS": models.StandingFriendly}}
	writer := &recordingWriter{}

	service := NewImportService(feed, resolver, standings, writer)
	require.NoError(t, service.Run(ctx))

	// Campaign 2 has an unmapped event type, 3 an untracked defender and 4
	// an unresolvable system; only campaign 1 lands.
	require.Len(t, writer.created, 1)
	created := writer.created[0]
	assert.Equal(t, int64(1), created.ESICampaignID)
	assert.Equal(t, "I_HUB", created.StructureType)
	assert.Equal(t, "1DQ1-A", created.SystemName)
	assert.Equal(t, "Delve", created.RegionName)
	assert.Equal(t, "GEWNS", created.AllianceTicker)
	assert.Equal(t, models.StandingFriendly, created.StandingType)
	assert.Equal(t, "AUTO", created.CorporationTicker)
	assert.Equal(t, "Unknown", created.TimerType)
	assert.Equal(t, "Not Applicable", created.Replace)
	assert.Equal(t, "ESI", created.AddedBy)
	assert.True(t, created.StartTime.Equal(start))
}

func TestImportRunDeduplicates(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		campaigns: []evegateway.SovereigntyCampaign{
			{CampaignID: 7, EventType: "ihub_defense", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
		},
		alliances: map[int64]string{100: "GEWNS"},
	}
	resolver := &fakeResolver{systems: map[int64][2]string{30000001: {"1DQ1-A", "Delve"}}}
	standings := &fakeStandings{byTicker: map[string]string{"GEWNS": models.StandingFriendly}}
	writer := &recordingWriter{
		existing: []*models.Timer{
			// Already imported on an earlier run; secrecy must not matter.
			{SK: "TIMER#2024-01-15T12:00:00Z#abcdef1234", StructureType: models.StructureTypeSecret, ESICampaignID: 7},
		},
	}

	service := NewImportService(feed, resolver, standings, writer)
	require.NoError(t, service.Run(ctx))
	assert.Empty(t, writer.created)
}

func TestImportRunMemoizesAllianceLookups(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		campaigns: []evegateway.SovereigntyCampaign{
			{CampaignID: 1, EventType: "ihub_defense", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
			{CampaignID: 2, EventType: "tcu_defense", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
		},
		alliances: map[int64]string{100: "GEWNS"},
	}
	resolver := &fakeResolver{systems: map[int64][2]string{30000001: {"1DQ1-A", "Delve"}}}
	standings := &fakeStandings{byTicker: map[string]string{"GEWNS": models.StandingFriendly}}
	writer := &recordingWriter{}

	service := NewImportService(feed, resolver, standings, writer)
	require.NoError(t, service.Run(ctx))

	assert.Len(t, writer.created, 2)
	assert.Equal(t, 1, feed.allianceCalls)
}

func TestImportRunSkipsFailedAllianceLookup(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		campaigns: []evegateway.SovereigntyCampaign{
			{CampaignID: 1, EventType: "ihub_defense", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
		},
		allianceErr: errors.New("esi timeout"),
	}
	resolver := &fakeResolver{systems: map[int64][2]string{30000001: {"1DQ1-A", "Delve"}}}
	standings := &fakeStandings{byTicker: map[string]string{"GEWNS": models.StandingFriendly}}
	writer := &recordingWriter{}

	service := NewImportService(feed, resolver, standings, writer)
	require.NoError(t, service.Run(ctx))
	assert.Empty(t, writer.created)
}

func TestImportRunAbortsOnFeedFailure(t *testing.T) {
	ctx := context.Background()

	feed := &fakeFeed{campaignsErr: errors.New("esi unavailable")}
	writer := &recordingWriter{}

	service := NewImportService(feed, &fakeResolver{}, &fakeStandings{}, writer)
	assert.Error(t, service.Run(ctx))
}

func TestImportRunContinuesPastInsertFailure(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	feed := &fakeFeed{
		campaigns: []evegateway.SovereigntyCampaign{
			{CampaignID: 1, EventType: "ihub_defense", DefenderID: 100, SolarSystemID: 30000001, StartTime: start},
		},
		alliances: map[int64]string{100: "GEWNS"},
	}
	resolver := &fakeResolver{systems: map[int64][2]string{30000001: {"1DQ1-A", "Delve"}}}
	standings := &fakeStandings{byTicker: map[string]string{"GEWNS": models.StandingFriendly}}
	writer := &recordingWriter{createErr: ErrTimerExists}

	service := NewImportService(feed, resolver, standings, writer)
	assert.NoError(t, service.Run(ctx))
}
