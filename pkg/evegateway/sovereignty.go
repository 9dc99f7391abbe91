package evegateway

import (
	"context"
	"log/slog"
	"time"
)

// SovereigntyCampaign represents one entry of the public sovereignty
// campaign feed.
type SovereigntyCampaign struct {
	CampaignID    int64     `json:"campaign_id"`
	EventType     string    `json:"event_type"`
	DefenderID    int64     `json:"defender_id"`
	SolarSystemID int64     `json:"solar_system_id"`
	StructureID   int64     `json:"structure_id"`
	StartTime     time.Time `json:"start_time"`
}

// GetSovereigntyCampaigns retrieves the current sovereignty campaign list.
func (c *Client) GetSovereigntyCampaigns(ctx context.Context) ([]SovereigntyCampaign, error) {
	slog.InfoContext(ctx, "Requesting sovereignty campaigns from ESI")

	var campaigns []SovereigntyCampaign
	if err := c.getJSON(ctx, "/v1/sovereignty/campaigns", &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}
