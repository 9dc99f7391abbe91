package evegateway

import (
	"context"
	"fmt"
)

// AllianceInfo represents alliance public information.
type AllianceInfo struct {
	Name                 string `json:"name"`
	Ticker               string `json:"ticker"`
	CreatorCorporationID int64  `json:"creator_corporation_id"`
	CreatorID            int64  `json:"creator_id"`
}

// GetAllianceInfo retrieves public information about an alliance.
func (c *Client) GetAllianceInfo(ctx context.Context, allianceID int64) (*AllianceInfo, error) {
	var info AllianceInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/v4/alliances/%d", allianceID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}
