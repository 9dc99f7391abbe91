package evegateway

import (
	"context"
	"fmt"
)

// RegionInfo represents a universe region and its constellations.
type RegionInfo struct {
	RegionID       int64   `json:"region_id"`
	Name           string  `json:"name"`
	Constellations []int64 `json:"constellations"`
}

// ConstellationInfo represents a constellation and its solar systems.
type ConstellationInfo struct {
	ConstellationID int64   `json:"constellation_id"`
	Name            string  `json:"name"`
	Systems         []int64 `json:"systems"`
}

// UniverseName is one entry of the bulk id-to-name resolution endpoint.
type UniverseName struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// GetRegions retrieves the ids of all universe regions.
func (c *Client) GetRegions(ctx context.Context) ([]int64, error) {
	var regions []int64
	if err := c.getJSON(ctx, "/v1/universe/regions", &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// GetRegionInfo retrieves a region with its constellation ids.
func (c *Client) GetRegionInfo(ctx context.Context, regionID int64) (*RegionInfo, error) {
	var info RegionInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/universe/regions/%d", regionID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetConstellationInfo retrieves a constellation with its system ids.
func (c *Client) GetConstellationInfo(ctx context.Context, constellationID int64) (*ConstellationInfo, error) {
	var info ConstellationInfo
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/universe/constellations/%d", constellationID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ResolveNames resolves up to 1000 ids to names via the bulk endpoint.
func (c *Client) ResolveNames(ctx context.Context, ids []int64) ([]UniverseName, error) {
	var names []UniverseName
	if err := c.postJSON(ctx, "/v3/universe/names", ids, &names); err != nil {
		return nil, err
	}
	return names, nil
}
