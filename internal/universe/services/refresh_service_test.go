package services

import (
	"context"
	"errors"
	"testing"

	"go-timers/pkg/evegateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	regions        []int64
	regionInfo     map[int64]*evegateway.RegionInfo
	constellations map[int64]*evegateway.ConstellationInfo
	names          map[int64]string
	regionErr      map[int64]error
}

func (f *fakeFeed) GetRegions(ctx context.Context) ([]int64, error) {
	return f.regions, nil
}

func (f *fakeFeed) GetRegionInfo(ctx context.Context, regionID int64) (*evegateway.RegionInfo, error) {
	if err := f.regionErr[regionID]; err != nil {
		return nil, err
	}
	return f.regionInfo[regionID], nil
}

func (f *fakeFeed) GetConstellationInfo(ctx context.Context, constellationID int64) (*evegateway.ConstellationInfo, error) {
	return f.constellations[constellationID], nil
}

func (f *fakeFeed) ResolveNames(ctx context.Context, ids []int64) ([]evegateway.UniverseName, error) {
	var out []evegateway.UniverseName
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out = append(out, evegateway.UniverseName{ID: id, Name: name})
		}
	}
	return out, nil
}

func TestRefreshRun(t *testing.T) {
	ctx := context.Background()

	feed := &fakeFeed{
		regions: []int64{10000001, 10000002},
		regionInfo: map[int64]*evegateway.RegionInfo{
			10000001: {Name: "Delve", Constellations: []int64{20000001}},
			10000002: {Name: "The Forge", Constellations: []int64{20000002}},
		},
		constellations: map[int64]*evegateway.ConstellationInfo{
			20000001: {Systems: []int64{30000001}},
			20000002: {Systems: []int64{30000142}},
		},
		names: map[int64]string{
			30000001: "1DQ1-A",
			30000142: "Jita",
		},
	}
	store := newFakeStore()
	service := NewRefreshService(store, feed)

	require.NoError(t, service.Run(ctx))
	require.Len(t, store.upserted, 2)

	byName := make(map[string]string)
	for _, system := range store.upserted {
		byName[system.Name] = system.RegionName
	}
	assert.Equal(t, map[string]string{
		"1DQ1-A": "Delve",
		"Jita":   "The Forge",
	}, byName)
}

func TestRefreshRunSkipsFailedRegion(t *testing.T) {
	ctx := context.Background()

	feed := &fakeFeed{
		regions: []int64{10000001, 10000002},
		regionInfo: map[int64]*evegateway.RegionInfo{
			10000002: {Name: "The Forge", Constellations: []int64{20000002}},
		},
		constellations: map[int64]*evegateway.ConstellationInfo{
			20000002: {Systems: []int64{30000142}},
		},
		names:     map[int64]string{30000142: "Jita"},
		regionErr: map[int64]error{10000001: errors.New("esi timeout")},
	}
	store := newFakeStore()
	service := NewRefreshService(store, feed)

	require.NoError(t, service.Run(ctx))
	require.Len(t, store.upserted, 1)
	assert.Equal(t, "Jita", store.upserted[0].Name)
}
