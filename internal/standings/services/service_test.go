package services

import (
	"context"
	"testing"

	"go-timers/internal/standings/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	standings map[string]*models.Standing
}

func newFakeStore() *fakeStore {
	return &fakeStore{standings: make(map[string]*models.Standing)}
}

func (f *fakeStore) Upsert(ctx context.Context, standing *models.Standing) error {
	copied := *standing
	f.standings[standing.SK] = &copied
	return nil
}

func (f *fakeStore) Scan(ctx context.Context) ([]*models.Standing, error) {
	var out []*models.Standing
	for _, standing := range f.standings {
		copied := *standing
		copied.Ticker = ""
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) Delete(ctx context.Context, sortKey string) error {
	delete(f.standings, sortKey)
	return nil
}

func TestSetStandingUpserts(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	service := NewService(store)

	first, err := service.SetStanding(ctx, "GEWNS", "Friendly", "blue")
	require.NoError(t, err)
	assert.Equal(t, "STANDING", first.PK)
	assert.Equal(t, "ALLIANCE#GEWNS", first.SK)

	// Setting the same ticker again replaces, never duplicates.
	_, err = service.SetStanding(ctx, "GEWNS", "Hostile", "reset")
	require.NoError(t, err)

	standings, err := service.ListStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "GEWNS", standings[0].Ticker)
	assert.Equal(t, "Hostile", standings[0].StandingType)
	assert.Equal(t, "reset", standings[0].Notes)
}

func TestListStandingsFiltersBadKeys(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	service := NewService(store)

	_, err := service.SetStanding(ctx, "GEWNS", "Friendly", "")
	require.NoError(t, err)
	store.standings["BOGUS#KEY"] = &models.Standing{PK: "STANDING", SK: "BOGUS#KEY"}

	standings, err := service.ListStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "GEWNS", standings[0].Ticker)
}

func TestDeleteStanding(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	service := NewService(store)

	_, err := service.SetStanding(ctx, "GEWNS", "Friendly", "")
	require.NoError(t, err)

	require.NoError(t, service.DeleteStanding(ctx, "GEWNS"))
	standings, err := service.ListStandings(ctx)
	require.NoError(t, err)
	assert.Empty(t, standings)

	// Deleting an absent ticker succeeds.
	assert.NoError(t, service.DeleteStanding(ctx, "GEWNS"))
}

func TestStandingsByTicker(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	service := NewService(store)

	_, err := service.SetStanding(ctx, "GEWNS", "Friendly", "")
	require.NoError(t, err)
	_, err = service.SetStanding(ctx, "HORDE", "It's complicated", "")
	require.NoError(t, err)

	byTicker, err := service.StandingsByTicker(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"GEWNS": "Friendly",
		"HORDE": "It's complicated",
	}, byTicker)
}
