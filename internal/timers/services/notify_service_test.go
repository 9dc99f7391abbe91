package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-timers/internal/timers/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarker struct {
	timers  []*models.Timer
	listErr error
	markErr error
	marked  []string
}

func (f *fakeMarker) ListTimers(ctx context.Context, onlyActive, includeSecret bool) ([]*models.Timer, error) {
	return f.timers, f.listErr
}

func (f *fakeMarker) MarkNotified(ctx context.Context, sortKey, field string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, sortKey+"/"+field)
	return nil
}

type fakeSender struct {
	sent    []string
	sendErr error
}

func (f *fakeSender) SendMessage(ctx context.Context, content string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, content)
	return nil
}

func newTestNotifyService(marker *fakeMarker, sender *fakeSender, now time.Time) *NotifyService {
	service := NewNotifyService(marker, sender)
	service.now = func() time.Time { return now }
	return service
}

func secretTimer(sk string, start time.Time) *models.Timer {
	return &models.Timer{
		PK:            "TIMER",
		SK:            sk,
		StartTime:     start,
		SystemName:    "1DQ1-A",
		StandingType:  models.StandingFriendly,
		StructureType: models.StructureTypeSecret,
	}
}

func TestNotifyRun(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)

	farOut := secretTimer("TIMER#a", now.Add(3*time.Hour))
	within1H := secretTimer("TIMER#b", now.Add(45*time.Minute))
	within5M := secretTimer("TIMER#c", now.Add(2*time.Minute))
	public := &models.Timer{
		PK: "TIMER", SK: "TIMER#d",
		StartTime:     now.Add(1 * time.Minute),
		StructureType: "KEEPSTAR",
	}

	marker := &fakeMarker{timers: []*models.Timer{farOut, within1H, within5M, public}}
	sender := &fakeSender{}
	service := newTestNotifyService(marker, sender, now)

	require.NoError(t, service.Run(ctx))

	// within1H fires the hour threshold; within5M is close enough to fire
	// both in the same pass. The public timer never notifies.
	assert.Len(t, sender.sent, 3)
	assert.ElementsMatch(t, []string{
		"TIMER#b/" + models.NotifiedField1H,
		"TIMER#c/" + models.NotifiedField1H,
		"TIMER#c/" + models.NotifiedField5M,
	}, marker.marked)
}

func TestNotifyRunSkipsAlreadyNotified(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)

	timer := secretTimer("TIMER#a", now.Add(30*time.Minute))
	timer.Notified1H = true

	marker := &fakeMarker{timers: []*models.Timer{timer}}
	sender := &fakeSender{}
	service := newTestNotifyService(marker, sender, now)

	require.NoError(t, service.Run(ctx))
	assert.Empty(t, sender.sent)
	assert.Empty(t, marker.marked)
}

func TestNotifyRunMessageContent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	withNotes := secretTimer("TIMER#a", start)
	withNotes.Notes = "bring dps"

	marker := &fakeMarker{timers: []*models.Timer{withNotes}}
	sender := &fakeSender{}
	service := newTestNotifyService(marker, sender, now)

	require.NoError(t, service.Run(ctx))
	require.Len(t, sender.sent, 1)
	assert.Equal(t,
		fmt.Sprintf("@here Friendly Skyhook timer in 1DQ1-A at %s expires within 1 hour (notes: bring dps)",
			start.Format(time.RFC3339)),
		sender.sent[0],
	)
}

func TestNotifyRunEmptyNotesRenderedAsNone(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)

	marker := &fakeMarker{timers: []*models.Timer{secretTimer("TIMER#a", now.Add(30*time.Minute))}}
	sender := &fakeSender{}
	service := newTestNotifyService(marker, sender, now)

	require.NoError(t, service.Run(ctx))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "(notes: None)")
}

func TestNotifyRunFailedSendLeavesFlagUnset(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)

	marker := &fakeMarker{timers: []*models.Timer{secretTimer("TIMER#a", now.Add(30*time.Minute))}}
	sender := &fakeSender{sendErr: errors.New("webhook down")}
	service := newTestNotifyService(marker, sender, now)

	// The run still succeeds; the flag stays unset so the next run retries.
	require.NoError(t, service.Run(ctx))
	assert.Empty(t, marker.marked)
}

func TestNotifyRunToleratesDeletedTimer(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 11, 30, 0, 0, time.UTC)

	marker := &fakeMarker{
		timers:  []*models.Timer{secretTimer("TIMER#a", now.Add(30*time.Minute))},
		markErr: ErrTimerNotFound,
	}
	sender := &fakeSender{}
	service := newTestNotifyService(marker, sender, now)

	require.NoError(t, service.Run(ctx))
	assert.Len(t, sender.sent, 1)
}
