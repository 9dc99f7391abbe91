package services

import (
	"context"
	"time"

	"go-timers/internal/timers/models"
	"go-timers/pkg/keys"
)

// activeGrace is how long past its start time a timer still counts as
// active in filtered listings.
const activeGrace = time.Hour

// timerExpiry is how long after its start time a timer is kept before the
// store's TTL sweeper removes it.
const timerExpiry = 24 * time.Hour

// TimerStore is the store surface the service needs. *Repository is the
// production implementation.
type TimerStore interface {
	Insert(ctx context.Context, timer *models.Timer) error
	Scan(ctx context.Context) ([]*models.Timer, error)
	Delete(ctx context.Context, sortKey string) error
	SetNotifiedFlag(ctx context.Context, sortKey, field string) error
}

// CreateTimerParams carries the attributes of a new timer. StartTime may be
// in any zone; it is normalized to UTC before the key is built.
type CreateTimerParams struct {
	StartTime         time.Time
	SystemName        string
	RegionName        string
	CorporationTicker string
	AllianceTicker    string
	StandingType      string
	StructureType     string
	TimerType         string
	Replace           string
	Notes             string
	AddedBy           string
	ESICampaignID     int64
}

// Service implements timer CRUD on top of the partitioned store.
type Service struct {
	store TimerStore
	now   func() time.Time
}

func NewService(store TimerStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// CreateTimer normalizes the start time to UTC, builds the composite sort
// key and expiry, and inserts with create-only semantics. A sort key
// collision (astronomically unlikely, still enforced) returns
// ErrTimerExists.
func (s *Service) CreateTimer(ctx context.Context, params CreateTimerParams) (*models.Timer, error) {
	startTime := params.StartTime.UTC().Truncate(time.Second)

	timer := &models.Timer{
		PK:                keys.PartitionTimer,
		SK:                keys.Encode(keys.PartitionTimer, startTime, keys.Suffix()),
		ExpiresAt:         startTime.Add(timerExpiry),
		StartTime:         startTime,
		SystemName:        params.SystemName,
		RegionName:        params.RegionName,
		CorporationTicker: params.CorporationTicker,
		AllianceTicker:    params.AllianceTicker,
		StandingType:      params.StandingType,
		StructureType:     params.StructureType,
		TimerType:         params.TimerType,
		Replace:           params.Replace,
		Notes:             params.Notes,
		AddedBy:           params.AddedBy,
		ESICampaignID:     params.ESICampaignID,
	}
	timer.StructureTypeName = models.StructureTypeLabel(timer.StructureType)

	if err := s.store.Insert(ctx, timer); err != nil {
		return nil, err
	}

	return timer, nil
}

// ListTimers scans the timer partition and resolves each record's start
// time from its sort key. Records with malformed keys are filtered out
// silently. With onlyActive set, timers that started more than an hour ago
// are dropped; without includeSecret, secret structure types are dropped.
// Result order is the store's natural order, NOT chronological.
func (s *Service) ListTimers(ctx context.Context, onlyActive, includeSecret bool) ([]*models.Timer, error) {
	records, err := s.store.Scan(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().UTC().Add(-activeGrace)

	timers := make([]*models.Timer, 0, len(records))
	for _, timer := range records {
		decoded, ok := keys.Decode(timer.SK)
		if !ok {
			continue
		}
		timer.StartTime = decoded.StartTime

		if onlyActive && timer.StartTime.Before(cutoff) {
			continue
		}
		if !includeSecret && timer.IsSecret() {
			continue
		}

		timer.StructureTypeName = models.StructureTypeLabel(timer.StructureType)
		timers = append(timers, timer)
	}

	return timers, nil
}

// DeleteTimer removes a timer by exact sort key, idempotently.
func (s *Service) DeleteTimer(ctx context.Context, sortKey string) error {
	return s.store.Delete(ctx, sortKey)
}

// MarkNotified sets one of the notification flags on an existing timer and
// returns ErrTimerNotFound when the timer has been deleted in the meantime.
func (s *Service) MarkNotified(ctx context.Context, sortKey, field string) error {
	return s.store.SetNotifiedFlag(ctx, sortKey, field)
}
