package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "reinforced until",
			input:  "Reinforced until 2024.01.15 12:00:00",
			want:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "anchoring until",
			input:  "Anchoring until 2024.02.01 03:15:30",
			want:   time.Date(2024, 2, 1, 3, 15, 30, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "until is case insensitive",
			input:  "REINFORCED UNTIL 2024.01.15 12:00:00",
			want:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "until with surrounding text",
			input:  "Fortizar Reinforced until 2024.01.15 12:00:00 (per scout)",
			want:   time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "single duration",
			input:  "2h",
			want:   now.Add(2 * time.Hour),
			wantOK: true,
		},
		{
			name:   "combined durations",
			input:  "1d 2h 30m",
			want:   now.Add(24*time.Hour + 2*time.Hour + 30*time.Minute),
			wantOK: true,
		},
		{
			name:   "durations without spaces",
			input:  "1d2h30m15s",
			want:   now.Add(24*time.Hour + 2*time.Hour + 30*time.Minute + 15*time.Second),
			wantOK: true,
		},
		{
			name:   "duration units are case sensitive",
			input:  "2H",
			wantOK: false,
		},
		{
			name:   "malformed until timestamp falls through to durations",
			input:  "Reinforced until 2024.13.40 12:00:00 about 3h from now",
			want:   now.Add(3 * time.Hour),
			wantOK: true,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
		{
			name:   "no recognizable tokens",
			input:  "sometime tomorrow maybe",
			wantOK: false,
		},
		{
			name:   "bare number without unit",
			input:  "90",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input, now)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseNormalizesNowToUTC(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	now := time.Date(2024, 1, 10, 10, 30, 0, 0, loc)

	got, ok := Parse("1h", now)
	require.True(t, ok)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC), got)
}
