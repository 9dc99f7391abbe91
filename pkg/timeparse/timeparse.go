// Package timeparse converts free-text operator input into an absolute UTC
// instant. Two forms are understood: an explicit "Reinforced until ..." /
// "Anchoring until ..." timestamp copied out of the game client, and a
// relative duration expression such as "1d 2h 30m".
package timeparse

import (
	"regexp"
	"strconv"
	"time"
)

var (
	untilRe    = regexp.MustCompile(`(?i)(Reinforced|Anchoring)\s+until\s+(\d{4}\.\d{2}\.\d{2}\s+\d{2}:\d{2}:\d{2})`)
	durationRe = regexp.MustCompile(`([0-9]+)\s*([dhms])`)
)

// untilLayout matches the timestamp format the game client puts on the
// clipboard, e.g. "2024.01.15 12:00:00". The value has no zone and is UTC.
const untilLayout = "2006.01.02 15:04:05"

// Parse resolves input to an absolute UTC instant relative to now.
// ok is false when the input contains neither an "until" timestamp nor any
// duration token; an empty result is never silently treated as "now".
func Parse(input string, now time.Time) (time.Time, bool) {
	if m := untilRe.FindStringSubmatch(input); m != nil {
		if t, err := time.ParseInLocation(untilLayout, m[2], time.UTC); err == nil {
			return t, true
		}
		// Malformed captured timestamp falls through to duration parsing.
	}

	matches := durationRe.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return time.Time{}, false
	}

	result := now.UTC()
	for _, m := range matches {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		switch m[2] {
		case "d":
			result = result.Add(time.Duration(amount) * 24 * time.Hour)
		case "h":
			result = result.Add(time.Duration(amount) * time.Hour)
		case "m":
			result = result.Add(time.Duration(amount) * time.Minute)
		case "s":
			result = result.Add(time.Duration(amount) * time.Second)
		}
	}

	return result, true
}
