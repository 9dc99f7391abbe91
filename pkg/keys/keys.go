// Package keys builds and parses the composite sort keys used by the
// single-table layout: a partition tag plus a "#"-separated sort key that
// embeds the record type, an RFC3339 UTC timestamp and a random suffix.
package keys

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Partition tags. Every document carries one of these as its pk.
const (
	PartitionTimer    = "TIMER"
	PartitionStanding = "STANDING"
	PartitionSystem   = "SYSTEM"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffixLength   = 10

	standingPrefix = "ALLIANCE#"
	systemPrefix   = "SYSTEM#"
)

// Decoded is the parsed form of a timer sort key.
type Decoded struct {
	Prefix    string
	StartTime time.Time
	Suffix    string
}

// Encode produces "<PREFIX>#<RFC3339 seconds UTC>#<suffix>".
func Encode(prefix string, t time.Time, suffix string) string {
	return fmt.Sprintf("%s#%s#%s", prefix, t.UTC().Format(time.RFC3339), suffix)
}

// Decode splits a sort key into its three parts. Keys that do not have
// exactly three parts, or whose timestamp does not parse, report ok=false.
// Callers treat those records as legacy/corrupt rows and skip them; a bad
// key is a filter condition, not an error.
func Decode(key string) (Decoded, bool) {
	parts := strings.Split(key, "#")
	if len(parts) != 3 {
		return Decoded{}, false
	}

	startTime, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return Decoded{}, false
	}

	return Decoded{
		Prefix:    parts[0],
		StartTime: startTime.UTC(),
		Suffix:    parts[2],
	}, true
}

// Suffix returns a 10-character disambiguator sampled without repetition
// from the alphanumeric alphabet. It only has to avoid collisions between
// timers landing on the same second, not be unguessable.
func Suffix() string {
	perm := rand.Perm(len(suffixAlphabet))

	var b strings.Builder
	b.Grow(suffixLength)
	for _, i := range perm[:suffixLength] {
		b.WriteByte(suffixAlphabet[i])
	}
	return b.String()
}

// StandingKey returns the sort key for an alliance standing record.
func StandingKey(ticker string) string {
	return standingPrefix + ticker
}

// TickerFromStandingKey extracts the alliance ticker from a standing sort key.
func TickerFromStandingKey(key string) (string, bool) {
	if !strings.HasPrefix(key, standingPrefix) {
		return "", false
	}
	return key[len(standingPrefix):], true
}

// SystemNameKey returns the primary sort key for a solar system record.
func SystemNameKey(name string) string {
	return systemPrefix + name
}

// SystemIDKey returns the secondary index key for a solar system record.
func SystemIDKey(id int64) string {
	return systemPrefix + strconv.FormatInt(id, 10)
}

// NameFromSystemKey extracts the system name from a system sort key.
func NameFromSystemKey(key string) (string, bool) {
	if !strings.HasPrefix(key, systemPrefix) {
		return "", false
	}
	return key[len(systemPrefix):], true
}
