package models

import (
	"time"
)

// TimersCollection is the MongoDB collection backing the timer partition.
const TimersCollection = "timers"

// Standing classifications as stored on timer and standing records.
const (
	StandingFriendly    = "Friendly"
	StandingHostile     = "Hostile"
	StandingComplicated = "It's complicated"
	StandingUnknown     = "Unknown"
)

// StandingTypes lists the valid standing classifications in form order.
var StandingTypes = []string{
	StandingFriendly,
	StandingHostile,
	StandingComplicated,
	StandingUnknown,
}

// StructureTypeSecret is the only structure type hidden from regular
// viewers and the only one eligible for reminder notifications.
const StructureTypeSecret = "ORBITAL_SKYHOOK"

// StructureTypes maps the stored structure type codes to display labels.
var StructureTypes = map[string]string{
	"I_HUB":          "I-hub",
	"POCO":           "PoCo",
	"TOWER":          "Tower",
	"TCU":            "TCU",
	"OTHER_UNKNOWN":  "Other/Unknown",
	"ATHANOR":        "Athanor",
	"ASTRAHAUS":      "Astrahaus",
	"RAITARU":        "Raitaru",
	"AZBEL":          "Azbel",
	"FORTIZAR":       "Fortizar",
	"TATARA":         "Tatara",
	"SOTIYO":         "Sotiyo",
	"KEEPSTAR":       "Keepstar",
	"ANSIBLEX":       "Ansiblex",
	"ORBITAL_SKYHOOK": "Orbital Skyhook",
}

// StructureTypeLabel returns the display label for a structure type code,
// falling back to the raw code for values outside the table (imported
// station timers predate the table).
func StructureTypeLabel(code string) string {
	if label, ok := StructureTypes[code]; ok {
		return label
	}
	return code
}

// TimerTypes lists the valid timer type values in form order.
var TimerTypes = []string{
	"Shield",
	"Armor",
	"Anchoring",
	"Structure",
	"Armor + Structure",
	"Not Applicable",
	"Unknown",
}

// ReplaceOptions lists the valid replacement arrangements.
var ReplaceOptions = []string{
	"Not Applicable",
	"Logistics Replacement",
	"Corp Replacement",
}

// Notification flag field names, also used as document field names.
const (
	NotifiedField1H = "notified_1h"
	NotifiedField5M = "notified_5m"
)

// Timer is a structure vulnerability window. The start time is not stored
// as its own field: it lives inside the sort key and is re-derived on read,
// which keeps the key the single source of truth for ordering.
type Timer struct {
	PK        string    `bson:"pk" json:"-"`
	SK        string    `bson:"sk" json:"key"`
	ExpiresAt time.Time `bson:"expires_at" json:"-"`

	StartTime time.Time `bson:"-" json:"start_time"`

	SystemName        string `bson:"system_name" json:"system_name"`
	RegionName        string `bson:"region_name" json:"region_name"`
	CorporationTicker string `bson:"corporation_ticker" json:"corporation_ticker"`
	AllianceTicker    string `bson:"alliance_ticker" json:"alliance_ticker"`
	StandingType      string `bson:"standing_type" json:"standing_type"`
	StructureType     string `bson:"structure_type" json:"structure_type"`
	TimerType         string `bson:"timer_type" json:"timer_type"`
	Replace           string `bson:"replace" json:"replace"`
	Notes             string `bson:"notes" json:"notes"`
	AddedBy           string `bson:"added_by" json:"added_by"`

	// ESICampaignID is the dedup key for imported sovereignty campaigns.
	ESICampaignID int64 `bson:"esi_campaign_id,omitempty" json:"esi_campaign_id,omitempty"`

	Notified1H bool `bson:"notified_1h,omitempty" json:"-"`
	Notified5M bool `bson:"notified_5m,omitempty" json:"-"`

	// StructureTypeName is the display label attached on read.
	StructureTypeName string `bson:"-" json:"structure_type_name,omitempty"`
}

// IsSecret reports whether the timer is restricted to privileged viewers.
func (t *Timer) IsSecret() bool {
	return t.StructureType == StructureTypeSecret
}
