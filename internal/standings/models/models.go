package models

// StandingsCollection is the MongoDB collection backing the standing partition.
const StandingsCollection = "standings"

// Standing is an alliance reputation record. The ticker lives inside the
// sort key and is re-derived on read.
type Standing struct {
	PK string `bson:"pk" json:"-"`
	SK string `bson:"sk" json:"key"`

	Ticker string `bson:"-" json:"ticker"`

	StandingType string `bson:"standing_type" json:"standing_type"`
	Notes        string `bson:"notes" json:"notes"`
}
