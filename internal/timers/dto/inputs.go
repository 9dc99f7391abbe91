package dto

// CreateTimerRequest is the submission form for a new timer. StartTime is
// free text: either a "Reinforced until ..." string pasted from the game
// client or a relative duration such as "1d 2h 30m".
type CreateTimerRequest struct {
	StartTime         string `json:"start_time" validate:"required" doc:"Free-text date: 'Reinforced until 2024.01.15 12:00:00' or '1d 2h 30m'"`
	System            string `json:"system" validate:"required" doc:"Solar system name"`
	CorporationTicker string `json:"corporation_ticker" validate:"required"`
	AllianceTicker    string `json:"alliance_ticker,omitempty"`
	StandingType      string `json:"standing_type" validate:"required,standingtype"`
	StructureType     string `json:"structure_type" validate:"required,structuretype"`
	TimerType         string `json:"timer_type" validate:"required,timertype"`
	Replace           string `json:"replace" validate:"required,replaceoption"`
	Notes             string `json:"notes,omitempty"`
}

// CreateTimerInput wraps the request body for Huma.
type CreateTimerInput struct {
	Body CreateTimerRequest
}

// ListTimersInput selects which timers to return.
type ListTimersInput struct {
	OnlyActive bool `query:"only_active" default:"true" doc:"Exclude timers that started more than an hour ago"`
}

// DeleteTimerInput identifies a timer by its full sort key.
type DeleteTimerInput struct {
	Key string `path:"key" doc:"Timer sort key (URL-encoded)"`
}
