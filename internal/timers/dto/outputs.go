package dto

import (
	"go-timers/internal/timers/models"
)

// TimersResponse is the timer listing payload. Order follows the store's
// natural partition order; clients sort for display.
type TimersResponse struct {
	Timers []*models.Timer `json:"timers"`
}

// TimersOutput wraps the listing for Huma.
type TimersOutput struct {
	Body TimersResponse
}

// TimerOutput wraps a single timer for Huma.
type TimerOutput struct {
	Body *models.Timer
}

// MessageResponse is a plain confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// MessageOutput wraps a confirmation for Huma.
type MessageOutput struct {
	Body MessageResponse
}
