package dto

import (
	"slices"

	"go-timers/internal/standings/models"
	timermodels "go-timers/internal/timers/models"

	"github.com/go-playground/validator/v10"
)

// CreateStandingRequest sets or replaces an alliance standing.
type CreateStandingRequest struct {
	Ticker       string `json:"ticker" validate:"required"`
	StandingType string `json:"standing_type" validate:"required,standingtype"`
	Notes        string `json:"notes,omitempty"`
}

// CreateStandingInput wraps the request body for Huma.
type CreateStandingInput struct {
	Body CreateStandingRequest
}

// DeleteStandingInput identifies a standing by alliance ticker.
type DeleteStandingInput struct {
	Ticker string `path:"ticker"`
}

// StandingsResponse is the standing listing payload.
type StandingsResponse struct {
	Standings []*models.Standing `json:"standings"`
}

// StandingsOutput wraps the listing for Huma.
type StandingsOutput struct {
	Body StandingsResponse
}

// StandingOutput wraps a single standing for Huma.
type StandingOutput struct {
	Body *models.Standing
}

// MessageResponse is a plain confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// MessageOutput wraps a confirmation for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// RegisterCustomValidators adds the standing enum validator.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("standingtype", func(fl validator.FieldLevel) bool {
		return slices.Contains(timermodels.StandingTypes, fl.Field().String())
	})
}
