package dto

import (
	"slices"

	"go-timers/internal/timers/models"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators adds the enum validators used by timer DTOs.
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("standingtype", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.StandingTypes, fl.Field().String())
	})

	validate.RegisterValidation("structuretype", func(fl validator.FieldLevel) bool {
		_, ok := models.StructureTypes[fl.Field().String()]
		return ok
	})

	validate.RegisterValidation("timertype", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.TimerTypes, fl.Field().String())
	})

	validate.RegisterValidation("replaceoption", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.ReplaceOptions, fl.Field().String())
	})
}
