package routes

import (
	"context"
	"errors"
	"time"

	"go-timers/internal/timers/dto"
	"go-timers/internal/timers/services"
	"go-timers/pkg/middleware"
	"go-timers/pkg/permissions"
	"go-timers/pkg/timeparse"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// SystemResolver resolves a solar system name to its region.
type SystemResolver interface {
	ResolveByName(ctx context.Context, name string) (regionName string, err error)
}

// Routes handles timer route definitions.
type Routes struct {
	service     *services.Service
	systems     SystemResolver
	permissions *permissions.Manager
	validate    *validator.Validate
}

func NewRoutes(service *services.Service, systems SystemResolver, pm *permissions.Manager) *Routes {
	validate := validator.New()
	dto.RegisterCustomValidators(validate)

	return &Routes{
		service:     service,
		systems:     systems,
		permissions: pm,
		validate:    validate,
	}
}

// Register registers all timer routes with the Huma API.
func (r *Routes) Register(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-timers",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List timers",
		Description: "Returns timers in store order (not chronological). Secret timers are included only for viewers holding the elevated permission.",
		Tags:        []string{"Timers"},
	}, func(ctx context.Context, input *dto.ListTimersInput) (*dto.TimersOutput, error) {
		if _, err := middleware.RequirePermission(ctx, r.permissions, permissions.TimersView); err != nil {
			return nil, err
		}

		includeSecret := middleware.HasPermission(ctx, r.permissions, permissions.TimersViewSecret)

		timers, err := r.service.ListTimers(ctx, input.OnlyActive, includeSecret)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to list timers", err)
		}

		return &dto.TimersOutput{Body: dto.TimersResponse{Timers: timers}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-timer",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Create a timer",
		Tags:        []string{"Timers"},
	}, func(ctx context.Context, input *dto.CreateTimerInput) (*dto.TimerOutput, error) {
		user, err := middleware.RequirePermission(ctx, r.permissions, permissions.TimersCreate)
		if err != nil {
			return nil, err
		}

		if err := r.validate.Struct(&input.Body); err != nil {
			return nil, huma.Error422UnprocessableEntity("Invalid timer submission", err)
		}

		startTime, ok := timeparse.Parse(input.Body.StartTime, timeNow())
		if !ok {
			return nil, huma.Error422UnprocessableEntity("Could not parse date/time: " + input.Body.StartTime)
		}

		regionName, err := r.systems.ResolveByName(ctx, input.Body.System)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("Invalid solar system: " + input.Body.System)
		}

		timer, err := r.service.CreateTimer(ctx, services.CreateTimerParams{
			StartTime:         startTime,
			SystemName:        input.Body.System,
			RegionName:        regionName,
			CorporationTicker: input.Body.CorporationTicker,
			AllianceTicker:    input.Body.AllianceTicker,
			StandingType:      input.Body.StandingType,
			StructureType:     input.Body.StructureType,
			TimerType:         input.Body.TimerType,
			Replace:           input.Body.Replace,
			Notes:             input.Body.Notes,
			AddedBy:           user.CharacterName,
		})
		if err != nil {
			if errors.Is(err, services.ErrTimerExists) {
				return nil, huma.Error500InternalServerError("Failed to create timer")
			}
			return nil, huma.Error500InternalServerError("Failed to create timer", err)
		}

		return &dto.TimerOutput{Body: timer}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-timer",
		Method:      "DELETE",
		Path:        basePath + "/{key}",
		Summary:     "Delete a timer",
		Description: "Deletes by exact sort key. Deleting an absent timer succeeds.",
		Tags:        []string{"Timers"},
	}, func(ctx context.Context, input *dto.DeleteTimerInput) (*dto.MessageOutput, error) {
		if _, err := middleware.RequirePermission(ctx, r.permissions, permissions.TimersDelete); err != nil {
			return nil, err
		}

		if err := r.service.DeleteTimer(ctx, input.Key); err != nil {
			return nil, huma.Error500InternalServerError("Failed to delete timer", err)
		}

		return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Timer deleted"}}, nil
	})
}
