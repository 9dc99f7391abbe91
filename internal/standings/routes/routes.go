package routes

import (
	"context"

	"go-timers/internal/standings/dto"
	"go-timers/internal/standings/services"
	"go-timers/pkg/middleware"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
)

// Routes handles standing route definitions.
type Routes struct {
	service     *services.Service
	permissions *permissions.Manager
	validate    *validator.Validate
}

func NewRoutes(service *services.Service, pm *permissions.Manager) *Routes {
	validate := validator.New()
	dto.RegisterCustomValidators(validate)

	return &Routes{
		service:     service,
		permissions: pm,
		validate:    validate,
	}
}

// Register registers all standing routes with the Huma API.
func (r *Routes) Register(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-standings",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List alliance standings",
		Tags:        []string{"Standings"},
	}, func(ctx context.Context, input *struct{}) (*dto.StandingsOutput, error) {
		if _, err := middleware.RequirePermission(ctx, r.permissions, permissions.StandingsView); err != nil {
			return nil, err
		}

		standings, err := r.service.ListStandings(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to list standings", err)
		}

		return &dto.StandingsOutput{Body: dto.StandingsResponse{Standings: standings}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-standing",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Set an alliance standing",
		Tags:        []string{"Standings"},
	}, func(ctx context.Context, input *dto.CreateStandingInput) (*dto.StandingOutput, error) {
		if _, err := middleware.RequirePermission(ctx, r.permissions, permissions.StandingsManage); err != nil {
			return nil, err
		}

		if err := r.validate.Struct(&input.Body); err != nil {
			return nil, huma.Error422UnprocessableEntity("Invalid standing submission", err)
		}

		standing, err := r.service.SetStanding(ctx, input.Body.Ticker, input.Body.StandingType, input.Body.Notes)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to set standing", err)
		}

		return &dto.StandingOutput{Body: standing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-standing",
		Method:      "DELETE",
		Path:        basePath + "/{ticker}",
		Summary:     "Delete an alliance standing",
		Tags:        []string{"Standings"},
	}, func(ctx context.Context, input *dto.DeleteStandingInput) (*dto.MessageOutput, error) {
		if _, err := middleware.RequirePermission(ctx, r.permissions, permissions.StandingsManage); err != nil {
			return nil, err
		}

		if err := r.service.DeleteStanding(ctx, input.Ticker); err != nil {
			return nil, huma.Error500InternalServerError("Failed to delete standing", err)
		}

		return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Standing deleted"}}, nil
	})
}
