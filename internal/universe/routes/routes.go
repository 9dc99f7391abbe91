package routes

import (
	"context"
	"errors"

	"go-timers/internal/universe/services"
	"go-timers/pkg/middleware"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
)

// Routes handles universe route definitions.
type Routes struct {
	service     *services.Service
	permissions *permissions.Manager
}

func NewRoutes(service *services.Service, pm *permissions.Manager) *Routes {
	return &Routes{
		service:     service,
		permissions: pm,
	}
}

// SystemLookupInput identifies a system by name.
type SystemLookupInput struct {
	Name string `path:"name" doc:"Solar system name, exact match"`
}

// SystemLookupResponse is the lookup payload.
type SystemLookupResponse struct {
	Name       string `json:"name"`
	RegionName string `json:"region_name"`
}

// SystemLookupOutput wraps the lookup for Huma.
type SystemLookupOutput struct {
	Body SystemLookupResponse
}

// Register registers all universe routes with the Huma API.
func (r *Routes) Register(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "lookup-system",
		Method:      "GET",
		Path:        basePath + "/systems/{name}",
		Summary:     "Look up a solar system",
		Description: "Resolves a system name to its region. Used by clients to validate timer submissions before posting.",
		Tags:        []string{"Universe"},
	}, func(ctx context.Context, input *SystemLookupInput) (*SystemLookupOutput, error) {
		if _, err := middleware.RequirePermission(ctx, r.permissions, permissions.TimersView); err != nil {
			return nil, err
		}

		regionName, err := r.service.ResolveByName(ctx, input.Name)
		if err != nil {
			if errors.Is(err, services.ErrSystemNotFound) {
				return nil, huma.Error404NotFound("Unknown solar system: " + input.Name)
			}
			return nil, huma.Error500InternalServerError("Failed to look up system", err)
		}

		return &SystemLookupOutput{Body: SystemLookupResponse{
			Name:       input.Name,
			RegionName: regionName,
		}}, nil
	})
}
