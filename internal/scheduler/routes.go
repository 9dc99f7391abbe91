package scheduler

import (
	"context"
	"errors"

	"go-timers/pkg/middleware"
	"go-timers/pkg/permissions"

	"github.com/danielgtaylor/huma/v2"
)

// JobsInput has no parameters.
type JobsInput struct{}

// JobsOutput lists every registered job and its state.
type JobsOutput struct {
	Body struct {
		Jobs []JobStatus `json:"jobs"`
	}
}

// RunJobInput identifies a job by name.
type RunJobInput struct {
	Name string `path:"name" doc:"Registered job name"`
}

// RunJobOutput reports a triggered run.
type RunJobOutput struct {
	Body struct {
		RunID   string `json:"run_id"`
		Message string `json:"message"`
	}
}

// registerRoutes registers the admin scheduler routes with the Huma API.
func (m *Module) registerRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-jobs",
		Method:      "GET",
		Path:        basePath + "/jobs",
		Summary:     "List background jobs",
		Tags:        []string{"Scheduler"},
	}, func(ctx context.Context, input *JobsInput) (*JobsOutput, error) {
		if _, err := middleware.RequirePermission(ctx, m.permissions, permissions.AdminJobs); err != nil {
			return nil, err
		}

		out := &JobsOutput{}
		out.Body.Jobs = m.engine.Statuses()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "run-job",
		Method:      "POST",
		Path:        basePath + "/jobs/{name}/run",
		Summary:     "Trigger a background job",
		Description: "Runs the job immediately. The request blocks until the run finishes.",
		Tags:        []string{"Scheduler"},
	}, func(ctx context.Context, input *RunJobInput) (*RunJobOutput, error) {
		if _, err := middleware.RequirePermission(ctx, m.permissions, permissions.AdminJobs); err != nil {
			return nil, err
		}

		runID, err := m.engine.RunNow(ctx, input.Name)
		if err != nil {
			switch {
			case errors.Is(err, ErrJobNotFound):
				return nil, huma.Error404NotFound("Unknown job: " + input.Name)
			case errors.Is(err, ErrJobRunning):
				return nil, huma.Error409Conflict("Job is already running: " + input.Name)
			default:
				out := &RunJobOutput{}
				out.Body.RunID = runID
				out.Body.Message = "Job run failed: " + err.Error()
				return out, nil
			}
		}

		out := &RunJobOutput{}
		out.Body.RunID = runID
		out.Body.Message = "Job run finished"
		return out, nil
	})
}
