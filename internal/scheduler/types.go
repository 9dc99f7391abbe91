package scheduler

import (
	"context"
	"time"
)

// JobFunc is a single run of a background job.
type JobFunc func(ctx context.Context) error

// Job is a registered background job. Jobs are fixed at startup; there is
// no dynamic task registration.
type Job struct {
	Name        string
	Description string
	// Schedule is a six-field cron expression with a leading seconds field.
	Schedule string
	Run      JobFunc
}

// JobStatus is the externally visible state of a job.
type JobStatus struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Schedule     string     `json:"schedule"`
	Running      bool       `json:"running"`
	LastRunID    string     `json:"last_run_id,omitempty"`
	LastStarted  *time.Time `json:"last_started,omitempty"`
	LastFinished *time.Time `json:"last_finished,omitempty"`
	LastError    string     `json:"last_error,omitempty"`
	SuccessCount int64      `json:"success_count"`
	FailureCount int64      `json:"failure_count"`
	NextRun      *time.Time `json:"next_run,omitempty"`
}
