package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobRunning  = errors.New("job is already running")
)

type jobEntry struct {
	job     Job
	cronID  cron.EntryID
	status  JobStatus
	running bool
}

// Engine runs the registered jobs on their cron schedules and tracks per-job
// run state. Each job runs at most once at a time; a scheduled fire that
// overlaps a still-running execution is skipped.
type Engine struct {
	cron *cron.Cron

	mu   sync.Mutex
	jobs map[string]*jobEntry
}

func NewEngine() *Engine {
	return &Engine{
		cron: cron.New(cron.WithSeconds()),
		jobs: make(map[string]*jobEntry),
	}
}

// Register adds a job to the engine. Must be called before Start.
func (e *Engine) Register(job Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.jobs[job.Name]; exists {
		return errors.New("duplicate job name: " + job.Name)
	}

	entry := &jobEntry{
		job: job,
		status: JobStatus{
			Name:        job.Name,
			Description: job.Description,
			Schedule:    job.Schedule,
		},
	}

	cronID, err := e.cron.AddFunc(job.Schedule, func() {
		if _, err := e.run(context.Background(), entry); err != nil && !errors.Is(err, ErrJobRunning) {
			slog.Error("Scheduled job failed", "job", job.Name, "error", err)
		}
	})
	if err != nil {
		return err
	}

	entry.cronID = cronID
	e.jobs[job.Name] = entry
	return nil
}

// Start begins scheduled execution.
func (e *Engine) Start() {
	e.cron.Start()
	slog.Info("Scheduler started", "jobs", len(e.jobs))
}

// Stop halts the schedule and waits for in-flight jobs to finish.
func (e *Engine) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

// RunNow triggers a job outside its schedule and returns the run id. The
// run executes synchronously in the calling goroutine.
func (e *Engine) RunNow(ctx context.Context, name string) (string, error) {
	e.mu.Lock()
	entry, ok := e.jobs[name]
	e.mu.Unlock()
	if !ok {
		return "", ErrJobNotFound
	}

	return e.run(ctx, entry)
}

func (e *Engine) run(ctx context.Context, entry *jobEntry) (string, error) {
	e.mu.Lock()
	if entry.running {
		e.mu.Unlock()
		slog.Warn("Job run skipped, previous run still in progress", "job", entry.job.Name)
		return "", ErrJobRunning
	}

	runID := uuid.New().String()
	started := time.Now().UTC()
	entry.running = true
	entry.status.Running = true
	entry.status.LastRunID = runID
	entry.status.LastStarted = &started
	entry.status.LastFinished = nil
	e.mu.Unlock()

	slog.InfoContext(ctx, "Job run started", "job", entry.job.Name, "run_id", runID)
	err := entry.job.Run(ctx)
	finished := time.Now().UTC()

	e.mu.Lock()
	entry.running = false
	entry.status.Running = false
	entry.status.LastFinished = &finished
	if err != nil {
		entry.status.LastError = err.Error()
		entry.status.FailureCount++
	} else {
		entry.status.LastError = ""
		entry.status.SuccessCount++
	}
	e.mu.Unlock()

	if err != nil {
		slog.ErrorContext(ctx, "Job run failed",
			"job", entry.job.Name, "run_id", runID,
			"duration", finished.Sub(started), "error", err)
		return runID, err
	}

	slog.InfoContext(ctx, "Job run finished",
		"job", entry.job.Name, "run_id", runID,
		"duration", finished.Sub(started))
	return runID, nil
}

// Statuses returns a snapshot of every job's state, sorted by name.
func (e *Engine) Statuses() []JobStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	statuses := make([]JobStatus, 0, len(e.jobs))
	for _, entry := range e.jobs {
		status := entry.status
		if next := e.cron.Entry(entry.cronID).Next; !next.IsZero() {
			nextRun := next.UTC()
			status.NextRun = &nextRun
		}
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})
	return statuses
}
