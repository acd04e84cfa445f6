package cron

import (
	"context"
	"sync"
	"time"
)

// Job represents a scheduled task that runs inside the cron worker.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type entry struct {
	job     Job
	every   time.Duration
	lastRun time.Time
}

// Registry tracks registered cron jobs and when each last ran.
type Registry struct {
	mu      sync.Mutex
	entries []*entry
}

// NewRegistry builds a registry preloaded with jobs that run on every cycle.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

// Register adds a job that runs on every cycle.
func (r *Registry) Register(job Job) {
	r.RegisterEvery(job, 0)
}

// RegisterEvery adds a job that runs at most once per interval. Cycles that fall
// inside the interval skip it. Zero means every cycle.
func (r *Registry) RegisterEvery(job Job, every time.Duration) {
	if job == nil {
		return
	}
	if every < 0 {
		every = 0
	}
	r.mu.Lock()
	r.entries = append(r.entries, &entry{job: job, every: every})
	r.mu.Unlock()
}

// Jobs returns the registered jobs in the order they were added.
func (r *Registry) Jobs() []Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := make([]Job, len(r.entries))
	for i, e := range r.entries {
		jobs[i] = e.job
	}
	return jobs
}

// due returns the jobs whose interval has elapsed at now and stamps them as run.
func (r *Registry) due(now time.Time) []Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []Job
	for _, e := range r.entries {
		if e.every > 0 && !e.lastRun.IsZero() && now.Sub(e.lastRun) < e.every {
			continue
		}
		e.lastRun = now
		jobs = append(jobs, e.job)
	}
	return jobs
}
