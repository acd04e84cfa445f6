package cron

import (
	"context"
	"testing"
	"time"
)

type stubJob struct {
	name string
}

func (s *stubJob) Name() string              { return s.name }
func (s *stubJob) Run(context.Context) error { return nil }

func TestRegistryStoresJobs(t *testing.T) {
	registry := NewRegistry()
	jobA := &stubJob{name: "a"}
	jobB := &stubJob{name: "b"}
	registry.Register(jobA)
	registry.RegisterEvery(jobB, time.Minute)
	registry.Register(nil)
	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0] != jobA || jobs[1] != jobB {
		t.Fatalf("jobs returned out of order")
	}
	// ensure caller cannot mutate internal slice
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegistryDueStampsRuns(t *testing.T) {
	start := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	registry := NewRegistry()
	registry.RegisterEvery(&stubJob{name: "minutely"}, time.Minute)

	if got := len(registry.due(start)); got != 1 {
		t.Fatalf("expected first check to be due, got %d jobs", got)
	}
	if got := len(registry.due(start.Add(59 * time.Second))); got != 0 {
		t.Fatalf("expected job not due yet, got %d jobs", got)
	}
	if got := len(registry.due(start.Add(time.Minute))); got != 1 {
		t.Fatalf("expected job due after interval, got %d jobs", got)
	}
}
