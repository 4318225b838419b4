package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/clausekit/clausekit/internal/analyzer"
	"github.com/clausekit/clausekit/internal/catalog"
	gocache "github.com/patrickmn/go-cache"
)

const contractText = "1. Definitions\nTerms mean...\n2. Payment Terms\nPayment shall be made within 30 days of invoice.\n3. Termination\nEither party may terminate with notice."

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWorker(t *testing.T) *Worker {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	an := analyzer.New(cat, 0)
	cache := gocache.New(time.Minute, time.Minute)
	return NewWorker(an, cache, NewAnalysisStats(time.Hour), testLogger(), false)
}

func newTextJob(id string, categories []string) *Job {
	now := time.Now()
	job := &Job{
		ID:         id,
		Status:     StatusQueued,
		Phase:      "queued",
		Filename:   "contract.txt",
		Categories: categories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job.SetFileData([]byte(contractText))
	return job
}

func TestWorkerProcessCompletesTextJob(t *testing.T) {
	w := newWorker(t)
	job := newTextJob("job-1", []string{catalog.CategoryPaymentTerms, catalog.CategoryTermination})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %s, want %s (errors: %v)", snap.Status, StatusCompleted, snap.Progress.Errors)
	}
	if snap.Progress.Segments != 3 {
		t.Errorf("segments = %d, want 3", snap.Progress.Segments)
	}
	// Two of the three clauses land in a category.
	if snap.Progress.Clauses != 2 {
		t.Errorf("categorized clauses = %d, want 2", snap.Progress.Clauses)
	}

	res := job.Result()
	if res == nil {
		t.Fatal("completed job has no result")
	}
	if len(res.Clauses) != 3 {
		t.Errorf("expected 3 clauses, got %d", len(res.Clauses))
	}
	if job.ContentHash == "" {
		t.Error("content hash not recorded")
	}
	if w.stats.Snapshot().Count != 1 {
		t.Errorf("stats count = %d, want 1", w.stats.Snapshot().Count)
	}
}

func TestWorkerServesIdenticalJobFromCache(t *testing.T) {
	w := newWorker(t)

	first := newTextJob("job-1", nil)
	w.Process(context.Background(), first)
	if first.Snapshot().Status != StatusCompleted {
		t.Fatalf("first job status = %s", first.Snapshot().Status)
	}

	second := newTextJob("job-2", nil)
	w.Process(context.Background(), second)
	if got := second.Snapshot().Status; got != StatusCached {
		t.Fatalf("second job status = %s, want %s", got, StatusCached)
	}
	if second.Result() == nil {
		t.Fatal("cached job has no result")
	}
	// The cache replay is not a fresh analysis run.
	if w.stats.Snapshot().Count != 1 {
		t.Errorf("stats count = %d, want 1", w.stats.Snapshot().Count)
	}
}

func TestWorkerCacheKeyedByCategorySet(t *testing.T) {
	w := newWorker(t)

	w.Process(context.Background(), newTextJob("job-1", nil))

	narrow := newTextJob("job-2", []string{catalog.CategoryTermination})
	w.Process(context.Background(), narrow)
	if got := narrow.Snapshot().Status; got != StatusCompleted {
		t.Fatalf("different category set served from cache: status %s", got)
	}
}

func TestWorkerFailsUnsupportedFormat(t *testing.T) {
	w := newWorker(t)
	job := newTextJob("job-1", nil)
	job.Filename = "contract.exe"

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", snap.Status, StatusFailed)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected a recorded error")
	}
}

func TestWorkerFailsUnknownCategory(t *testing.T) {
	w := newWorker(t)
	job := newTextJob("job-1", []string{"Severability"})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", snap.Status, StatusFailed)
	}
	if job.Result() != nil {
		t.Error("failed job should carry no result")
	}
	found := false
	for _, e := range snap.Progress.Errors {
		if strings.Contains(e, "Severability") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors %v do not name the bad category", snap.Progress.Errors)
	}
}
