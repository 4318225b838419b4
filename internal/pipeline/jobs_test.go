package pipeline

import (
	"testing"
	"time"

	"github.com/clausekit/clausekit/internal/analyzer"
)

func TestContentHashHex(t *testing.T) {
	got := ContentHashHex([]byte("hello"))
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("hash = %s, want %s", got, want)
	}

	if ContentHashHex([]byte("hello")) != ContentHashHex([]byte("hello")) {
		t.Error("hash is not deterministic")
	}
	if ContentHashHex([]byte("hello")) == ContentHashHex([]byte("hello!")) {
		t.Error("different content produced the same hash")
	}
}

func TestCacheKeyIgnoresCategoryOrder(t *testing.T) {
	hash := ContentHashHex([]byte("doc"))

	a := CacheKey(hash, []string{"Termination", "Payment Terms"})
	b := CacheKey(hash, []string{"Payment Terms", "Termination"})
	if a != b {
		t.Errorf("category order changed cache key: %q vs %q", a, b)
	}

	all := CacheKey(hash, nil)
	if all == a {
		t.Error("all-categories key collides with a subset key")
	}
	if CacheKey(hash, nil) != CacheKey(hash, []string{}) {
		t.Error("nil and empty category slices produced different keys")
	}
}

func TestJobLifecycle(t *testing.T) {
	job := &Job{
		ID:        "job-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if job.Status.Done() {
		t.Error("queued job reported done")
	}

	job.SetFileData([]byte("raw bytes"))
	if string(job.FileData()) != "raw bytes" {
		t.Error("file data not stored")
	}

	job.SetStatus(StatusAnalyzing, "analyzing")
	job.SetCounts(3, 3)
	job.AddError("page 4 unreadable")

	snap := job.Snapshot()
	if snap.Status != StatusAnalyzing {
		t.Errorf("snapshot status = %s, want %s", snap.Status, StatusAnalyzing)
	}
	if snap.Progress.Segments != 3 || snap.Progress.Clauses != 3 {
		t.Errorf("snapshot progress = %+v", snap.Progress)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "page 4 unreadable" {
		t.Errorf("snapshot errors = %v", snap.Progress.Errors)
	}
	if snap.Categories == nil {
		t.Error("snapshot categories should never be nil")
	}

	job.SetResult(&analyzer.Result{})
	job.SetStatus(StatusCompleted, "done")
	if !job.Status.Done() {
		t.Error("completed job not reported done")
	}
	if job.Result() == nil {
		t.Error("result not stored")
	}
	// The raw upload is released once the result is in.
	if job.FileData() != nil {
		t.Error("file data not released after SetResult")
	}
}

func TestJobStatusDone(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   bool
	}{
		{StatusQueued, false},
		{StatusParsing, false},
		{StatusAnalyzing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCached, true},
	}
	for _, tt := range tests {
		if got := tt.status.Done(); got != tt.want {
			t.Errorf("%s.Done() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestJobStoreCleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(time.Minute)

	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-time.Hour)}
	store.Put(fresh)
	store.Put(stale)

	store.Cleanup()

	if store.Get("fresh") == nil {
		t.Error("fresh job evicted")
	}
	if store.Get("stale") != nil {
		t.Error("stale job survived cleanup")
	}
	if store.Get("missing") != nil {
		t.Error("unknown id returned a job")
	}
}
