package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clausekit/clausekit/internal/analyzer"
	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/clausekit/clausekit/internal/parser"
	gocache "github.com/patrickmn/go-cache"
)

// Worker processes a single document job: parse, then analyze.
type Worker struct {
	analyzer    *analyzer.Analyzer
	cache       *gocache.Cache
	stats       *AnalysisStats
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(an *analyzer.Analyzer, cache *gocache.Cache, stats *AnalysisStats, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		analyzer:    an,
		cache:       cache,
		stats:       stats,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallback
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title == "" {
		job.Title = doc.Title
	}
	job.ContentHash = ContentHashHex([]byte(doc.Text))

	// Phase 1.5: Result cache. Identical text with the same category
	// set is deterministic, so the previous result is still correct.
	key := CacheKey(job.ContentHash, job.Categories)
	if cached, ok := w.cache.Get(key); ok {
		res := cached.(*analyzer.Result)
		log.Info("serving analysis from cache", "clauses", len(res.Clauses))
		job.SetCounts(len(res.Clauses), categorized(res))
		job.SetResult(res)
		job.SetStatus(StatusCached, "done")
		return
	}

	// Phase 2: Analyze.
	job.SetStatus(StatusAnalyzing, "analyzing")
	start := time.Now()
	res, err := w.analyzer.Analyze(doc.Text, doc.Markers, job.Categories)
	if err != nil {
		var unknown *catalog.UnknownCategoryError
		if errors.As(err, &unknown) {
			log.Warn("bad category request", "category", unknown.Label)
		} else {
			log.Error("analysis failed", "error", err)
		}
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "analyzing")
		return
	}
	elapsed := time.Since(start)

	w.cache.Set(key, res, gocache.DefaultExpiration)
	w.stats.Record(elapsed, len(res.Clauses))

	job.SetCounts(len(res.Clauses), categorized(res))
	job.SetResult(res)
	job.SetStatus(StatusCompleted, "done")
	log.Info("analysis complete",
		"clauses", len(res.Clauses),
		"duration_ms", elapsed.Milliseconds(),
	)
}

// categorized counts records that landed in at least one category.
func categorized(res *analyzer.Result) int {
	n := 0
	for _, rec := range res.Clauses {
		if len(rec.Categories) > 0 {
			n++
		}
	}
	return n
}
