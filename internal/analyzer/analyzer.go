// Package analyzer runs the full clause pipeline: segment, classify,
// and build the canonical clause records for one document.
package analyzer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/clausekit/clausekit/internal/classify"
	"github.com/clausekit/clausekit/internal/segment"
)

// Uncategorized labels records whose category set is empty. It is a
// presentation label only and never appears as a bucket key.
const Uncategorized = "Uncategorized"

// ClauseRecord is the canonical structured output unit: one segment plus
// its classification and position metadata. Immutable once built; absent
// section numbers and page references serialize as absent, not zero.
type ClauseRecord struct {
	ClauseName    string   `json:"clause_name"`
	Categories    []string `json:"categories"`
	Content       string   `json:"content"`
	SectionNumber string   `json:"section_number,omitempty"`
	PageReference string   `json:"page_reference,omitempty"`
}

// Result aggregates all clause records for one document. Clauses
// preserves document order regardless of category. Buckets maps every
// requested category to the contents classified into it, in document
// order; uncategorized records appear only in Clauses.
type Result struct {
	Clauses []ClauseRecord      `json:"clauses"`
	Buckets map[string][]string `json:"buckets"`
}

// Analyzer is a reusable, concurrency-safe pipeline over a shared
// catalog. One analysis run is a pure text-to-records transform.
type Analyzer struct {
	cat *catalog.Catalog
	seg *segment.Segmenter
	cls *classify.Classifier
}

// New builds an analyzer. threshold <= 0 selects the default.
func New(cat *catalog.Catalog, threshold float64) *Analyzer {
	return &Analyzer{
		cat: cat,
		seg: segment.New(cat),
		cls: classify.New(cat, threshold),
	}
}

// Catalog returns the shared pattern catalog.
func (a *Analyzer) Catalog() *catalog.Catalog {
	return a.cat
}

// Analyze segments text, classifies each segment against the requested
// categories (all registered categories when empty), and builds the
// result. The only possible error is catalog.UnknownCategoryError,
// raised before any text is processed; no partial result is returned.
func (a *Analyzer) Analyze(text string, markers []segment.PageMarker, categories []string) (*Result, error) {
	// Validate the request up front so a bad label never yields a
	// half-built result.
	if _, err := a.cat.CategoryPatterns(categories); err != nil {
		return nil, err
	}
	requested := categories
	if len(requested) == 0 {
		requested = a.cat.Categories()
	}

	segs := a.seg.Split(text)

	res := &Result{
		Clauses: make([]ClauseRecord, 0, len(segs)),
		Buckets: make(map[string][]string, len(requested)),
	}
	for _, label := range requested {
		res.Buckets[label] = []string{}
	}

	for _, seg := range segs {
		labels, err := a.cls.Classify(seg, categories)
		if err != nil {
			return nil, err
		}
		if labels == nil {
			labels = []string{}
		}

		rec := ClauseRecord{
			ClauseName:    clauseName(seg, len(segs)),
			Categories:    labels,
			Content:       strings.TrimSpace(seg.Content),
			SectionNumber: seg.SectionNumber,
			PageReference: pageReference(markers, seg.Start),
		}
		res.Clauses = append(res.Clauses, rec)

		for _, label := range labels {
			res.Buckets[label] = append(res.Buckets[label], rec.Content)
		}
	}
	return res, nil
}

// clauseName derives the record name from the segment heading. Segments
// without a matched heading are the whole-document fallback or leading
// preamble text.
func clauseName(seg segment.Segment, total int) string {
	if name := seg.HeadingText(); name != "" {
		return name
	}
	if total == 1 {
		return "Document"
	}
	return "Preamble"
}

// pageReference resolves the page containing offset: the page of the
// last marker at or before it. Empty when no markers were supplied —
// absence must stay observable, so there is no default page 1.
func pageReference(markers []segment.PageMarker, offset int) string {
	if len(markers) == 0 {
		return ""
	}
	// First marker strictly past the offset; the one before it wins.
	i := sort.Search(len(markers), func(i int) bool {
		return markers[i].Offset > offset
	})
	if i == 0 {
		return ""
	}
	return strconv.Itoa(markers[i-1].Page)
}
