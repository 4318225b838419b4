// Package classify assigns clause segments to categories by weighted
// keyword scoring against the catalog's category patterns.
package classify

import (
	"sort"

	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/clausekit/clausekit/internal/segment"
)

// DefaultThreshold accepts a category on one direct keyword hit, or on
// several weak hits whose weights sum past the bar.
const DefaultThreshold = 1.0

// Classifier scores segment content against category patterns. It holds
// no mutable state; classification depends only on the segment's content
// and the requested categories.
type Classifier struct {
	cat       *catalog.Catalog
	threshold float64
}

func New(cat *catalog.Catalog, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{cat: cat, threshold: threshold}
}

// Threshold returns the acceptance threshold in use.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Classify returns every requested category whose summed pattern weight
// over seg.Content clears the threshold. A segment may land in several
// categories; an empty result means uncategorized. Results are ordered
// by descending score, ties by label, so output is deterministic.
// An empty categories slice requests all registered categories. Unknown
// labels fail with catalog.UnknownCategoryError before any scoring.
func (c *Classifier) Classify(seg segment.Segment, categories []string) ([]string, error) {
	patterns, err := c.cat.CategoryPatterns(categories)
	if err != nil {
		return nil, err
	}

	type scored struct {
		label string
		score float64
	}
	var hits []scored
	for label, pats := range patterns {
		if s := Score(seg.Content, pats); s >= c.threshold {
			hits = append(hits, scored{label: label, score: s})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].label < hits[j].label
	})

	labels := make([]string, len(hits))
	for i, h := range hits {
		labels[i] = h.label
	}
	return labels, nil
}

// Score sums the weights of every pattern that matches anywhere in
// content. Each pattern counts at most once, so scores are monotonic
// non-decreasing as more matching text is added.
func Score(content string, pats []catalog.CategoryPattern) float64 {
	var total float64
	for _, p := range pats {
		if p.Matches(content) {
			total += p.Weight
		}
	}
	return total
}
