// Package catalog holds the compiled pattern registry used by the
// segmenter and classifier. Patterns are declared as data, compiled once
// by Load, and never mutated afterwards, so concurrent analyses can share
// one Catalog without locking.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
)

// Catalog is the immutable pattern registry.
type Catalog struct {
	boundaries []BoundaryPattern
	categories map[string][]CategoryPattern
	labels     []string
}

// UnknownCategoryError reports a requested category label that has no
// registered patterns. It is the only error the engine returns after
// startup.
type UnknownCategoryError struct {
	Label string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown clause category: %q", e.Label)
}

// Load compiles the full pattern catalog. A compile failure here is a
// programming error in the pattern tables; callers treat it as fatal at
// startup so classification is panic-free at request time.
func Load() (*Catalog, error) {
	c := &Catalog{
		categories: make(map[string][]CategoryPattern, len(categorySpecs)),
	}

	for _, spec := range boundarySpecs {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			return nil, fmt.Errorf("compile boundary pattern %q: %w", spec.expr, err)
		}
		c.boundaries = append(c.boundaries, BoundaryPattern{
			Kind:        spec.kind,
			Priority:    spec.priority,
			Re:          re,
			NumberGroup: spec.numberGroup,
		})
	}
	sort.SliceStable(c.boundaries, func(i, j int) bool {
		return c.boundaries[i].Priority < c.boundaries[j].Priority
	})

	for label, specs := range categorySpecs {
		pats := make([]CategoryPattern, 0, len(specs))
		for _, spec := range specs {
			re, err := regexp.Compile("(?i)" + spec.expr)
			if err != nil {
				return nil, fmt.Errorf("compile category pattern %q for %q: %w", spec.expr, label, err)
			}
			pats = append(pats, CategoryPattern{Expr: spec.expr, Weight: spec.weight, re: re})
		}
		c.categories[label] = pats
		c.labels = append(c.labels, label)
	}
	sort.Strings(c.labels)

	return c, nil
}

// MustLoad is Load for process startup paths where a broken catalog
// should abort immediately.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// BoundaryPatterns returns the boundary patterns in descending match
// priority. Callers must not modify the returned slice.
func (c *Catalog) BoundaryPatterns() []BoundaryPattern {
	return c.boundaries
}

// Categories lists all registered category labels, sorted.
func (c *Catalog) Categories() []string {
	return c.labels
}

// HasCategory reports whether a label is registered.
func (c *Catalog) HasCategory(label string) bool {
	_, ok := c.categories[label]
	return ok
}

// CategoryPatterns resolves the requested labels to their pattern lists.
// An empty request means every registered category. The first unknown
// label fails the whole call; no partial mapping is returned.
func (c *Catalog) CategoryPatterns(labels []string) (map[string][]CategoryPattern, error) {
	if len(labels) == 0 {
		labels = c.labels
	}
	out := make(map[string][]CategoryPattern, len(labels))
	for _, label := range labels {
		pats, ok := c.categories[label]
		if !ok {
			return nil, &UnknownCategoryError{Label: label}
		}
		out[label] = pats
	}
	return out, nil
}
