// Package segment splits flat document text into ordered, contiguous
// clause segments using the boundary patterns from the catalog.
package segment

import (
	"sort"
	"strings"

	"github.com/clausekit/clausekit/internal/catalog"
)

// PageMarker records that a new page begins at a character offset.
// Produced by text extraction, consumed when building clause records.
type PageMarker struct {
	Offset int `json:"offset"`
	Page   int `json:"page"`
}

// Segment is a contiguous span of text between two detected boundaries.
// Segments are ordered by Start; the End of one segment equals the Start
// of the next, and Heading+Content is exactly the input bytes of the
// span, so concatenating all segments reconstructs the document.
type Segment struct {
	Start int
	End   int
	// Heading is the matched boundary line verbatim (including any
	// indent). Empty for the whole-document fallback and for preamble
	// text before the first boundary.
	Heading string
	// SectionNumber is the dotted outline number extracted from the
	// heading ("3.2.1"), or empty.
	SectionNumber string
	// Content is the raw text after the heading line up to the next
	// boundary. The heading itself is excluded.
	Content string
	// Kind records which boundary pattern opened this segment; zero for
	// the fallback segment.
	Kind catalog.BoundaryKind
}

// HeadingText returns the heading with surrounding whitespace trimmed.
func (s Segment) HeadingText() string {
	return strings.TrimSpace(s.Heading)
}

// ParentNumber returns the enclosing outline number by the prefix rule:
// "3.2.1" belongs under "3.2". Empty for top-level or unnumbered
// segments.
func (s Segment) ParentNumber() string {
	i := strings.LastIndexByte(s.SectionNumber, '.')
	if i < 0 {
		return ""
	}
	return s.SectionNumber[:i]
}

// Segmenter scans text with a catalog's boundary patterns. It is pure:
// the same input always yields the same segments, and it never fails —
// boundary-less text degrades to a single whole-document segment.
type Segmenter struct {
	patterns []catalog.BoundaryPattern
}

func New(cat *catalog.Catalog) *Segmenter {
	return &Segmenter{patterns: cat.BoundaryPatterns()}
}

type candidate struct {
	start    int
	end      int // end of the heading line (newline excluded)
	priority int
	kind     catalog.BoundaryKind
	number   string
}

// Split segments text into an ordered, gap-free sequence of segments.
func (s *Segmenter) Split(text string) []Segment {
	if text == "" {
		return []Segment{{Start: 0, End: 0}}
	}

	accepted := s.boundaries(text)
	if len(accepted) == 0 {
		return []Segment{{Start: 0, End: len(text), Content: text}}
	}

	var segs []Segment
	if accepted[0].start > 0 {
		// Text before the first boundary is kept: the coverage
		// invariant forbids dropping bytes.
		segs = append(segs, Segment{
			Start:   0,
			End:     accepted[0].start,
			Content: text[:accepted[0].start],
		})
	}
	for i, b := range accepted {
		end := len(text)
		if i+1 < len(accepted) {
			end = accepted[i+1].start
		}
		segs = append(segs, Segment{
			Start:         b.start,
			End:           end,
			Heading:       text[b.start:b.end],
			SectionNumber: b.number,
			Content:       text[b.end:end],
			Kind:          b.kind,
		})
	}
	return segs
}

// boundaries collects, orders, and filters boundary candidates.
func (s *Segmenter) boundaries(text string) []candidate {
	var cands []candidate
	for _, p := range s.patterns {
		for _, idx := range p.Re.FindAllStringSubmatchIndex(text, -1) {
			c := candidate{
				start:    idx[0],
				end:      idx[1],
				priority: p.Priority,
				kind:     p.Kind,
			}
			if g := p.NumberGroup; g > 0 && idx[2*g] >= 0 {
				c.number = text[idx[2*g]:idx[2*g+1]]
			}
			cands = append(cands, c)
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return cands[i].priority < cands[j].priority
	})

	var accepted []candidate
	parentNumber := ""
	for _, c := range cands {
		if n := len(accepted); n > 0 {
			prev := accepted[n-1]
			// Same offset: the higher-priority kind already won.
			// Inside the previous heading line: not a boundary.
			if c.start == prev.start || c.start < prev.end {
				continue
			}
		}
		switch c.kind {
		case catalog.KindLettered:
			// "(a)" only splits under a numbered parent; this keeps
			// inline list items from fragmenting a clause.
			if parentNumber == "" {
				continue
			}
		case catalog.KindKeyword:
			if !catalog.IsKeywordHeading(text[c.start:c.end]) {
				continue
			}
		}
		accepted = append(accepted, c)

		switch c.kind {
		case catalog.KindSectionMarker, catalog.KindNumbered:
			parentNumber = c.number
		case catalog.KindKeyword:
			parentNumber = ""
		}
	}
	return accepted
}
