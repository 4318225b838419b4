package catalog

import (
	"regexp"
	"strings"
	"unicode"
)

// BoundaryKind classifies the structural cue a boundary pattern matches.
type BoundaryKind int

const (
	// KindSectionMarker matches explicit legal markers: "Section 4.2",
	// "Article 7", "Clause 3.2.1".
	KindSectionMarker BoundaryKind = iota + 1
	// KindNumbered matches decimal outline headings at line start:
	// "1.", "3.2", "3.2.1 Fees".
	KindNumbered
	// KindLettered matches sub-item markers: "(a)", "(iv)", "B.". The
	// segmenter only honors these under a numbered parent.
	KindLettered
	// KindKeyword matches bare legal heading keywords ("WHEREAS",
	// "DEFINITIONS"). Lowest priority; the segmenter additionally
	// requires the line to pass IsKeywordHeading.
	KindKeyword
)

// BoundaryPattern is one compiled boundary matcher. Fields are read-only
// after Load.
type BoundaryPattern struct {
	Kind     BoundaryKind
	Priority int // lower outranks higher when two patterns hit the same offset
	Re       *regexp.Regexp
	// NumberGroup is the submatch index holding the section number,
	// or 0 when the pattern carries none.
	NumberGroup int
}

type boundarySpec struct {
	kind        BoundaryKind
	priority    int
	expr        string
	numberGroup int
}

// headingKeywords are legal headings that appear without numbering.
// Matched case-insensitively; IsKeywordHeading keeps sentence lines
// that merely start with one of these from becoming boundaries.
var headingKeywords = []string{
	`WHEREAS`,
	`NOW,?\s+THEREFORE`,
	`RECITALS`,
	`DEFINITIONS`,
	`TERMS\s+AND\s+CONDITIONS`,
	`PAYMENT`,
	`TERMINATION`,
	`LIABILITY`,
	`CONFIDENTIALITY`,
	`INTELLECTUAL\s+PROPERTY`,
	`GOVERNING\s+LAW`,
	`DISPUTE\s+RESOLUTION`,
	`FORCE\s+MAJEURE`,
	`AMENDMENTS`,
	`WARRANTIES`,
	`REPRESENTATIONS`,
}

// All boundary patterns anchor at line start (after optional indent) and
// consume the rest of the heading line, so inline occurrences of the same
// tokens never split a segment.
var boundarySpecs = []boundarySpec{
	{
		kind:        KindSectionMarker,
		priority:    1,
		expr:        `(?mi)^[ \t]*(?:Section|Article|Clause|Schedule|Paragraph|Part|Chapter)\s+(\d+(?:\.\d+)*)[^\n]*`,
		numberGroup: 1,
	},
	{
		kind:        KindNumbered,
		priority:    2,
		expr:        `(?m)^[ \t]*(\d+(?:\.\d+)*)\.?\s+[A-Z][^\n]*`,
		numberGroup: 1,
	},
	{
		kind:     KindLettered,
		priority: 3,
		expr:     `(?m)^[ \t]*(?:\([a-z]+\)|[A-Z]\.)\s+\S[^\n]*`,
	},
	{
		kind:     KindKeyword,
		priority: 4,
		expr:     `(?mi)^[ \t]*(?:` + strings.Join(headingKeywords, "|") + `)\b[^\n]*`,
	},
}

// titleStopwords may stay lowercase inside a title-case heading.
var titleStopwords = map[string]bool{
	"a": true, "an": true, "and": true, "for": true,
	"in": true, "of": true, "or": true, "the": true, "to": true,
}

// IsKeywordHeading reports whether a keyword-matched line should act as
// a boundary. Recital lines keep the keyword fully capitalized
// ("WHEREAS, the parties..."), so an all-caps leading word qualifies;
// otherwise the whole line must read as a heading. Sentence lines that
// merely start with a keyword ("Payment shall be made...") fail both.
func IsKeywordHeading(line string) bool {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) > 0 {
		first := strings.Trim(fields[0], ".,:;()\"'")
		if len(first) >= 2 && first == strings.ToUpper(first) && strings.IndexFunc(first, unicode.IsLetter) >= 0 {
			return true
		}
	}
	return IsHeadingCase(line)
}

// IsHeadingCase reports whether a line reads as a heading: either fully
// capitalized ("NOW THEREFORE") or title case ("Terms and Conditions").
// Sentence lines such as "Payment shall be made within 30 days" fail.
func IsHeadingCase(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if line == strings.ToUpper(line) {
		return true
	}
	for i, word := range strings.Fields(line) {
		word = strings.Trim(word, ".,:;()\"'")
		if word == "" {
			continue
		}
		r := []rune(word)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			continue
		}
		if i > 0 && titleStopwords[strings.ToLower(word)] {
			continue
		}
		return false
	}
	return true
}
