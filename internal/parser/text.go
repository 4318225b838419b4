package parser

import (
	"io"
	"strings"
)

// TextParser handles plain text files. The text passes through with only
// newline normalization: the segmenter needs the original line structure
// and offsets intact.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		Title: strings.TrimSuffix(filename, ".txt"),
		Text:  normalizeNewlines(string(data)),
	}, nil
}
