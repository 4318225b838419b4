package parser

import (
	"strings"
	"testing"
)

func TestForFileSelectsParser(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"contract.txt", "*parser.TextParser"},
		{"contract.md", "*parser.MarkdownParser"},
		{"contract.markdown", "*parser.MarkdownParser"},
		{"contract.html", "*parser.HTMLParser"},
		{"contract.HTM", "*parser.HTMLParser"},
		{"contract.pdf", "*parser.PDFParser"},
		{"contract.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename)
		if err != nil {
			t.Errorf("ForFile(%q) failed: %v", tt.filename, err)
			continue
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.filename, got, tt.want)
		}
	}

	if _, err := ForFile("contract.exe"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextParser:
		return "*parser.TextParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *PDFParser:
		return "*parser.PDFParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.txt", "a.md", "a.html", "a.htm", "a.pdf", "a.docx", "A.PDF"} {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"a.csv", "a.exe", "a", ""} {
		if IsSupportedExtension(name) {
			t.Errorf("expected %q to be unsupported", name)
		}
	}
}

func TestTextParserNormalizesNewlines(t *testing.T) {
	doc, err := (&TextParser{}).Parse(strings.NewReader("1. Scope\r\nGoods.\rEnd."), "contract.txt")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Text != "1. Scope\nGoods.\nEnd." {
		t.Errorf("text = %q", doc.Text)
	}
	if doc.Title != "contract" {
		t.Errorf("title = %q, want contract", doc.Title)
	}
	if len(doc.Markers) != 0 {
		t.Errorf("plain text produced %d page markers", len(doc.Markers))
	}
}

func TestMarkdownParserFlattensHeadings(t *testing.T) {
	src := "# Master Agreement\n\nOpening recital text.\n\n## 1. Definitions\n\nWords carry defined meanings."
	doc, err := (&MarkdownParser{}).Parse(strings.NewReader(src), "agreement.md")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	lines := strings.Split(doc.Text, "\n")
	if lines[0] != "Master Agreement" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(doc.Text, "1. Definitions") {
		t.Errorf("heading missing from %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Words carry defined meanings.") {
		t.Errorf("paragraph missing from %q", doc.Text)
	}
	// Headings end up on their own lines, never glued to body text.
	for _, line := range lines {
		if strings.Contains(line, "Definitions") && strings.Contains(line, "Words carry") {
			t.Errorf("heading and body share a line: %q", line)
		}
	}
}

func TestHTMLParserExtractsBlocks(t *testing.T) {
	src := `<html><head><title>Service Agreement</title><style>p{color:red}</style></head>
<body><nav>skip this</nav><h1>1. Payment Terms</h1><p>Invoices are due in 30 days.</p></body></html>`
	doc, err := (&HTMLParser{}).Parse(strings.NewReader(src), "agreement.html")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Title != "Service Agreement" {
		t.Errorf("title = %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "1. Payment Terms") {
		t.Errorf("heading missing from %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "Invoices are due in 30 days.") {
		t.Errorf("paragraph missing from %q", doc.Text)
	}
	if strings.Contains(doc.Text, "skip this") {
		t.Error("nav content leaked into text")
	}
	if strings.Contains(doc.Text, "color:red") {
		t.Error("style content leaked into text")
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := normalizeNewlines("a\r\nb\rc\nd"); got != "a\nb\nc\nd" {
		t.Errorf("normalizeNewlines = %q", got)
	}
}
