package parser

import (
	"strings"
	"testing"
)

func TestAssemblePagesRecordsMarkers(t *testing.T) {
	doc := assemblePages("contract", []string{
		"1. Scope\nFirst page body.\n",
		"",
		"2. Fees\nSecond page body.\n",
	})

	if doc.Title != "contract" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(doc.Markers))
	}
	if doc.Markers[0].Page != 1 || doc.Markers[0].Offset != 0 {
		t.Errorf("marker 0 = %+v", doc.Markers[0])
	}
	// The blank page is skipped but page numbering stays with the source.
	if doc.Markers[1].Page != 3 {
		t.Errorf("marker 1 page = %d, want 3", doc.Markers[1].Page)
	}
	if got := doc.Text[doc.Markers[1].Offset:]; !strings.HasPrefix(got, "2. Fees") {
		t.Errorf("marker 1 offset points at %q", got[:min(len(got), 10)])
	}
}

func TestAssemblePagesEmptyInput(t *testing.T) {
	doc := assemblePages("empty", nil)
	if doc.Text != "" || len(doc.Markers) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
}
