// Package export serializes analysis results for download: CSV rows for
// spreadsheets and indented JSON for everything else.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/clausekit/clausekit/internal/analyzer"
)

// CSVHeader is the flattened clause row schema consumers depend on.
var CSVHeader = []string{"clause_type", "clause_name", "section_number", "page_reference", "content"}

// WriteCSV flattens a result to CSV: one row per record and category, so
// a clause classified into two categories appears twice. Records with no
// category get a single Uncategorized row.
func WriteCSV(w io.Writer, res *analyzer.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, rec := range res.Clauses {
		cats := rec.Categories
		if len(cats) == 0 {
			cats = []string{analyzer.Uncategorized}
		}
		for _, cat := range cats {
			row := []string{cat, rec.ClauseName, rec.SectionNumber, rec.PageReference, rec.Content}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the result schema as indented JSON.
func WriteJSON(w io.Writer, res *analyzer.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
