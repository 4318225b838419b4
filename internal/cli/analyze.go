package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/clausekit/clausekit/internal/analyzer"
	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/clausekit/clausekit/internal/export"
	"github.com/clausekit/clausekit/internal/parser"
	"github.com/spf13/cobra"
)

var (
	analyzeCategories []string
	analyzeFormat     string
	analyzeOutput     string
	analyzeThreshold  float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Extract and classify clauses from a document",
	Long: `Analyze a legal document (.pdf, .docx, .txt, .md, .html) and write
the extracted clause records as JSON or CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeCategories, "categories", "c", nil,
		"clause categories to extract (default: all registered)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "output format: json or csv")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file (default: stdout)")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "threshold", 0,
		"classification acceptance threshold (default: 1.0)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	filename := filepath.Base(path)
	if !parser.IsSupportedExtension(filename) {
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := parser.ForFile(filename)
	if err != nil {
		return err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = true
	}

	doc, err := p.Parse(f, filename)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("pattern catalog: %w", err)
	}

	res, err := analyzer.New(cat, analyzeThreshold).Analyze(doc.Text, doc.Markers, analyzeCategories)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if analyzeOutput != "" {
		of, err := os.Create(analyzeOutput)
		if err != nil {
			return err
		}
		defer of.Close()
		out = of
	}

	switch analyzeFormat {
	case "json":
		return export.WriteJSON(out, res)
	case "csv":
		return export.WriteCSV(out, res)
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", analyzeFormat)
	}
}
