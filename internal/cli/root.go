// Package cli implements the clausekit command line interface for
// analyzing documents without running the HTTP service.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clausekit",
	Short: "Deterministic clause extraction for legal documents",
	Long: `clausekit splits a legal document into clauses using structural
boundary patterns (numbered headings, lettered sub-items, legal heading
keywords) and classifies each clause into categories such as Payment
Terms, Termination, and Liability by weighted keyword scoring.

Analysis is fully deterministic: no network calls, no models.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(categoriesCmd)
}
