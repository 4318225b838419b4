package cli

import (
	"fmt"

	"github.com/clausekit/clausekit/internal/catalog"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the registered clause categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("pattern catalog: %w", err)
		}
		for _, label := range cat.Categories() {
			fmt.Println(label)
		}
		return nil
	},
}
