// Package cmd - validate command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"service-pricing/core/catalog"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [catalog-dir|file]",
	Short: "Validate catalog documents",
	Long: `Check schema and generator documents for authoring errors,
including the formula safety scan. Unsafe formulas are reported here,
at authoring time, and must never reach evaluation.

Examples:
  service-pricing validate ./catalog
  service-pricing validate paint.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		// Strict load surfaces the first invalid document
		if _, err := catalog.LoadDir(path, true); err != nil {
			return fmt.Errorf("catalog invalid: %w", err)
		}
		fmt.Printf("catalog %s is valid\n", path)
		return nil
	}

	c := catalog.NewCatalog()
	if err := c.LoadFile(path); err != nil {
		return fmt.Errorf("document invalid: %w", err)
	}
	fmt.Printf("%s is valid\n", path)
	return nil
}
