// Package cmd - generate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"service-pricing/core/catalog"
	"service-pricing/core/generator"
	"service-pricing/core/types"
	"service-pricing/internal/config"
)

var (
	genFile       string
	genInputsFile string
	genPriceUnit  float64
	genAsJSON     bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compute a generator cost breakdown",
	Long: `Evaluate a generator's pricing, labor, materials and derived-input
formulas against a set of inputs.

Examples:
  service-pricing generate --generator paint.json --inputs inputs.json
  service-pricing generate -g paint.json -i inputs.json --price-unit 25`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genFile, "generator", "g", "", "generator JSON file")
	generateCmd.Flags().StringVarP(&genInputsFile, "inputs", "i", "", "inputs JSON file")
	generateCmd.Flags().Float64Var(&genPriceUnit, "price-unit", 0, "price_unit constant (overrides config)")
	generateCmd.Flags().BoolVar(&genAsJSON, "json", false, "emit the result as JSON")
	generateCmd.MarkFlagRequired("generator")
	generateCmd.MarkFlagRequired("inputs")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	gen, err := readGenerator(genFile)
	if err != nil {
		return err
	}
	if errs := catalog.ValidateGenerator(gen); len(errs) > 0 {
		return fmt.Errorf("invalid generator: %w", errs[0])
	}

	var inputs types.Answers
	if err := readJSON(genInputsFile, &inputs); err != nil {
		return err
	}

	priceUnit := config.Get().Pricing.PriceUnit
	if genPriceUnit != 0 {
		priceUnit = genPriceUnit
	}
	ctx := types.Context{"price_unit": priceUnit}

	result := generator.ComputeGeneratorResult(gen, inputs, ctx)
	currency := config.Get().Pricing.DefaultCurrency

	if genAsJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"generator": gen.ID,
			"result":    result,
			"currency":  currency,
		})
	}

	fmt.Printf("%s\n", gen.Name)
	fmt.Printf("  total:     %s %s\n", result.Total.String(), currency)
	fmt.Printf("  labor:     %s %s\n", result.LaborCost.String(), currency)
	fmt.Printf("  materials: %s %s\n", result.MaterialsCost.String(), currency)
	if len(result.Derived) > 0 {
		names := make([]string, 0, len(result.Derived))
		for name := range result.Derived {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, result.Derived[name].String())
		}
	}
	return nil
}

// readGenerator accepts either a catalog document or a bare generator
func readGenerator(path string) (*types.Generator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Kind      string           `json:"kind"`
		Generator *types.Generator `json:"generator"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && doc.Kind == "generator" && doc.Generator != nil {
		return doc.Generator, nil
	}

	var gen types.Generator
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, fmt.Errorf("parsing generator %s: %w", path, err)
	}
	return &gen, nil
}
