// Package cmd - price command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"service-pricing/core/catalog"
	"service-pricing/core/pricing"
	"service-pricing/core/types"
	"service-pricing/internal/config"
)

var (
	priceSchemaFile  string
	priceAnswersFile string
	priceAsJSON      bool
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Compute the price of a configured service",
	Long: `Compute a price from a service schema and a set of answers.

The schema file is a catalog document (kind: service) or a bare schema
object; the answers file maps step fields to the user's values.

Examples:
  service-pricing price --schema tile.json --answers answers.json
  service-pricing price -s tile.json -a answers.json --json`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVarP(&priceSchemaFile, "schema", "s", "", "service schema JSON file")
	priceCmd.Flags().StringVarP(&priceAnswersFile, "answers", "a", "", "answers JSON file")
	priceCmd.Flags().BoolVar(&priceAsJSON, "json", false, "emit the result as JSON")
	priceCmd.MarkFlagRequired("schema")
	priceCmd.MarkFlagRequired("answers")
}

func runPrice(cmd *cobra.Command, args []string) error {
	schema, err := readSchema(priceSchemaFile)
	if err != nil {
		return err
	}
	if errs := catalog.ValidateSchema(schema); len(errs) > 0 {
		return fmt.Errorf("invalid schema: %w", errs[0])
	}

	var answers types.Answers
	if err := readJSON(priceAnswersFile, &answers); err != nil {
		return err
	}

	total := pricing.ComputePrice(schema, answers)
	currency := config.Get().Pricing.DefaultCurrency

	if priceAsJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"service":  schema.ID,
			"total":    total,
			"currency": currency,
		})
	}

	fmt.Printf("%s: %s %s\n", schema.Name, total.String(), currency)
	return nil
}

// readSchema accepts either a catalog document or a bare schema object
func readSchema(path string) (*types.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Kind    string        `json:"kind"`
		Service *types.Schema `json:"service"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && doc.Kind == "service" && doc.Service != nil {
		return doc.Service, nil
	}

	var schema types.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return &schema, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
