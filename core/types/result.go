// Package types - Price computation results
package types

import "github.com/shopspring/decimal"

// PriceResult is the outcome of a generator computation.
// Immutable once returned; labor and materials are independent
// evaluations and are not required to sum to Total.
type PriceResult struct {
	// Total is the computed price
	Total decimal.Decimal `json:"total"`

	// LaborCost is the labor component
	LaborCost decimal.Decimal `json:"labor_cost"`

	// MaterialsCost is the materials component
	MaterialsCost decimal.Decimal `json:"materials_cost"`

	// Derived holds the named derived-input values
	Derived map[string]decimal.Decimal `json:"derived,omitempty"`
}
