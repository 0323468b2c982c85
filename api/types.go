// Package api - Request/response types
// These types define the contract of the pricing endpoints.
// The API is stateless, idempotent, and deterministic.
package api

import (
	"github.com/shopspring/decimal"

	"service-pricing/core/types"
)

// PriceRequest asks for a step-based price computation. Either
// ServiceID (catalog lookup) or an inline Schema must be present.
type PriceRequest struct {
	// ServiceID selects a catalog schema
	ServiceID string `json:"service_id,omitempty"`

	// Schema is an inline schema, for previewing unsaved definitions
	Schema *types.Schema `json:"schema,omitempty"`

	// Answers are the user's form answers
	Answers types.Answers `json:"answers"`
}

// PriceResponse is the outcome of a price computation
type PriceResponse struct {
	// Total is the computed price, rounded to the currency unit
	Total decimal.Decimal `json:"total"`

	// Currency is the price currency
	Currency types.Currency `json:"currency"`

	// Metadata describes the computation
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// GeneratorRequest asks for a generator cost breakdown. Either
// GeneratorID or an inline Generator must be present.
type GeneratorRequest struct {
	// GeneratorID selects a catalog generator
	GeneratorID string `json:"generator_id,omitempty"`

	// Generator is an inline definition, for previewing
	Generator *types.Generator `json:"generator,omitempty"`

	// Inputs are the user's calculator inputs
	Inputs types.Answers `json:"inputs"`

	// Context supplies computation constants (e.g. price_unit)
	Context types.Context `json:"context,omitempty"`
}

// GeneratorResponse is the outcome of a generator computation
type GeneratorResponse struct {
	// Result is the computed breakdown
	Result types.PriceResult `json:"result"`

	// Currency is the price currency
	Currency types.Currency `json:"currency"`

	// Metadata describes the computation
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// ValidateFormulaRequest asks whether formula text is safe to save
type ValidateFormulaRequest struct {
	// Formula is the expression text under review
	Formula string `json:"formula"`
}

// ValidateFormulaResponse reports the safety verdict
type ValidateFormulaResponse struct {
	// Valid is true when the formula may be persisted and evaluated
	Valid bool `json:"valid"`

	// Error describes the violation when Valid is false
	Error string `json:"error,omitempty"`
}

// ResponseMetadata describes a computation for reproducibility
type ResponseMetadata struct {
	// InputHash is a deterministic hash of the request
	InputHash string `json:"input_hash"`

	// EngineVersion is the engine build version
	EngineVersion string `json:"engine_version"`

	// DurationMs is the computation wall time
	DurationMs int64 `json:"duration_ms"`
}

// ServiceSummary is a catalog listing entry
type ServiceSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Steps     int     `json:"steps"`
}

// GeneratorSummary is a catalog listing entry
type GeneratorSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Inputs  int    `json:"inputs"`
	Derived int    `json:"derived_inputs"`
}
