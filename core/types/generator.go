// Package types - Generator calculator types
package types

// InputType identifies the kind of generator input field
type InputType string

const (
	InputNumber  InputType = "number"
	InputSelect  InputType = "select"
	InputBoolean InputType = "boolean"
	InputText    InputType = "text"
)

// Valid reports whether the input type is part of the closed vocabulary
func (t InputType) Valid() bool {
	switch t {
	case InputNumber, InputSelect, InputBoolean, InputText:
		return true
	}
	return false
}

// InputSpec describes one user input of a generator calculator
type InputSpec struct {
	// Field is the input key and the variable name usable in formulas
	Field string `json:"field"`

	// Type is the input kind
	Type InputType `json:"type"`

	// Label is the human-readable prompt
	Label string `json:"label"`

	// Options holds the choices for select inputs
	Options []Option `json:"options,omitempty"`

	// Min is the minimum accepted value for number inputs
	Min *float64 `json:"min,omitempty"`

	// Unit is the display unit
	Unit string `json:"unit,omitempty"`

	// Default is the prefilled value
	Default any `json:"default,omitempty"`

	// Required marks the input as mandatory
	Required bool `json:"required,omitempty"`
}

// FormulaSpec wraps one operator-authored formula
type FormulaSpec struct {
	// Formula is the expression text, evaluated in the sandbox
	Formula string `json:"formula"`
}

// DerivedInputSpec is a named quantity computed from the same variable
// context as the price, reported alongside it (e.g. estimated hours).
// Derived values are never fed back into other formulas.
type DerivedInputSpec struct {
	// Name is the key the result is reported under
	Name string `json:"name"`

	// Label is the human-readable caption
	Label string `json:"label,omitempty"`

	// Formula is the expression text
	Formula string `json:"formula"`

	// Unit is the display unit of the computed value
	Unit string `json:"unit,omitempty"`
}

// Formulas bundles the formulas of a generator
type Formulas struct {
	// Pricing computes the total price
	Pricing FormulaSpec `json:"pricing"`

	// Labor computes the labor cost component
	Labor FormulaSpec `json:"labor"`

	// Materials computes the materials cost component
	Materials FormulaSpec `json:"materials"`

	// DerivedInputs are additional reported quantities
	DerivedInputs []DerivedInputSpec `json:"derived_inputs,omitempty"`
}

// Generator is a formula-driven calculator definition
type Generator struct {
	// ID uniquely identifies the generator
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Inputs are the user-entered fields
	Inputs []InputSpec `json:"inputs"`

	// Formulas are the authored cost formulas
	Formulas Formulas `json:"formulas"`
}

// AllFormulas returns every formula text of the generator, used by
// authoring-time safety validation.
func (g *Generator) AllFormulas() []string {
	out := []string{
		g.Formulas.Pricing.Formula,
		g.Formulas.Labor.Formula,
		g.Formulas.Materials.Formula,
	}
	for _, d := range g.Formulas.DerivedInputs {
		out = append(out, d.Formula)
	}
	return out
}

// Context supplies computation constants (e.g. a price-per-unit rate)
// alongside the user inputs. Created fresh per call, never persisted.
type Context map[string]any
