// Package types - Service form schema types
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// StepType identifies the kind of form step
type StepType string

const (
	// StepNumber is a numeric entry field
	StepNumber StepType = "number"

	// StepSelect is a single-choice list of options
	StepSelect StepType = "select"

	// StepToggle is a yes/no switch
	StepToggle StepType = "toggle"

	// StepImageSelect is a single-choice list rendered as images
	StepImageSelect StepType = "image-select"

	// StepColorPicker is a color choice; it never affects price
	StepColorPicker StepType = "color-picker"
)

// Valid reports whether the step type is part of the closed vocabulary
func (t StepType) Valid() bool {
	switch t {
	case StepNumber, StepSelect, StepToggle, StepImageSelect, StepColorPicker:
		return true
	}
	return false
}

// ModifierKey identifies how an option affects the running price.
// The vocabulary is closed: unknown keys are a schema-authoring error.
type ModifierKey string

const (
	ModPrice           ModifierKey = "price"
	ModPriceAdd        ModifierKey = "priceAdd"
	ModPriceMultiplier ModifierKey = "priceMultiplier"
	ModPricePerM2      ModifierKey = "pricePerM2"
	ModPricePerM3      ModifierKey = "pricePerM3"
	ModPricePerRoll    ModifierKey = "pricePerRoll"
	ModPricePerUnit    ModifierKey = "pricePerUnit"
	ModPricePerCamera  ModifierKey = "pricePerCamera"
	ModPricePerTree    ModifierKey = "pricePerTree"
	ModPricePerHour    ModifierKey = "pricePerHour"
	ModPricePerMonth   ModifierKey = "pricePerMonth"
	ModPricePerRoom    ModifierKey = "pricePerRoom"
	ModPricePerWindow  ModifierKey = "pricePerWindow"
	ModPricePerLock    ModifierKey = "pricePerLock"
	ModPricePerKW      ModifierKey = "pricePerKW"
)

// ModifierKeys lists the full vocabulary in canonical application order:
// base-setting keys first, then additive, then multiplicative.
var ModifierKeys = []ModifierKey{
	ModPrice,
	ModPricePerM2,
	ModPricePerM3,
	ModPricePerRoll,
	ModPricePerUnit,
	ModPricePerCamera,
	ModPricePerTree,
	ModPricePerHour,
	ModPricePerMonth,
	ModPricePerRoom,
	ModPricePerWindow,
	ModPricePerLock,
	ModPricePerKW,
	ModPriceAdd,
	ModPriceMultiplier,
}

// KnownModifier reports whether the key is part of the vocabulary
func KnownModifier(k ModifierKey) bool {
	for _, known := range ModifierKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Option is one choice of a select/image-select step.
// The modifiers present on it determine how choosing it affects price.
type Option struct {
	// Label is the human-readable option text
	Label string `json:"label"`

	// Value is the stored answer value; falls back to Label when empty
	Value any `json:"value,omitempty"`

	// Image is an optional image reference for image-select steps
	Image string `json:"image,omitempty"`

	// Modifiers maps price-modifier keys to their numeric arguments
	Modifiers map[ModifierKey]float64 `json:"-"`
}

// optionJSON mirrors the wire form of Option, where modifier keys
// appear as top-level object keys next to label/value.
type optionJSON struct {
	Label string `json:"label"`
	Value any    `json:"value,omitempty"`
	Image string `json:"image,omitempty"`
}

// UnmarshalJSON lifts known price-modifier keys out of the flat
// option object into the Modifiers map.
func (o *Option) UnmarshalJSON(data []byte) error {
	var core optionJSON
	if err := json.Unmarshal(data, &core); err != nil {
		return err
	}
	o.Label = core.Label
	o.Value = core.Value
	o.Image = core.Image

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range ModifierKeys {
		msg, ok := raw[string(key)]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("option %q: modifier %s: %w", core.Label, key, err)
		}
		if o.Modifiers == nil {
			o.Modifiers = make(map[ModifierKey]float64)
		}
		o.Modifiers[key] = v
	}
	return nil
}

// MarshalJSON writes modifiers back as flat object keys
func (o Option) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 3+len(o.Modifiers))
	out["label"] = o.Label
	if o.Value != nil {
		out["value"] = o.Value
	}
	if o.Image != "" {
		out["image"] = o.Image
	}
	for k, v := range o.Modifiers {
		out[string(k)] = v
	}
	return json.Marshal(out)
}

// EffectiveValue returns the value stored as the answer when this
// option is chosen
func (o Option) EffectiveValue() any {
	if o.Value != nil {
		return o.Value
	}
	return o.Label
}

// Modifier returns the argument of a modifier key, if present
func (o Option) Modifier(k ModifierKey) (float64, bool) {
	v, ok := o.Modifiers[k]
	return v, ok
}

// Step is one field of a service pricing form
type Step struct {
	// Field is the answer key and the variable name usable in formulas
	Field string `json:"field"`

	// Type is the step kind
	Type StepType `json:"type"`

	// Label is the human-readable prompt
	Label string `json:"label"`

	// Options holds the choices for select/image-select steps
	Options []Option `json:"options,omitempty"`

	// Min is the minimum accepted value for number steps
	Min *float64 `json:"min,omitempty"`

	// Unit is the display unit of the entered value (m², rolls, ...)
	Unit string `json:"unit,omitempty"`

	// AffectPrice is the per-unit surcharge applied when a toggle is on
	AffectPrice float64 `json:"affectPrice,omitempty"`

	// ScaledBy names the answer field that scales AffectPrice.
	// It replaces the legacy name-matching heuristic: when empty, the
	// multiplier is 1.
	ScaledBy string `json:"scaledBy,omitempty"`

	// YesLabel and NoLabel caption the two toggle states
	YesLabel string `json:"yesLabel,omitempty"`
	NoLabel  string `json:"noLabel,omitempty"`

	// Required marks the field as mandatory for a meaningful price
	Required bool `json:"required,omitempty"`
}

// FindOption locates the option matching a stored answer value
func (s Step) FindOption(answer any) (Option, bool) {
	for _, opt := range s.Options {
		if ValueEqual(opt.EffectiveValue(), answer) {
			return opt, true
		}
	}
	return Option{}, false
}

// Schema is an ordered service pricing form.
// Step order is significant: it drives contribution application order.
type Schema struct {
	// ID uniquely identifies the service
	ID string `json:"id"`

	// Name is the service display name
	Name string `json:"name"`

	// BasePrice is the fallback price when no step sets one
	BasePrice float64 `json:"basePrice"`

	// Unit is the display unit of the base price
	Unit string `json:"unit,omitempty"`

	// Steps are the ordered form fields
	Steps []Step `json:"steps"`
}

// ValueEqual compares two answer/option scalars, treating numeric
// representations of the same quantity as equal.
func ValueEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}
