// Package pricing - Step price resolution
// Each schema step resolves, together with the user's answer, into
// zero or more contributions against the running total. A missing or
// unusable answer resolves to no contribution, never an error.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"service-pricing/core/types"
)

// Mode determines how a contribution combines with the running total
type Mode int

const (
	// ModeNone contributes nothing
	ModeNone Mode = iota

	// ModeSet overwrites the running total
	ModeSet

	// ModeAdd sums into the running total
	ModeAdd

	// ModeMultiply scales the running total
	ModeMultiply
)

// String returns string representation
func (m Mode) String() string {
	switch m {
	case ModeSet:
		return "set"
	case ModeAdd:
		return "add"
	case ModeMultiply:
		return "multiply"
	default:
		return "none"
	}
}

// Contribution is one step's effect on the running total
type Contribution struct {
	// Mode is the combination rule
	Mode Mode

	// Amount is the contribution value
	Amount decimal.Decimal

	// Formula describes how the amount was calculated
	Formula string
}

// ResolveStep interprets one step's answer into its price
// contributions. basePriceApplied tells the resolver whether an
// earlier step already set the total; it decides whether a flat
// price sets or adds, and whether a bare quantity step applies the
// schema's base price.
func ResolveStep(schema *types.Schema, step types.Step, answers types.Answers, basePriceApplied bool) []Contribution {
	switch step.Type {
	case types.StepNumber:
		return resolveNumber(schema, step, answers, basePriceApplied)
	case types.StepSelect, types.StepImageSelect:
		return resolveSelect(step, answers, basePriceApplied)
	case types.StepToggle:
		return resolveToggle(step, answers)
	}
	// color-picker and unknown step types never contribute
	return nil
}

func resolveNumber(schema *types.Schema, step types.Step, answers types.Answers, basePriceApplied bool) []Contribution {
	v, ok := answers.Float(step.Field)
	if !ok {
		return nil
	}
	if !IsQuantityField(step.Field) || basePriceApplied {
		return nil
	}
	amount := decimal.NewFromFloat(schema.BasePrice).Mul(decimal.NewFromFloat(v))
	return []Contribution{{
		Mode:    ModeSet,
		Amount:  amount,
		Formula: fmt.Sprintf("basePrice %v * %s %v", schema.BasePrice, step.Field, v),
	}}
}

func resolveSelect(step types.Step, answers types.Answers, basePriceApplied bool) []Contribution {
	answer, ok := answers[step.Field]
	if !ok || answer == nil {
		return nil
	}
	opt, ok := step.FindOption(answer)
	if !ok {
		return nil
	}

	var out []Contribution
	applied := basePriceApplied
	for _, key := range types.ModifierKeys {
		v, ok := opt.Modifier(key)
		if !ok {
			continue
		}

		switch key {
		case types.ModPrice:
			mode := ModeSet
			if applied {
				mode = ModeAdd
			}
			out = append(out, Contribution{
				Mode:    mode,
				Amount:  decimal.NewFromFloat(v),
				Formula: fmt.Sprintf("price %v (%s)", v, opt.Label),
			})
			applied = true

		case types.ModPriceAdd:
			amount := decimal.NewFromFloat(v)
			formula := fmt.Sprintf("priceAdd %v", v)
			if area, ok := answers.Float("area"); ok {
				amount = amount.Mul(decimal.NewFromFloat(area))
				formula = fmt.Sprintf("priceAdd %v * area %v", v, area)
			}
			out = append(out, Contribution{Mode: ModeAdd, Amount: amount, Formula: formula})

		case types.ModPriceMultiplier:
			out = append(out, Contribution{
				Mode:    ModeMultiply,
				Amount:  decimal.NewFromFloat(v),
				Formula: fmt.Sprintf("priceMultiplier %v", v),
			})

		default:
			if c, ok := resolvePerUnit(key, v, opt.Label, answers); ok {
				out = append(out, c)
				applied = true
			}
		}
	}
	return out
}

// resolvePerUnit computes rate * companion quantity for the per-unit
// modifier family. pricePerM3 additionally factors the depth answer
// (volume = area * depth); duration substitutes when depth is absent.
func resolvePerUnit(key types.ModifierKey, rate float64, label string, answers types.Answers) (Contribution, bool) {
	companion, ok := companionField[key]
	if !ok {
		return Contribution{}, false
	}
	qty, ok := answers.Float(companion)
	if !ok {
		return Contribution{}, false
	}

	amount := decimal.NewFromFloat(rate).Mul(decimal.NewFromFloat(qty))
	formula := fmt.Sprintf("%s %v * %s %v (%s)", key, rate, companion, qty, label)

	if key == types.ModPricePerM3 {
		depth, ok := answers.Float("depth")
		if !ok {
			depth, ok = answers.Float("duration")
		}
		if ok {
			amount = amount.Mul(decimal.NewFromFloat(depth))
			formula = fmt.Sprintf("%s * depth %v", formula, depth)
		}
	}

	return Contribution{Mode: ModeSet, Amount: amount, Formula: formula}, true
}

// resolveToggle applies the toggle's surcharge when it is on. The
// multiplier comes from the answer named by ScaledBy; with no ScaledBy
// the surcharge applies once.
func resolveToggle(step types.Step, answers types.Answers) []Contribution {
	on, ok := answers.Bool(step.Field)
	if !ok || !on {
		return nil
	}
	if step.AffectPrice == 0 {
		return nil
	}

	mult := 1.0
	formula := fmt.Sprintf("affectPrice %v", step.AffectPrice)
	if step.ScaledBy != "" {
		if m, ok := answers.Float(step.ScaledBy); ok {
			mult = m
			formula = fmt.Sprintf("affectPrice %v * %s %v", step.AffectPrice, step.ScaledBy, m)
		}
	}

	amount := decimal.NewFromFloat(step.AffectPrice).Mul(decimal.NewFromFloat(mult))
	return []Contribution{{Mode: ModeAdd, Amount: amount, Formula: formula}}
}
