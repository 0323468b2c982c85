// Package pricing - Price aggregation
package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"service-pricing/core/types"
	"service-pricing/internal/logging"
)

// ComputePrice walks the schema's steps in order, applies each step's
// contributions to the running total and returns the result rounded
// to the integer currency unit.
//
// Combination rules: a set contribution overwrites the total and marks
// the base price as applied (a later setter still overwrites, per step
// order); add sums in; multiply scales the current total. If after all
// steps the total is zero or nothing ever set it, the schema's base
// price times the quantity answer (default 1) applies.
//
// Pure: identical schema and answers always produce the identical
// price, and the inputs are never mutated.
func ComputePrice(schema *types.Schema, answers types.Answers) decimal.Decimal {
	working := withImpliedArea(answers)

	total := decimal.Zero
	basePriceApplied := false

	for _, step := range schema.Steps {
		for _, c := range ResolveStep(schema, step, working, basePriceApplied) {
			switch c.Mode {
			case ModeSet:
				total = c.Amount
				basePriceApplied = true
			case ModeAdd:
				total = total.Add(c.Amount)
			case ModeMultiply:
				total = total.Mul(c.Amount)
			default:
				continue
			}
			logging.Debug("applied step contribution",
				zap.String("service", schema.ID),
				zap.String("field", step.Field),
				zap.String("mode", c.Mode.String()),
				zap.String("formula", c.Formula))
		}
	}

	if total.IsZero() || !basePriceApplied {
		quantity := 1.0
		if q, ok := working.Float("quantity"); ok {
			quantity = q
		}
		total = decimal.NewFromFloat(schema.BasePrice).Mul(decimal.NewFromFloat(quantity))
	}

	return total.Round(0)
}

// withImpliedArea derives the area answer from width and height when
// both are present and area itself was not asked. Schemas that collect
// dimensions as two number steps still price per square unit this way.
func withImpliedArea(answers types.Answers) types.Answers {
	if answers.Has("area") {
		return answers
	}
	w, wok := answers.Float("width")
	h, hok := answers.Float("height")
	if !wok || !hok {
		return answers
	}
	working := answers.Clone()
	working["area"] = w * h
	return working
}
