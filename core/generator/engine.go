// Package generator - Formula-driven cost breakdown engine
// A generator bundles user inputs with operator-authored formulas for
// pricing, labor, materials and derived quantities. The engine builds
// one variable context per call and evaluates every formula against
// that same snapshot.
package generator

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"service-pricing/core/formula"
	"service-pricing/core/types"
	"service-pricing/internal/logging"
)

// Engine evaluates generator formulas. Stateless apart from the
// evaluator's compiled-formula cache; safe for concurrent use.
type Engine struct {
	evaluator *formula.Evaluator
	log       *zap.Logger
}

// NewEngine creates an engine around a formula evaluator
func NewEngine(ev *formula.Evaluator) *Engine {
	return &Engine{
		evaluator: ev,
		log:       logging.Named("generator"),
	}
}

// ComputeResult evaluates the generator's formulas against the union
// of context constants and user inputs (inputs win on collision).
//
// All formulas, the derived inputs included, see the same context
// snapshot: a derived value never feeds another formula. Each slot is
// fail-soft on its own; one broken formula yields 0 for that slot and
// the others still compute.
func (e *Engine) ComputeResult(gen *types.Generator, inputs types.Answers, context types.Context) types.PriceResult {
	vars := make(map[string]any, len(context)+len(inputs))
	for k, v := range context {
		vars[k] = v
	}
	for k, v := range inputs {
		vars[k] = v
	}

	result := types.PriceResult{
		Total:         e.money(gen.Formulas.Pricing.Formula, vars),
		LaborCost:     e.money(gen.Formulas.Labor.Formula, vars),
		MaterialsCost: e.money(gen.Formulas.Materials.Formula, vars),
	}

	if len(gen.Formulas.DerivedInputs) > 0 {
		result.Derived = make(map[string]decimal.Decimal, len(gen.Formulas.DerivedInputs))
		for _, d := range gen.Formulas.DerivedInputs {
			result.Derived[d.Name] = e.money(d.Formula, vars)
		}
	}

	e.log.Debug("computed generator result",
		zap.String("generator", gen.ID),
		zap.String("total", result.Total.String()))
	return result
}

// money evaluates a formula and rounds the fail-soft float result to
// two decimal places.
func (e *Engine) money(text string, vars map[string]any) decimal.Decimal {
	return decimal.NewFromFloat(e.evaluator.Evaluate(text, vars)).Round(2)
}

// ComputeGeneratorResult is a convenience wrapper around a fresh
// engine, for callers that do not hold one.
func ComputeGeneratorResult(gen *types.Generator, inputs types.Answers, context types.Context) types.PriceResult {
	return NewEngine(formula.NewEvaluator()).ComputeResult(gen, inputs, context)
}
