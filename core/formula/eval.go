// Package formula - Sandboxed formula evaluation
// Formulas evaluate against an explicit variable table and a fixed
// function whitelist; there is no path from a formula to I/O or any
// ambient state. Evaluation failures degrade to 0 (fail-soft) so that
// an authoring mistake never crashes price computation.
package formula

import (
	"math"
	"strconv"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.uber.org/zap"

	"service-pricing/internal/logging"
)

// Evaluator compiles and evaluates validated formulas. Safe for
// concurrent use; the only state it keeps is a compiled-expression
// cache keyed by formula text, never by variable values.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]hcl.Expression
	log   *zap.Logger
}

// NewEvaluator creates an evaluator with an empty expression cache
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache: make(map[string]hcl.Expression),
		log:   logging.Named("formula"),
	}
}

// Evaluate computes the formula against the variable table, returning
// 0 for anything that is not a finite number: safety violations,
// runtime evaluation errors, NaN and ±Inf all degrade to 0.
// The text is re-validated even if the caller already did.
func (e *Evaluator) Evaluate(text string, vars map[string]any) float64 {
	if err := Check(text); err != nil {
		e.log.Warn("formula rejected at evaluation time",
			zap.String("formula", text),
			zap.Error(err))
		return 0
	}

	expr, ok := e.compiled(text)
	if !ok {
		return 0
	}

	evalCtx := &hcl.EvalContext{
		Variables: bindVariables(vars),
		Functions: evalFunctions,
	}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		e.log.Warn("formula evaluation failed",
			zap.String("formula", text),
			zap.String("detail", diags.Error()))
		return 0
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil || num.IsNull() {
		e.log.Warn("formula did not yield a number",
			zap.String("formula", text),
			zap.String("type", val.Type().FriendlyName()))
		return 0
	}

	f, _ := num.AsBigFloat().Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.log.Warn("formula yielded a non-finite number",
			zap.String("formula", text))
		return 0
	}
	return f
}

// compiled returns the parsed expression for the text, parsing and
// caching it on first use.
func (e *Evaluator) compiled(text string) (hcl.Expression, bool) {
	e.mu.RLock()
	expr, ok := e.cache[text]
	e.mu.RUnlock()
	if ok {
		return expr, true
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(text), "formula", hcl.InitialPos)
	if diags.HasErrors() {
		// Check already parsed this text; reaching here means a race
		// with nothing cached, not a new failure mode.
		return nil, false
	}

	e.mu.Lock()
	e.cache[text] = parsed
	e.mu.Unlock()
	return parsed, true
}

// bindVariables coerces the flat name→value map into cty values.
// Numeric-looking strings become numbers and the empty string becomes
// 0, so schemas that store numbers as strings keep working; other
// strings pass through unchanged so string equality comparisons inside
// formulas (e.g. against a variant name) still hold.
func bindVariables(vars map[string]any) map[string]cty.Value {
	out := make(map[string]cty.Value, len(vars))
	for name, v := range vars {
		val, ok := toCty(v)
		if !ok {
			continue
		}
		out[name] = val
	}
	return out
}

func toCty(v any) (cty.Value, bool) {
	switch x := v.(type) {
	case nil:
		return cty.NilVal, false
	case bool:
		return cty.BoolVal(x), true
	case int:
		return cty.NumberIntVal(int64(x)), true
	case int64:
		return cty.NumberIntVal(x), true
	case float32:
		return cty.NumberFloatVal(float64(x)), true
	case float64:
		return cty.NumberFloatVal(x), true
	case string:
		if x == "" {
			return cty.Zero, true
		}
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return cty.NumberFloatVal(f), true
		}
		return cty.StringVal(x), true
	}
	return cty.NilVal, false
}
