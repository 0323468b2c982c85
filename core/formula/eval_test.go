// Package formula - Evaluator tests
package formula

import (
	"testing"
)

// TestPaintGeneratorFormula reproduces the paint calculator pricing:
// 20 m² at 25 per unit plus one 75-cost can of type A paint.
func TestPaintGeneratorFormula(t *testing.T) {
	ev := NewEvaluator()
	formula := `(area*price_unit) + (ceil(area/(paint_type=="A"?20:25)) * (paint_type=="A"?75:60))`
	vars := map[string]any{
		"area":       20.0,
		"price_unit": 25.0,
		"paint_type": "A",
	}

	got := ev.Evaluate(formula, vars)
	if got != 575 {
		t.Errorf("Evaluate() = %v, want 575", got)
	}

	// Variant B picks the other can size and price
	vars["paint_type"] = "B"
	got = ev.Evaluate(formula, vars)
	if got != 560 {
		t.Errorf("Evaluate() with paint_type B = %v, want 560", got)
	}
}

// TestFailSoftOnRuntimeErrors proves the fail-soft property: formulas
// that pass validation but fail at runtime yield exactly 0.
func TestFailSoftOnRuntimeErrors(t *testing.T) {
	ev := NewEvaluator()
	cases := []struct {
		name    string
		formula string
		vars    map[string]any
	}{
		{"division by zero", "1/0", nil},
		{"division by zero with undefined variable", "1/0*x", nil},
		{"undefined variable", "missing * 2", map[string]any{"present": 1.0}},
		{"string arithmetic", "variant * 2", map[string]any{"variant": "premium"}},
		{"non-numeric result", `"a" == "a" ? "yes" : "no"`, nil},
	}
	for _, tc := range cases {
		if got := ev.Evaluate(tc.formula, tc.vars); got != 0 {
			t.Errorf("%s: Evaluate(%q) = %v, want 0", tc.name, tc.formula, got)
		}
	}
}

// TestUnsafeFormulaEvaluatesToZero proves the evaluator re-validates
// even when the caller skipped the validator
func TestUnsafeFormulaEvaluatesToZero(t *testing.T) {
	ev := NewEvaluator()
	if got := ev.Evaluate("window.location=1", map[string]any{"window": 1.0}); got != 0 {
		t.Errorf("Evaluate(unsafe) = %v, want 0", got)
	}
}

// TestVariableCoercion covers the binding rules: numeric strings
// become numbers, the empty string becomes 0, other strings stay
// strings so equality comparisons keep working.
func TestVariableCoercion(t *testing.T) {
	ev := NewEvaluator()
	cases := []struct {
		name    string
		formula string
		vars    map[string]any
		want    float64
	}{
		{"numeric string", "area * 2", map[string]any{"area": "12"}, 24},
		{"empty string is zero", "area + 5", map[string]any{"area": ""}, 5},
		{"string equality", `variant == "premium" ? 100 : 50`, map[string]any{"variant": "premium"}, 100},
		{"string inequality", `variant == "premium" ? 100 : 50`, map[string]any{"variant": "basic"}, 50},
		{"boolean condition", "has_primer ? 0 : 30", map[string]any{"has_primer": true}, 0},
		{"integer value", "count * 3", map[string]any{"count": 4}, 12},
	}
	for _, tc := range cases {
		if got := ev.Evaluate(tc.formula, tc.vars); got != tc.want {
			t.Errorf("%s: Evaluate(%q) = %v, want %v", tc.name, tc.formula, got, tc.want)
		}
	}
}

// TestWhitelistedFunctions exercises the full function whitelist
func TestWhitelistedFunctions(t *testing.T) {
	ev := NewEvaluator()
	cases := []struct {
		formula string
		want    float64
	}{
		{"ceil(2.1)", 3},
		{"floor(2.9)", 2},
		{"round(2.5)", 3},
		{"round(2.4)", 2},
		{"min(3, 1, 2)", 1},
		{"max(3, 1, 2)", 3},
		{"abs(-7)", 7},
	}
	for _, tc := range cases {
		if got := ev.Evaluate(tc.formula, nil); got != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.formula, got, tc.want)
		}
	}
}

// TestFunctionsOutsideWhitelistFail proves nothing beyond the
// whitelist resolves, even benign-looking math
func TestFunctionsOutsideWhitelistFail(t *testing.T) {
	ev := NewEvaluator()
	for _, formula := range []string{"pow(2, 3)", "sqrt(4)", "log(10)"} {
		if got := ev.Evaluate(formula, nil); got != 0 {
			t.Errorf("Evaluate(%q) = %v, want 0 (not whitelisted)", formula, got)
		}
	}
}

// TestEvaluationIsPure proves repeated evaluation with identical
// inputs returns identical results, with and without the compiled
// expression cache warm.
func TestEvaluationIsPure(t *testing.T) {
	ev := NewEvaluator()
	formula := "ceil(area / 20) * 75 + area * price_unit"
	vars := map[string]any{"area": 20.0, "price_unit": 25.0}

	first := ev.Evaluate(formula, vars)
	for i := 0; i < 5; i++ {
		if got := ev.Evaluate(formula, vars); got != first {
			t.Fatalf("Evaluate() changed result between calls: %v then %v", first, got)
		}
	}

	// A fresh evaluator (cold cache) must agree
	if got := NewEvaluator().Evaluate(formula, vars); got != first {
		t.Errorf("fresh evaluator disagrees: %v, want %v", got, first)
	}
}

// TestCacheKeyedByTextOnly proves variable values never leak between
// calls through the cache
func TestCacheKeyedByTextOnly(t *testing.T) {
	ev := NewEvaluator()
	formula := "area * 10"

	if got := ev.Evaluate(formula, map[string]any{"area": 2.0}); got != 20 {
		t.Fatalf("first call = %v, want 20", got)
	}
	if got := ev.Evaluate(formula, map[string]any{"area": 7.0}); got != 70 {
		t.Errorf("second call = %v, want 70", got)
	}
}
