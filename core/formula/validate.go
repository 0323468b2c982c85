// Package formula - Formula safety validation
// Formulas are authored by operators through admin tooling, not by
// developers. They are untrusted input and MUST pass validation before
// they are persisted or evaluated.
package formula

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"service-pricing/internal/errors"
)

// denied lists capability-granting identifiers that must never appear
// in a formula: host/global access, timers, network, storage, dynamic
// code construction and module loading. This is a deliberate substring
// scan, not a parse: it blocks known-dangerous API names regardless of
// the surrounding arithmetic.
var denied = []string{
	"process",
	"global",
	"window",
	"document",
	"navigator",
	"require",
	"import",
	"eval",
	"function",
	"constructor",
	"prototype",
	"__proto__",
	"settimeout",
	"setinterval",
	"setimmediate",
	"fetch",
	"xmlhttprequest",
	"websocket",
	"localstorage",
	"sessionstorage",
	"indexeddb",
}

// Check validates formula text, returning a SAFETY_VIOLATION error
// describing the first problem found. Deterministic, no side effects.
func Check(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.Safety("formula is empty")
	}

	lowered := strings.ToLower(trimmed)
	for _, token := range denied {
		if strings.Contains(lowered, token) {
			return errors.Safety("formula contains disallowed identifier: " + token)
		}
	}

	_, diags := hclsyntax.ParseExpression([]byte(trimmed), "formula", hcl.InitialPos)
	if diags.HasErrors() {
		return errors.Safetyf("formula does not parse as an expression: %s", diags.Error())
	}
	return nil
}

// Validate reports whether the formula text is safe to evaluate
func Validate(text string) bool {
	return Check(text) == nil
}
