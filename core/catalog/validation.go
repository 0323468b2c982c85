// Package catalog - Definition validation
// Ensures schema and generator integrity before anything is priced.
package catalog

import (
	"service-pricing/core/formula"
	"service-pricing/core/types"
	"service-pricing/internal/errors"
)

// SchemaRule is a validation rule over a service schema
type SchemaRule func(*types.Schema) []error

// GeneratorRule is a validation rule over a generator
type GeneratorRule func(*types.Generator) []error

// ValidateSchema checks a schema against the standard rules
func ValidateSchema(schema *types.Schema) []error {
	var errs []error
	for _, rule := range schemaRules {
		errs = append(errs, rule(schema)...)
	}
	return errs
}

// ValidateGenerator checks a generator against the standard rules
func ValidateGenerator(gen *types.Generator) []error {
	var errs []error
	for _, rule := range generatorRules {
		errs = append(errs, rule(gen)...)
	}
	return errs
}

var schemaRules = []SchemaRule{
	validateSchemaIdentity,
	validateStepTypes,
	validateStepFields,
	validateSelectOptions,
	validateToggleScaling,
}

var generatorRules = []GeneratorRule{
	validateGeneratorIdentity,
	validateInputs,
	validateFormulaSafety,
	validateDerivedNames,
}

func validateSchemaIdentity(s *types.Schema) []error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.Schema("service schema has no id"))
	}
	if s.BasePrice < 0 {
		errs = append(errs, errors.Schemaf("%s: basePrice must not be negative", s.ID))
	}
	return errs
}

func validateStepTypes(s *types.Schema) []error {
	var errs []error
	for _, step := range s.Steps {
		if !step.Type.Valid() {
			errs = append(errs, errors.Schemaf("%s: step %q has unknown type %q", s.ID, step.Field, step.Type))
		}
	}
	return errs
}

func validateStepFields(s *types.Schema) []error {
	var errs []error
	seen := make(map[string]bool, len(s.Steps))
	for _, step := range s.Steps {
		if step.Field == "" {
			errs = append(errs, errors.Schemaf("%s: step %q has no field name", s.ID, step.Label))
			continue
		}
		if seen[step.Field] {
			errs = append(errs, errors.Schemaf("%s: duplicate step field %q", s.ID, step.Field))
		}
		seen[step.Field] = true
	}
	return errs
}

func validateSelectOptions(s *types.Schema) []error {
	var errs []error
	for _, step := range s.Steps {
		switch step.Type {
		case types.StepSelect, types.StepImageSelect:
			if len(step.Options) == 0 {
				errs = append(errs, errors.Schemaf("%s: step %q has no options", s.ID, step.Field))
			}
		}
		for _, opt := range step.Options {
			for key := range opt.Modifiers {
				if !types.KnownModifier(key) {
					errs = append(errs, errors.Schemaf("%s: step %q option %q carries unknown modifier %q", s.ID, step.Field, opt.Label, key))
				}
			}
		}
	}
	return errs
}

// validateToggleScaling enforces the explicit scaling relationship:
// a toggle that carries a surcharge must name the field that scales
// it, instead of relying on the retired name-matching heuristic.
func validateToggleScaling(s *types.Schema) []error {
	var errs []error
	for _, step := range s.Steps {
		if step.Type != types.StepToggle || step.AffectPrice == 0 {
			continue
		}
		if step.ScaledBy == "" {
			continue // flat surcharge, multiplier 1
		}
		found := false
		for _, other := range s.Steps {
			if other.Field == step.ScaledBy {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, errors.Schemaf("%s: toggle %q scaledBy %q names no step field", s.ID, step.Field, step.ScaledBy))
		}
	}
	return errs
}

func validateGeneratorIdentity(g *types.Generator) []error {
	if g.ID == "" {
		return []error{errors.Schema("generator has no id")}
	}
	return nil
}

func validateInputs(g *types.Generator) []error {
	var errs []error
	seen := make(map[string]bool, len(g.Inputs))
	for _, in := range g.Inputs {
		if in.Field == "" {
			errs = append(errs, errors.Schemaf("%s: input %q has no field name", g.ID, in.Label))
			continue
		}
		if !in.Type.Valid() {
			errs = append(errs, errors.Schemaf("%s: input %q has unknown type %q", g.ID, in.Field, in.Type))
		}
		if seen[in.Field] {
			errs = append(errs, errors.Schemaf("%s: duplicate input field %q", g.ID, in.Field))
		}
		seen[in.Field] = true
	}
	return errs
}

// validateFormulaSafety runs the sandbox check over every formula the
// generator carries. This is the authoring-time enforcement point: an
// unsafe formula never reaches the evaluator.
func validateFormulaSafety(g *types.Generator) []error {
	var errs []error
	for _, text := range g.AllFormulas() {
		if err := formula.Check(text); err != nil {
			errs = append(errs, errors.Wrapf(errors.TypeSafety, err, "%s: unsafe formula", g.ID))
		}
	}
	return errs
}

func validateDerivedNames(g *types.Generator) []error {
	var errs []error
	seen := make(map[string]bool, len(g.Formulas.DerivedInputs))
	for _, d := range g.Formulas.DerivedInputs {
		if d.Name == "" {
			errs = append(errs, errors.Schemaf("%s: derived input has no name", g.ID))
			continue
		}
		if seen[d.Name] {
			errs = append(errs, errors.Schemaf("%s: duplicate derived input %q", g.ID, d.Name))
		}
		seen[d.Name] = true
	}
	return errs
}
