// Package catalog - Authoritative service and generator catalog
// Holds the schema and generator definitions the pricing engine
// consumes. Definitions are authored externally (admin CRUD) and are
// read-only here; the catalog is handed to the engine as an injected
// dependency, never consulted as ambient global state.
package catalog

import (
	"sort"

	"service-pricing/core/types"
	"service-pricing/internal/errors"
)

// Catalog is a registry of service schemas and generators
type Catalog struct {
	services   map[string]*types.Schema
	generators map[string]*types.Generator
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		services:   make(map[string]*types.Schema),
		generators: make(map[string]*types.Generator),
	}
}

// RegisterService adds a service schema after validating it
func (c *Catalog) RegisterService(schema *types.Schema) error {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return errs[0]
	}
	c.services[schema.ID] = schema
	return nil
}

// RegisterGenerator adds a generator after validating it, including
// the safety check of every formula. A generator carrying an unsafe
// formula is refused outright; safety violations surface at authoring
// time, not at evaluation time.
func (c *Catalog) RegisterGenerator(gen *types.Generator) error {
	if errs := ValidateGenerator(gen); len(errs) > 0 {
		return errs[0]
	}
	c.generators[gen.ID] = gen
	return nil
}

// Service returns a service schema by ID
func (c *Catalog) Service(id string) (*types.Schema, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, errors.NotFound("service", id)
	}
	return s, nil
}

// Generator returns a generator by ID
func (c *Catalog) Generator(id string) (*types.Generator, error) {
	g, ok := c.generators[id]
	if !ok {
		return nil, errors.NotFound("generator", id)
	}
	return g, nil
}

// Services returns all service schemas, ordered by ID
func (c *Catalog) Services() []*types.Schema {
	out := make([]*types.Schema, 0, len(c.services))
	for _, s := range c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Generators returns all generators, ordered by ID
func (c *Catalog) Generators() []*types.Generator {
	out := make([]*types.Generator, 0, len(c.generators))
	for _, g := range c.generators {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
