// Package catalog - Catalog loading
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"service-pricing/core/types"
	"service-pricing/internal/errors"
	"service-pricing/internal/logging"
)

// document is the envelope of one catalog JSON file
type document struct {
	// Kind discriminates the payload: "service" or "generator"
	Kind string `json:"kind"`

	// Service holds a service schema when Kind is "service"
	Service *types.Schema `json:"service,omitempty"`

	// Generator holds a generator when Kind is "generator"
	Generator *types.Generator `json:"generator,omitempty"`
}

// LoadFile parses one catalog document into the catalog
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "reading catalog file %s", path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(errors.TypeSchema, err, "parsing catalog file %s", path)
	}

	switch doc.Kind {
	case "service":
		if doc.Service == nil {
			return errors.Schemaf("%s: kind is service but no service payload", path)
		}
		return c.RegisterService(doc.Service)
	case "generator":
		if doc.Generator == nil {
			return errors.Schemaf("%s: kind is generator but no generator payload", path)
		}
		return c.RegisterGenerator(doc.Generator)
	default:
		return errors.Schemaf("%s: unknown document kind %q", path, doc.Kind)
	}
}

// LoadDir loads every .json document under dir into a new catalog.
// With strict set, the first invalid document aborts the load;
// otherwise invalid documents are logged and skipped so one broken
// definition does not take the whole catalog down.
func LoadDir(dir string, strict bool) (*Catalog, error) {
	c := NewCatalog()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "reading catalog directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := c.LoadFile(path); err != nil {
			if strict {
				return nil, err
			}
			logging.Warn("skipping invalid catalog document",
				zap.String("path", path),
				zap.Error(err))
		}
	}

	logging.Info("catalog loaded",
		zap.String("dir", dir),
		zap.Int("services", len(c.services)),
		zap.Int("generators", len(c.generators)))
	return c, nil
}
