// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"service-pricing/core/types"
	"service-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Catalog contains catalog configuration
	Catalog CatalogConfig `json:"catalog"`

	// Server contains API server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// DefaultCurrency is the currency of computed prices
	DefaultCurrency types.Currency `json:"default_currency"`

	// PriceUnit is the default price-per-unit constant exposed to
	// generator formulas when the caller supplies none
	PriceUnit float64 `json:"price_unit"`
}

// CatalogConfig contains catalog-related settings
type CatalogConfig struct {
	// Directory holds the schema and generator JSON documents
	Directory string `json:"directory"`

	// StrictValidation refuses to load a catalog with any invalid
	// document instead of skipping it
	StrictValidation bool `json:"strict_validation"`
}

// ServerConfig contains API server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	catalogDir := filepath.Join(homeDir, ".service-pricing", "catalog")

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			DefaultCurrency: types.CurrencyUSD,
			PriceUnit:       25,
		},
		Catalog: CatalogConfig{
			Directory:        catalogDir,
			StrictValidation: true,
		},
		Server: ServerConfig{
			Addr: ":8090",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
