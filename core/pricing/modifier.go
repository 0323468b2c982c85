// Package pricing - Price-modifier vocabulary mapping
package pricing

import "service-pricing/core/types"

// companionField maps each per-unit modifier key to the answer field
// that supplies its quantity. A per-unit modifier without its
// companion answer contributes nothing.
var companionField = map[types.ModifierKey]string{
	types.ModPricePerM2:     "area",
	types.ModPricePerM3:     "area",
	types.ModPricePerRoll:   "rolls",
	types.ModPricePerUnit:   "points",
	types.ModPricePerCamera: "cameras",
	types.ModPricePerTree:   "treeCount",
	types.ModPricePerHour:   "hours",
	types.ModPricePerMonth:  "duration",
	types.ModPricePerRoom:   "rooms",
	types.ModPricePerWindow: "windows",
	types.ModPricePerLock:   "locks",
	types.ModPricePerKW:     "capacity",
}

// quantityFields are the answer fields a bare number step may use as
// the natural multiplier for the schema's base price.
var quantityFields = map[string]bool{
	"area":      true,
	"quantity":  true,
	"rolls":     true,
	"points":    true,
	"cameras":   true,
	"hours":     true,
	"duration":  true,
	"rooms":     true,
	"windows":   true,
	"locks":     true,
	"capacity":  true,
	"units":     true,
	"sensors":   true,
	"treeCount": true,
}

// IsQuantityField reports whether a number-step field is quantity-like
func IsQuantityField(field string) bool {
	return quantityFields[field]
}
