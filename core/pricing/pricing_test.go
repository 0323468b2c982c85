// Package pricing - Price resolution and aggregation tests
// These tests pin the load-bearing combination rules: first setter
// wins but later setters still overwrite, and the base-price fallback
// only applies when no step priced the service.
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"service-pricing/core/types"
)

func price(t *testing.T, schema *types.Schema, answers types.Answers) decimal.Decimal {
	t.Helper()
	return ComputePrice(schema, answers)
}

func wantTotal(t *testing.T, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("ComputePrice() = %s, want %d", got.String(), want)
	}
}

// TestPerUnitOptionTimesArea covers the floor-tile service: a chosen
// option priced per m² times the entered area.
func TestPerUnitOptionTimesArea(t *testing.T) {
	schema := &types.Schema{
		ID:   "floor-tile",
		Name: "Floor tiling",
		Steps: []types.Step{
			{
				Field: "tileType",
				Type:  types.StepImageSelect,
				Label: "Tile type",
				Options: []types.Option{
					{Label: "Ceramic", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 120}},
					{Label: "Porcelain", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 180}},
				},
			},
			{Field: "area", Type: types.StepNumber, Label: "Area", Unit: "m²"},
		},
	}
	answers := types.Answers{"tileType": "Ceramic", "area": 50.0}

	wantTotal(t, price(t, schema, answers), 6000)
}

// TestToggleSurchargeScaledByField covers an explicit scaledBy toggle
// on top of a base-setting step
func TestToggleSurchargeScaledByField(t *testing.T) {
	schema := &types.Schema{
		ID: "cleaning",
		Steps: []types.Step{
			{
				Field: "package",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Standard", Modifiers: map[types.ModifierKey]float64{types.ModPrice: 1000}},
				},
			},
			{Field: "rooms", Type: types.StepNumber, Label: "Rooms"},
			{
				Field:       "windowsInside",
				Type:        types.StepToggle,
				AffectPrice: 50,
				ScaledBy:    "rooms",
			},
		},
	}
	answers := types.Answers{"package": "Standard", "rooms": 3.0, "windowsInside": true}

	wantTotal(t, price(t, schema, answers), 1150)
}

// TestToggleWithoutScaledByAppliesOnce proves the multiplier defaults
// to 1 when no scaling field is declared
func TestToggleWithoutScaledByAppliesOnce(t *testing.T) {
	schema := &types.Schema{
		ID: "cleaning",
		Steps: []types.Step{
			{
				Field: "package",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Standard", Modifiers: map[types.ModifierKey]float64{types.ModPrice: 1000}},
				},
			},
			{Field: "express", Type: types.StepToggle, AffectPrice: 200},
		},
	}
	answers := types.Answers{"package": "Standard", "express": true}

	wantTotal(t, price(t, schema, answers), 1200)
}

// TestBasePriceFallback proves the fallback property: when no step
// sets a price, the base price applies (times quantity when present).
func TestBasePriceFallback(t *testing.T) {
	schema := &types.Schema{
		ID:        "handyman",
		BasePrice: 500,
		Steps: []types.Step{
			{Field: "color", Type: types.StepColorPicker, Label: "Color"},
		},
	}

	wantTotal(t, price(t, schema, types.Answers{}), 500)
	wantTotal(t, price(t, schema, types.Answers{"quantity": 3.0}), 1500)
}

// TestLaterSetterOverwrites proves step order decides between two
// per-unit setters
func TestLaterSetterOverwrites(t *testing.T) {
	schema := &types.Schema{
		ID: "walls",
		Steps: []types.Step{
			{
				Field: "material",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Paint", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 100}},
				},
			},
			{
				Field: "finish",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Premium", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 120}},
				},
			},
			{Field: "area", Type: types.StepNumber},
		},
	}
	answers := types.Answers{"material": "Paint", "finish": "Premium", "area": 50.0}

	// The later finish step overwrites the material step's total
	wantTotal(t, price(t, schema, answers), 6000)
}

// TestFlatPriceSetsThenAdds proves a second flat price becomes an
// addition once the base price is applied
func TestFlatPriceSetsThenAdds(t *testing.T) {
	schema := &types.Schema{
		ID: "combo",
		Steps: []types.Step{
			{
				Field: "base",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Basic", Modifiers: map[types.ModifierKey]float64{types.ModPrice: 800}},
				},
			},
			{
				Field: "extra",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Deluxe", Modifiers: map[types.ModifierKey]float64{types.ModPrice: 1200}},
				},
			},
		},
	}
	answers := types.Answers{"base": "Basic", "extra": "Deluxe"}

	wantTotal(t, price(t, schema, answers), 2000)
}

// TestMultiplierScalesRunningTotal covers priceMultiplier after a
// base-setting step
func TestMultiplierScalesRunningTotal(t *testing.T) {
	schema := &types.Schema{
		ID: "urgent",
		Steps: []types.Step{
			{
				Field: "package",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Standard", Modifiers: map[types.ModifierKey]float64{types.ModPrice: 1000}},
				},
			},
			{
				Field: "speed",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Urgent", Modifiers: map[types.ModifierKey]float64{types.ModPriceMultiplier: 1.2}},
					{Label: "Normal"},
				},
			},
		},
	}

	wantTotal(t, price(t, schema, types.Answers{"package": "Standard", "speed": "Urgent"}), 1200)
	wantTotal(t, price(t, schema, types.Answers{"package": "Standard", "speed": "Normal"}), 1000)
}

// TestPriceAddScalesWithArea proves priceAdd multiplies by the area
// answer when one exists
func TestPriceAddScalesWithArea(t *testing.T) {
	schema := &types.Schema{
		ID: "lawn",
		Steps: []types.Step{
			{Field: "area", Type: types.StepNumber},
			{
				Field: "fertilizer",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Organic", Modifiers: map[types.ModifierKey]float64{types.ModPriceAdd: 5}},
				},
			},
		},
		BasePrice: 30,
	}
	answers := types.Answers{"area": 10.0, "fertilizer": "Organic"}

	// number step sets 30*10, fertilizer adds 5*10
	wantTotal(t, price(t, schema, answers), 350)
}

// TestImpliedAreaFromDimensions proves width and height multiply into
// an area answer for per-m² pricing
func TestImpliedAreaFromDimensions(t *testing.T) {
	schema := &types.Schema{
		ID: "window-film",
		Steps: []types.Step{
			{Field: "width", Type: types.StepNumber},
			{Field: "height", Type: types.StepNumber},
			{
				Field: "film",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Tinted", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 100}},
				},
			},
		},
	}
	answers := types.Answers{"width": 4.0, "height": 5.0, "film": "Tinted"}

	wantTotal(t, price(t, schema, answers), 2000)
}

// TestVolumePricingFactorsDepth covers pricePerM3 with a depth answer
func TestVolumePricingFactorsDepth(t *testing.T) {
	schema := &types.Schema{
		ID: "excavation",
		Steps: []types.Step{
			{Field: "area", Type: types.StepNumber},
			{Field: "depth", Type: types.StepNumber},
			{
				Field: "soil",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Clay", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM3: 40}},
				},
			},
		},
	}
	answers := types.Answers{"area": 12.0, "depth": 2.0, "soil": "Clay"}

	// 40 * 12 * 2
	wantTotal(t, price(t, schema, answers), 960)
}

// TestMissingAnswersSkipSteps proves missing or partial answers never
// break the computation
func TestMissingAnswersSkipSteps(t *testing.T) {
	schema := &types.Schema{
		ID:        "partial",
		BasePrice: 250,
		Steps: []types.Step{
			{Field: "area", Type: types.StepNumber},
			{
				Field: "kind",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "A", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 90}},
				},
			},
			{Field: "rush", Type: types.StepToggle, AffectPrice: 100},
		},
	}

	// Only the select answered, but its per-m² companion is missing
	wantTotal(t, price(t, schema, types.Answers{"kind": "A"}), 250)

	// Answer value matching no option
	wantTotal(t, price(t, schema, types.Answers{"kind": "Z"}), 250)
}

// TestComputePriceIsPure proves identical inputs produce identical
// totals and the answers map is not mutated
func TestComputePriceIsPure(t *testing.T) {
	schema := &types.Schema{
		ID: "pure",
		Steps: []types.Step{
			{Field: "width", Type: types.StepNumber},
			{Field: "height", Type: types.StepNumber},
			{
				Field: "film",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Tinted", Modifiers: map[types.ModifierKey]float64{types.ModPricePerM2: 100}},
				},
			},
		},
	}
	answers := types.Answers{"width": 4.0, "height": 5.0, "film": "Tinted"}

	first := ComputePrice(schema, answers)
	for i := 0; i < 5; i++ {
		if got := ComputePrice(schema, answers); !got.Equal(first) {
			t.Fatalf("ComputePrice() changed result between calls: %s then %s", first, got)
		}
	}
	if _, ok := answers["area"]; ok {
		t.Error("ComputePrice() leaked derived area into the caller's answers")
	}
}

// TestRoundingToCurrencyUnit proves the final total rounds to the
// nearest integer unit
func TestRoundingToCurrencyUnit(t *testing.T) {
	schema := &types.Schema{
		ID: "round",
		Steps: []types.Step{
			{
				Field: "package",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Standard", Modifiers: map[types.ModifierKey]float64{types.ModPrice: 999}},
				},
			},
			{
				Field: "speed",
				Type:  types.StepSelect,
				Options: []types.Option{
					{Label: "Urgent", Modifiers: map[types.ModifierKey]float64{types.ModPriceMultiplier: 1.15}},
				},
			},
		},
	}
	answers := types.Answers{"package": "Standard", "speed": "Urgent"}

	// 999 * 1.15 = 1148.85
	wantTotal(t, price(t, schema, answers), 1149)
}
