// internal/domain/bom/bom.go
package bom

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Kind identifies a bill-of-materials variant
type Kind string

const (
	KindBattery       Kind = "battery"
	KindPositivePlate Kind = "positive_plate"
	KindNegativePlate Kind = "negative_plate"
	KindInverter      Kind = "inverter"
)

// Valid reports whether k is a known BOM kind
func (k Kind) Valid() bool {
	switch k {
	case KindBattery, KindPositivePlate, KindNegativePlate, KindInverter:
		return true
	}
	return false
}

// Entry is one line of a bill of materials: the quantity of a material
// consumed per single unit of the produced good
type Entry struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
}

// Stock is a read-only view of a stock tier
type Stock interface {
	// Lookup returns the current quantity and unit for a product,
	// or (0, "") when the product is not present in the tier
	Lookup(productID string) (quantity float64, unit string)
}

// Normalize maps BOM entries into their canonical shape. Blank names become
// "Unknown Item" and negative or non-finite rates become 0. Never fails.
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			e.Name = "Unknown Item"
		}
		if e.Qty < 0 || math.IsNaN(e.Qty) || math.IsInf(e.Qty, 0) {
			e.Qty = 0
		}
		out[i] = e
	}
	return out
}

// MaxAchievable computes the predicted-output ceiling for a BOM against a
// stock tier: the minimum over entries of floor(available / rate). Entries
// with a zero rate are unconstrained. An empty BOM, or one with no positive
// rate, yields 0.
func MaxAchievable(entries []Entry, stock Stock) int {
	min := -1
	for _, e := range entries {
		if e.Qty <= 0 {
			continue
		}
		available, _ := stock.Lookup(e.ProductID)
		n := FloorDiv(available, e.Qty)
		if min < 0 || n < min {
			min = n
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// Validate checks referential integrity of a BOM against its stock tier.
// Unresolved entries are reported as warnings; the BOM itself stays usable,
// with missing materials treated as zero-available by MaxAchievable.
func Validate(entries []Entry, stock Stock) []string {
	var warnings []string
	for _, e := range entries {
		if e.ProductID == "" {
			warnings = append(warnings, "BOM entry with empty product id")
			continue
		}
		if _, unit := stock.Lookup(e.ProductID); unit == "" {
			warnings = append(warnings, fmt.Sprintf("BOM references unknown product %s (%s)", e.ProductID, e.Name))
		}
	}
	return warnings
}

// Find returns the entry for a product id, if present
func Find(entries []Entry, productID string) (Entry, bool) {
	for _, e := range entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return Entry{}, false
}

// FloorDiv returns floor(available / rate) as whole units, dividing through
// decimals so 0.3/0.1 style float noise cannot drop a unit from the result.
// A non-positive rate yields 0.
func FloorDiv(available, rate float64) int {
	if rate <= 0 {
		return 0
	}
	q := decimal.NewFromFloat(available).Div(decimal.NewFromFloat(rate))
	return int(q.Round(9).Floor().IntPart())
}
