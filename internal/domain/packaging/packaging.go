// Package packaging converts between package/unit form and canonical units.
//
// Every stock quantity in the system is stored as a count of canonical
// units (int64). Callers express movements as "N packages plus M loose
// units at R units per package"; this package is the single place where
// that form is collapsed into canonical units and expanded back.
package packaging

import (
	"stockyard/internal/core/apperror"
)

// MaxUnitsPerPackage bounds the package ratio. Matches the upper bound
// the intake forms enforce; anything above it is a typo, not a pallet.
const MaxUnitsPerPackage = 10_000

// MaxQuantity bounds a single movement's package and loose-unit counts.
// MaxQuantity*MaxUnitsPerPackage+MaxQuantity stays far inside int64, so
// TotalUnits never wraps.
const MaxQuantity = 1_000_000_000

// Breakdown is the package/loose-unit decomposition of a canonical
// unit count at a given ratio.
type Breakdown struct {
	Packages       int64 `json:"packages"`
	RemainingUnits int64 `json:"remainingUnits"`
}

// TotalUnits collapses a package/unit pair into canonical units:
// packageQty*unitsPerPackage + unitQty.
//
// Quantities outside [0, MaxQuantity] and a ratio outside
// [1, MaxUnitsPerPackage] are rejected, which keeps the int64 result
// away from overflow.
func TotalUnits(packageQty, unitQty, unitsPerPackage int) (int64, error) {
	if packageQty < 0 {
		return 0, apperror.NewInvalidInput("package quantity must not be negative").
			WithDetail("field", "packageQuantity")
	}
	if int64(packageQty) > MaxQuantity {
		return 0, apperror.NewInvalidInput("package quantity is out of range").
			WithDetail("field", "packageQuantity").
			WithDetail("max", MaxQuantity)
	}
	if unitQty < 0 {
		return 0, apperror.NewInvalidInput("unit quantity must not be negative").
			WithDetail("field", "unitQuantity")
	}
	if int64(unitQty) > MaxQuantity {
		return 0, apperror.NewInvalidInput("unit quantity is out of range").
			WithDetail("field", "unitQuantity").
			WithDetail("max", MaxQuantity)
	}
	if unitsPerPackage < 1 {
		return 0, apperror.NewInvalidInput("units per package must be at least 1").
			WithDetail("field", "unitsPerPackage")
	}
	if unitsPerPackage > MaxUnitsPerPackage {
		return 0, apperror.NewInvalidInput("units per package is out of range").
			WithDetail("field", "unitsPerPackage").
			WithDetail("max", MaxUnitsPerPackage)
	}

	return int64(packageQty)*int64(unitsPerPackage) + int64(unitQty), nil
}

// Decompose expands a canonical unit count into full packages plus
// remaining loose units at the given ratio.
//
// A ratio of 1 or less means the product is not packaged; everything
// stays loose. Ratios never reach zero here, so no division guard
// beyond that is needed.
func Decompose(totalUnits int64, unitsPerPackage int) Breakdown {
	if unitsPerPackage <= 1 {
		return Breakdown{Packages: 0, RemainingUnits: totalUnits}
	}
	ratio := int64(unitsPerPackage)
	return Breakdown{
		Packages:       totalUnits / ratio,
		RemainingUnits: totalUnits % ratio,
	}
}
