// Package product provides the product catalog.
// A product owns its packaging ratio, its minimum stock threshold and
// the current quantity on hand in canonical units. The quantity is
// mutated only by the movement ledger, never by catalog updates.
package product

import (
	"context"
	"strings"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/core/types"
	"stockyard/internal/domain/packaging"
)

// Product is a stocked item.
type Product struct {
	entity.BaseEntity

	// Code is a human-readable identifier, unique case-insensitively
	Code string `db:"code" json:"code"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// CategoryID references the owning category (required)
	CategoryID id.ID `db:"category_id" json:"categoryId"`

	// UnitsPerPackage is the default packaging ratio for this product
	UnitsPerPackage int `db:"units_per_package" json:"unitsPerPackage"`

	// Quantity is the stock on hand in canonical units.
	// Written at creation, afterwards owned by the ledger.
	Quantity int64 `db:"quantity" json:"quantity"`

	// MinStock is the low-stock threshold in canonical units
	MinStock int64 `db:"min_stock" json:"minStock"`

	// UnitPrice is the current per-unit price, used for stock valuation
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
}

// NewProduct creates a new Product with generated ID.
func NewProduct(code, name string, categoryID id.ID, unitsPerPackage int) *Product {
	return &Product{
		BaseEntity:      entity.NewBaseEntity(),
		Code:            code,
		Name:            name,
		CategoryID:      categoryID,
		UnitsPerPackage: unitsPerPackage,
		UnitPrice:       types.ZeroMoney(),
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Code) == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	if len(p.Code) > 50 {
		return apperror.NewValidation("code is too long").
			WithDetail("field", "code").
			WithDetail("max", 50)
	}
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(p.CategoryID) {
		return apperror.NewValidation("categoryId is required").
			WithDetail("field", "categoryId")
	}
	if p.UnitsPerPackage < 1 || p.UnitsPerPackage > packaging.MaxUnitsPerPackage {
		return apperror.NewValidation("units per package must be between 1 and 10000").
			WithDetail("field", "unitsPerPackage")
	}
	if p.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if p.MinStock < 0 {
		return apperror.NewValidation("minimum stock cannot be negative").
			WithDetail("field", "minStock")
	}
	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}

// NormalizedCode returns the code folded for case-insensitive uniqueness.
func (p *Product) NormalizedCode() string {
	return strings.ToLower(strings.TrimSpace(p.Code))
}

// Breakdown decomposes the quantity on hand at the product's own ratio.
func (p *Product) Breakdown() packaging.Breakdown {
	return packaging.Decompose(p.Quantity, p.UnitsPerPackage)
}

// IsLowStock reports whether the quantity sits at or below the
// minimum threshold (including zero).
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// IsOutOfStock reports whether nothing is on hand.
func (p *Product) IsOutOfStock() bool {
	return p.Quantity == 0
}

// StockValue is the quantity on hand valued at the current unit price.
func (p *Product) StockValue() types.Money {
	return types.MoneyFromUnits(p.Quantity, p.UnitPrice)
}
