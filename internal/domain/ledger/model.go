// Package ledger provides the append-only movement ledger and the
// stock consistency engine. Movements are facts: once recorded they
// are never updated or deleted, and the product quantity on hand is
// kept exactly equal to the sum of its signed movements.
package ledger

import (
	"context"
	"strings"
	"time"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/packaging"
)

// MovementType defines movement direction.
type MovementType string

const (
	// TypeEntry increases stock (receipt)
	TypeEntry MovementType = "entry"
	// TypeExit decreases stock (issue)
	TypeExit MovementType = "exit"
)

// ParseMovementType validates a raw type string.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(strings.ToLower(s)) {
	case TypeEntry:
		return TypeEntry, nil
	case TypeExit:
		return TypeExit, nil
	}
	return "", apperror.NewInvalidInput("movement type must be entry or exit").
		WithDetail("field", "type").
		WithDetail("value", s)
}

// Movement is one immutable ledger record. It keeps the package/unit
// form as entered alongside the collapsed canonical total, so history
// stays readable even after the product's default ratio changes.
type Movement struct {
	ID        id.ID        `db:"id" json:"id"`
	ProductID id.ID        `db:"product_id" json:"productId"`
	Type      MovementType `db:"type" json:"type"`

	// Packaging form as entered. UnitsPerPackage is the ratio this
	// movement was recorded at, which may differ from the product's
	// current default.
	PackageQuantity int `db:"package_quantity" json:"packageQuantity"`
	UnitsPerPackage int `db:"units_per_package" json:"unitsPerPackage"`
	UnitQuantity    int `db:"unit_quantity" json:"unitQuantity"`

	// TotalUnits is the collapsed canonical quantity, always >= 1
	TotalUnits int64 `db:"total_units" json:"totalUnits"`

	// Reason is a mandatory short explanation (purchase, sale, loss...)
	Reason string `db:"reason" json:"reason"`

	// Notes is optional free text
	Notes *string `db:"notes" json:"notes,omitempty"`

	// Date is the business date of the movement
	Date time.Time `db:"date" json:"date"`

	// Actor identity stamped at record time
	UserID   string `db:"user_id" json:"userId"`
	UserName string `db:"user_name" json:"userName"`

	// CreatedAt is when the record was written; ties with equal Date
	// are broken by it in listings
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewMovement creates a movement with generated ID and timestamps.
func NewMovement(productID id.ID, mType MovementType) *Movement {
	return &Movement{
		ID:        id.New(),
		ProductID: productID,
		Type:      mType,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks movement invariants.
func (m *Movement) Validate(ctx context.Context) error {
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("productId is required").
			WithDetail("field", "productId")
	}
	if m.Type != TypeEntry && m.Type != TypeExit {
		return apperror.NewValidation("movement type must be entry or exit").
			WithDetail("field", "type")
	}
	if strings.TrimSpace(m.Reason) == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	if m.TotalUnits < 1 {
		return apperror.NewInvalidInput("movement must move at least one unit").
			WithDetail("field", "totalUnits")
	}
	if m.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// SignedUnits returns the canonical quantity with direction applied.
// Entry is positive, exit negative.
func (m *Movement) SignedUnits() int64 {
	if m.Type == TypeExit {
		return -m.TotalUnits
	}
	return m.TotalUnits
}

// Breakdown decomposes the total at the ratio the movement was
// recorded with.
func (m *Movement) Breakdown() packaging.Breakdown {
	return packaging.Decompose(m.TotalUnits, m.UnitsPerPackage)
}
