// Package category provides the product category catalog.
package category

import (
	"context"
	"strings"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
)

// Category groups products for filtering and reporting.
// Categories are soft-deactivated, never hard-deleted while referenced.
type Category struct {
	entity.BaseEntity

	// Name is the display name (unique is not enforced; names are labels)
	Name string `db:"name" json:"name"`

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with generated ID.
func NewCategory(name string) *Category {
	return &Category{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(c.Name) > 100 {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name").
			WithDetail("max", 100)
	}
	return nil
}

// SetDescription sets or clears the description.
func (c *Category) SetDescription(desc string) {
	if desc == "" {
		c.Description = nil
	} else {
		c.Description = &desc
	}
}
