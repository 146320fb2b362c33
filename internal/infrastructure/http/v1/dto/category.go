package dto

import (
	"stockyard/internal/domain/catalogs/category"
)

// CategoryResponse contains category fields.
type CategoryResponse struct {
	BaseResponse
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// FromCategory creates CategoryResponse from a category.
func FromCategory(c *category.Category) CategoryResponse {
	return CategoryResponse{
		BaseResponse: FromBaseEntity(c.BaseEntity),
		Name:         c.Name,
		Description:  c.Description,
	}
}

// CreateCategoryRequest for creating categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// ToEntity builds a new category from the request.
func (r CreateCategoryRequest) ToEntity() *category.Category {
	c := category.NewCategory(r.Name)
	c.Description = r.Description
	return c
}

// UpdateCategoryRequest for updating categories. Version carries the
// optimistic lock.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request onto an existing category.
func (r UpdateCategoryRequest) ApplyTo(c *category.Category) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Description != nil {
		c.Description = r.Description
	}
	c.SetVersion(r.Version)
}
