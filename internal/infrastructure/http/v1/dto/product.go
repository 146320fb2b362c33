package dto

import (
	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/types"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/packaging"
)

// ProductResponse contains product fields plus the package breakdown
// of the stock on hand.
type ProductResponse struct {
	BaseResponse
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Description     *string             `json:"description,omitempty"`
	CategoryID      string              `json:"categoryId"`
	UnitsPerPackage int                 `json:"unitsPerPackage"`
	Quantity        int64               `json:"quantity"`
	MinStock        int64               `json:"minStock"`
	UnitPrice       types.Money         `json:"unitPrice"`
	StockValue      types.Money         `json:"stockValue"`
	Breakdown       packaging.Breakdown `json:"breakdown"`
	IsLowStock      bool                `json:"isLowStock"`
}

// FromProduct creates ProductResponse from a product.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		BaseResponse:    FromBaseEntity(p.BaseEntity),
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID.String(),
		UnitsPerPackage: p.UnitsPerPackage,
		Quantity:        p.Quantity,
		MinStock:        p.MinStock,
		UnitPrice:       p.UnitPrice,
		StockValue:      p.StockValue(),
		Breakdown:       p.Breakdown(),
		IsLowStock:      p.IsLowStock(),
	}
}

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Code            string       `json:"code" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Description     *string      `json:"description"`
	CategoryID      string       `json:"categoryId" binding:"required"`
	UnitsPerPackage int          `json:"unitsPerPackage" binding:"required,min=1"`
	MinStock        int64        `json:"minStock" binding:"min=0"`
	UnitPrice       *types.Money `json:"unitPrice"`
}

// ToEntity builds a new product from the request. The stored quantity
// always starts at zero; stock arrives through movements.
func (r CreateProductRequest) ToEntity() (*product.Product, error) {
	categoryID, err := id.Parse(r.CategoryID)
	if err != nil {
		return nil, apperror.NewValidation("invalid categoryId format").
			WithDetail("field", "categoryId")
	}

	p := product.NewProduct(r.Code, r.Name, categoryID, r.UnitsPerPackage)
	p.Description = r.Description
	p.MinStock = r.MinStock
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	return p, nil
}

// UpdateProductRequest for updating products. Quantity is absent on
// purpose; it only changes through movements.
type UpdateProductRequest struct {
	Code            *string      `json:"code"`
	Name            *string      `json:"name"`
	Description     *string      `json:"description"`
	CategoryID      *string      `json:"categoryId"`
	UnitsPerPackage *int         `json:"unitsPerPackage"`
	MinStock        *int64       `json:"minStock"`
	UnitPrice       *types.Money `json:"unitPrice"`
	Version         int          `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the request onto an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) error {
	if r.Code != nil {
		p.Code = *r.Code
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.CategoryID != nil {
		categoryID, err := id.Parse(*r.CategoryID)
		if err != nil {
			return apperror.NewValidation("invalid categoryId format").
				WithDetail("field", "categoryId")
		}
		p.CategoryID = categoryID
	}
	if r.UnitsPerPackage != nil {
		p.UnitsPerPackage = *r.UnitsPerPackage
	}
	if r.MinStock != nil {
		p.MinStock = *r.MinStock
	}
	if r.UnitPrice != nil {
		p.UnitPrice = *r.UnitPrice
	}
	p.SetVersion(r.Version)
	return nil
}
