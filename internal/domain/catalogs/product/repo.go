package product

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

// ListFilter extends the common catalog filter with product-specific
// criteria.
type ListFilter struct {
	domain.ListFilter

	// CategoryID limits to one category
	CategoryID *id.ID

	// LowStockOnly keeps only products at or below their threshold
	LowStockOnly bool
}

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetByCode retrieves a product by its code (case-insensitive).
	GetByCode(ctx context.Context, code string) (*Product, error)

	// ExistsByCode checks code uniqueness, excluding one ID
	// (the product being updated).
	ExistsByCode(ctx context.Context, code string, excludeID id.ID) (bool, error)

	// GetForUpdate retrieves a product with a row lock. The ledger
	// uses this to serialize stock mutations per product.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// ListProducts retrieves products with the extended filter.
	ListProducts(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error)
}
