package category

import (
	"context"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// CountProducts returns how many products reference the category.
	// Used as the referential guard before hard deletion.
	CountProducts(ctx context.Context, categoryID id.ID) (int64, error)
}
