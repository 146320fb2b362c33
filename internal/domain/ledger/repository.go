package ledger

import (
	"context"
	"time"

	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

// ListFilter narrows movement listings. Zero values mean "no filter".
type ListFilter struct {
	// ProductID limits to one product
	ProductID *id.ID

	// Type limits to entries or exits
	Type *MovementType

	// Reason is a case-insensitive substring match
	Reason string

	// DateFrom / DateTo bound the business date (inclusive)
	DateFrom *time.Time
	DateTo   *time.Time

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// Repository defines movement persistence. The ledger is append-only:
// there is deliberately no Update or Delete.
type Repository interface {
	// Create appends a movement.
	Create(ctx context.Context, m *Movement) error

	// GetByID retrieves one movement.
	GetByID(ctx context.Context, movementID id.ID) (*Movement, error)

	// List retrieves movements ordered by date desc, created_at desc.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error)

	// CountByProduct returns how many movements reference a product.
	CountByProduct(ctx context.Context, productID id.ID) (int64, error)
}
