package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

// Compile-time check that CategoryRepo implements category.Repository.
var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*category.Category](
			txManager,
			categoryTable,
			postgres.ExtractDBColumns[category.Category](),
			[]string{"name", "description"},
			func() *category.Category { return &category.Category{} },
		),
	}
}

// CountProducts returns how many products reference the category.
func (r *CategoryRepo) CountProducts(ctx context.Context, categoryID id.ID) (int64, error) {
	q := r.Builder().
		Select("COUNT(*)").
		From(productTable).
		Where(squirrel.Eq{"category_id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products in category: %w", err)
	}
	return count, nil
}
