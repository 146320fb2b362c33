package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// Compile-time check that ProductRepo implements product.Repository.
var _ product.Repository = (*ProductRepo)(nil)

// ProductRepo implements product.Repository. It also carries the two
// quantity-level operations the ledger needs (GetForUpdate from the
// base repo plus SetQuantity below).
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	r := &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			[]string{"name", "code"},
			func() *product.Product { return &product.Product{} },
		),
	}

	// The ledger owns quantity through SetQuantity. Keeping the column
	// out of catalog UPDATEs means a movement committed after the
	// service's read can never be overwritten with the stale value.
	r.ExcludeFromUpdate("quantity")

	return r
}

// Create inserts the product, mapping a unique-index violation on the
// code to DUPLICATE_CODE. The ExistsByCode hook catches duplicates in
// the common case; this covers two creates racing past it.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return translateUniqueViolation(r.BaseCatalogRepo.Create(ctx, p), p.Code)
}

// translateUniqueViolation rewrites a 23505 from the products table
// into the exact taxonomy code the uniqueness hook would have produced.
func translateUniqueViolation(err error, code string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.NewDuplicateCode("product", code).WithCause(err)
	}
	return err
}

// Update applies the same unique-violation mapping for code changes
// racing past the hook's uniqueness read.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	return translateUniqueViolation(r.BaseCatalogRepo.Update(ctx, p), p.Code)
}

// GetByCode retrieves a product by code, case-insensitively.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("lower(code) = lower(?)", code)).
		Limit(1)

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", code)
		}
		return nil, err
	}
	return p, nil
}

// ExistsByCode checks code uniqueness, excluding one ID.
func (r *ProductRepo) ExistsByCode(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(productTable).
		Where(squirrel.Expr("lower(code) = lower(?)", code)).
		Limit(1)

	if !id.IsNil(excludeID) {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by code: %w", err)
	}
	return true, nil
}

// ListProducts retrieves products with the extended filter.
func (r *ProductRepo) ListProducts(ctx context.Context, filter product.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.applyListFilter(r.baseSelect(), filter.ListFilter)

	if filter.CategoryID != nil {
		q = q.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.LowStockOnly {
		q = q.Where(squirrel.Expr("quantity <= min_stock"))
	}

	return r.selectPage(ctx, q, filter.OrderBy, filter.Limit, filter.Offset)
}

// SetQuantity writes the stock on hand. Only the ledger calls this,
// inside the transaction that appended the matching movement.
func (r *ProductRepo) SetQuantity(ctx context.Context, productID id.ID, quantity int64) error {
	if quantity < 0 {
		return apperror.NewInternal(fmt.Errorf("negative quantity %d for product %s", quantity, productID))
	}

	q := r.Builder().
		Update(productTable).
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build quantity update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID.String())
	}
	return nil
}
