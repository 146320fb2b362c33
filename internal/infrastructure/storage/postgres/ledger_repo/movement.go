// Package ledger_repo provides the PostgreSQL implementation of the
// movement ledger. The movements table is append-only; no update or
// delete statements exist here on purpose.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/storage/postgres"
)

const movementsTable = "movements"

// Compile-time check that MovementRepo implements ledger.Repository.
var _ ledger.Repository = (*MovementRepo)(nil)

// MovementRepo implements ledger.Repository.
type MovementRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
	audit     *postgres.AuditService
}

// NewMovementRepo creates a new movement repository.
// The audit service may be nil; movements are then recorded without
// audit entries.
func NewMovementRepo(txManager *postgres.TxManager, audit *postgres.AuditService) *MovementRepo {
	return &MovementRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		audit:     audit,
	}
}

// Create appends a movement and its audit entry in the caller's
// transaction.
func (r *MovementRepo) Create(ctx context.Context, m *ledger.Movement) error {
	q := r.builder.Insert(movementsTable).
		Columns(
			"id", "product_id", "type",
			"package_quantity", "units_per_package", "unit_quantity",
			"total_units", "reason", "notes", "date",
			"user_id", "user_name", "created_at",
		).
		Values(
			m.ID, m.ProductID, m.Type,
			m.PackageQuantity, m.UnitsPerPackage, m.UnitQuantity,
			m.TotalUnits, m.Reason, m.Notes, m.Date,
			m.UserID, m.UserName, m.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	if r.audit != nil {
		err := r.audit.LogChange(ctx, "movement", m.ID, postgres.AuditActionMovement, map[string]any{
			"product_id":  m.ProductID.String(),
			"type":        string(m.Type),
			"total_units": m.TotalUnits,
			"reason":      m.Reason,
		})
		if err != nil {
			return fmt.Errorf("audit movement: %w", err)
		}
	}

	return nil
}

// GetByID retrieves one movement.
func (r *MovementRepo) GetByID(ctx context.Context, movementID id.ID) (*ledger.Movement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": movementID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m ledger.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List retrieves movements newest first: date desc, created_at desc.
func (r *MovementRepo) List(ctx context.Context, filter ledger.ListFilter) (domain.ListResult[*ledger.Movement], error) {
	result := domain.ListResult[*ledger.Movement]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.applyFilter(r.baseSelect(), filter)

	countQ := r.builder.
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count movements: %w", err)
	}

	q = q.OrderBy("date DESC", "created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list movements: %w", err)
	}

	return result, nil
}

// CountByProduct returns how many movements reference a product.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	q := r.builder.
		Select("COUNT(*)").
		From(movementsTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return count, nil
}

func (r *MovementRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(
			"id", "product_id", "type",
			"package_quantity", "units_per_package", "unit_quantity",
			"total_units", "reason", "notes", "date",
			"user_id", "user_name", "created_at",
		).
		From(movementsTable)
}

func (r *MovementRepo) applyFilter(q squirrel.SelectBuilder, filter ledger.ListFilter) squirrel.SelectBuilder {
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.Reason != "" {
		q = q.Where(squirrel.ILike{"reason": "%" + filter.Reason + "%"})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	return q
}
