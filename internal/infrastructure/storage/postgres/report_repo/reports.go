// Package report_repo provides the PostgreSQL implementation of the
// reporting repository. All queries are read-only.
package report_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"stockyard/internal/core/id"
	"stockyard/internal/core/types"
	"stockyard/internal/domain/packaging"
	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/storage/postgres"
)

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

type stockRow struct {
	ProductID       id.ID       `db:"product_id"`
	ProductCode     string      `db:"product_code"`
	ProductName     string      `db:"product_name"`
	CategoryName    string      `db:"category_name"`
	Quantity        int64       `db:"quantity"`
	MinStock        int64       `db:"min_stock"`
	UnitsPerPackage int         `db:"units_per_package"`
	UnitPrice       types.Money `db:"unit_price"`
	EntriesTotal    int64       `db:"entries_total"`
	ExitsTotal      int64       `db:"exits_total"`
	LastMovementAt  *time.Time  `db:"last_movement_at"`
}

type stockTotalsRow struct {
	TotalItems    int64       `db:"total_items"`
	TotalQuantity int64       `db:"total_quantity"`
	TotalValue    types.Money `db:"total_value"`
	LowCount      int64       `db:"low_count"`
	OutCount      int64       `db:"out_count"`
}

// GetStockReport generates the per-product stock report. Movement
// aggregates come from a single grouped subquery over the ledger;
// breakdown, value and status are derived in Go per row.
func (r *ReportRepo) GetStockReport(ctx context.Context, filter reports.StockReportFilter) (*reports.StockReport, error) {
	where, args := buildStockFilter(filter)

	query := fmt.Sprintf(`
		SELECT
			p.id as product_id,
			p.code as product_code,
			p.name as product_name,
			c.name as category_name,
			p.quantity,
			p.min_stock,
			p.units_per_package,
			p.unit_price,
			COALESCE(m.entries_total, 0) as entries_total,
			COALESCE(m.exits_total, 0) as exits_total,
			m.last_movement_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		LEFT JOIN (
			SELECT
				product_id,
				SUM(CASE WHEN type = 'entry' THEN total_units ELSE 0 END) as entries_total,
				SUM(CASE WHEN type = 'exit' THEN total_units ELSE 0 END) as exits_total,
				MAX(created_at) as last_movement_at
			FROM movements
			GROUP BY product_id
		) m ON m.product_id = p.id
		%s
		ORDER BY p.name
		LIMIT %d OFFSET %d
	`, where, filter.Limit, filter.Offset)

	querier := r.txManager.GetQuerier(ctx)

	var rows []stockRow
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}

	totalsQuery := fmt.Sprintf(`
		SELECT
			COUNT(*) as total_items,
			COALESCE(SUM(p.quantity), 0) as total_quantity,
			COALESCE(SUM(p.quantity * p.unit_price), 0) as total_value,
			COUNT(*) FILTER (WHERE p.quantity > 0 AND p.quantity <= p.min_stock) as low_count,
			COUNT(*) FILTER (WHERE p.quantity = 0) as out_count
		FROM products p
		%s
	`, where)

	var totals stockTotalsRow
	if err := pgxscan.Get(ctx, querier, &totals, totalsQuery, args...); err != nil {
		return nil, fmt.Errorf("stock report totals: %w", err)
	}

	items := make([]reports.StockReportItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, reports.StockReportItem{
			ProductID:       row.ProductID,
			ProductCode:     row.ProductCode,
			ProductName:     row.ProductName,
			CategoryName:    row.CategoryName,
			Quantity:        row.Quantity,
			MinStock:        row.MinStock,
			EntriesTotal:    row.EntriesTotal,
			ExitsTotal:      row.ExitsTotal,
			UnitsPerPackage: row.UnitsPerPackage,
			Breakdown:       packaging.Decompose(row.Quantity, row.UnitsPerPackage),
			UnitPrice:       row.UnitPrice,
			StockValue:      types.MoneyFromUnits(row.Quantity, row.UnitPrice),
			LastMovementAt:  row.LastMovementAt,
			Status:          reports.ClassifyStock(row.Quantity, row.MinStock),
		})
	}

	return &reports.StockReport{
		Items:         items,
		TotalItems:    totals.TotalItems,
		TotalQuantity: totals.TotalQuantity,
		TotalValue:    totals.TotalValue,
		LowCount:      totals.LowCount,
		OutCount:      totals.OutCount,
	}, nil
}

// buildStockFilter assembles the WHERE clause shared by the row and
// totals queries. Both queries alias products as p.
func buildStockFilter(filter reports.StockReportFilter) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if !filter.IncludeInactive {
		conditions = append(conditions, "p.is_active = true")
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if len(filter.ProductIDs) > 0 {
		placeholders := make([]string, len(filter.ProductIDs))
		for i, pID := range filter.ProductIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, pID)
			argIndex++
		}
		conditions = append(conditions, fmt.Sprintf("p.id IN (%s)", strings.Join(placeholders, ",")))
	}

	if filter.Status != nil {
		conditions = append(conditions, statusPredicate(*filter.Status))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// statusPredicate mirrors reports.ClassifyStock in SQL.
func statusPredicate(status reports.StockStatus) string {
	switch status {
	case reports.StatusOut:
		return "p.quantity = 0"
	case reports.StatusLow:
		return "p.quantity > 0 AND p.quantity <= p.min_stock"
	default:
		return "p.quantity > p.min_stock"
	}
}

type summaryRow struct {
	EntryCount int64 `db:"entry_count"`
	ExitCount  int64 `db:"exit_count"`
	EntryUnits int64 `db:"entry_units"`
	ExitUnits  int64 `db:"exit_units"`
}

// GetMovementsSummary aggregates ledger activity over a period.
func (r *ReportRepo) GetMovementsSummary(ctx context.Context, filter reports.MovementsSummaryFilter) (*reports.MovementsSummary, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIndex))
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIndex))
		args = append(args, *filter.DateTo)
		argIndex++
	}
	if filter.ProductID != nil {
		conditions = append(conditions, fmt.Sprintf("product_id = $%d", argIndex))
		args = append(args, *filter.ProductID)
		argIndex++
	}
	if filter.Reason != "" {
		conditions = append(conditions, fmt.Sprintf("reason ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Reason+"%")
		argIndex++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE type = 'entry') as entry_count,
			COUNT(*) FILTER (WHERE type = 'exit') as exit_count,
			COALESCE(SUM(CASE WHEN type = 'entry' THEN total_units ELSE 0 END), 0) as entry_units,
			COALESCE(SUM(CASE WHEN type = 'exit' THEN total_units ELSE 0 END), 0) as exit_units
		FROM movements
		%s
	`, where)

	var row summaryRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &row, query, args...); err != nil {
		return nil, fmt.Errorf("movements summary: %w", err)
	}

	return &reports.MovementsSummary{
		EntryCount: row.EntryCount,
		ExitCount:  row.ExitCount,
		EntryUnits: row.EntryUnits,
		ExitUnits:  row.ExitUnits,
	}, nil
}
