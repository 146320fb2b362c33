package reports

import (
	"context"
)

// Repository defines report data access.
type Repository interface {
	GetStockReport(ctx context.Context, filter StockReportFilter) (*StockReport, error)
	GetMovementsSummary(ctx context.Context, filter MovementsSummaryFilter) (*MovementsSummary, error)
}
