package reports

import (
	"context"
	"fmt"
	"time"

	"stockyard/internal/core/apperror"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStockReport generates the per-product stock report.
func (s *Service) GetStockReport(ctx context.Context, filter StockReportFilter) (*StockReport, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}
	if filter.Status != nil {
		switch *filter.Status {
		case StatusOK, StatusLow, StatusOut:
		default:
			return nil, apperror.NewInvalidInput("status must be ok, low or out").
				WithDetail("field", "status")
		}
	}

	report, err := s.repo.GetStockReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get stock report: %w", err)
	}
	report.GeneratedAt = time.Now().UTC()
	return report, nil
}

// GetMovementsSummary aggregates ledger activity over a period.
func (s *Service) GetMovementsSummary(ctx context.Context, filter MovementsSummaryFilter) (*MovementsSummary, error) {
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, apperror.NewInvalidInput("dateFrom must not be after dateTo").
			WithDetail("field", "dateFrom")
	}

	summary, err := s.repo.GetMovementsSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get movements summary: %w", err)
	}
	summary.NetUnits = summary.EntryUnits - summary.ExitUnits
	summary.DateFrom = filter.DateFrom
	summary.DateTo = filter.DateTo
	return summary, nil
}
