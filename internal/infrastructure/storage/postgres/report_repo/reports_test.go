package report_repo

import (
	"testing"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/reports"
)

func TestBuildStockFilter(t *testing.T) {
	categoryID := id.New()
	p1, p2 := id.New(), id.New()
	low := reports.StatusLow

	tests := []struct {
		name      string
		filter    reports.StockReportFilter
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "default filters active products",
			filter:    reports.StockReportFilter{},
			wantWhere: "WHERE p.is_active = true",
			wantArgs:  0,
		},
		{
			name:      "include inactive drops all conditions",
			filter:    reports.StockReportFilter{IncludeInactive: true},
			wantWhere: "",
			wantArgs:  0,
		},
		{
			name:      "category",
			filter:    reports.StockReportFilter{IncludeInactive: true, CategoryID: &categoryID},
			wantWhere: "WHERE p.category_id = $1",
			wantArgs:  1,
		},
		{
			name:      "product list",
			filter:    reports.StockReportFilter{IncludeInactive: true, ProductIDs: []id.ID{p1, p2}},
			wantWhere: "WHERE p.id IN ($1,$2)",
			wantArgs:  2,
		},
		{
			name:      "status low",
			filter:    reports.StockReportFilter{IncludeInactive: true, Status: &low},
			wantWhere: "WHERE p.quantity > 0 AND p.quantity <= p.min_stock",
			wantArgs:  0,
		},
		{
			name:      "combined placeholders stay in order",
			filter:    reports.StockReportFilter{CategoryID: &categoryID, ProductIDs: []id.ID{p1}},
			wantWhere: "WHERE p.is_active = true AND p.category_id = $1 AND p.id IN ($2)",
			wantArgs:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildStockFilter(tt.filter)
			if where != tt.wantWhere {
				t.Errorf("WHERE mismatch\nwant: %s\ngot:  %s", tt.wantWhere, where)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("Args count mismatch\nwant: %d\ngot:  %d", tt.wantArgs, len(args))
			}
		})
	}
}

func TestStatusPredicate(t *testing.T) {
	tests := []struct {
		status reports.StockStatus
		want   string
	}{
		{reports.StatusOut, "p.quantity = 0"},
		{reports.StatusLow, "p.quantity > 0 AND p.quantity <= p.min_stock"},
		{reports.StatusOK, "p.quantity > p.min_stock"},
	}

	for _, tt := range tests {
		if got := statusPredicate(tt.status); got != tt.want {
			t.Errorf("statusPredicate(%s)\nwant: %s\ngot:  %s", tt.status, tt.want, got)
		}
	}
}
