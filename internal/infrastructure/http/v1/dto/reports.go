package dto

// StockReportRequest filters the stock report.
type StockReportRequest struct {
	CategoryID      string   `form:"categoryId"`
	ProductIDs      []string `form:"productIds"`
	Status          string   `form:"status"`
	IncludeInactive bool     `form:"includeInactive"`
	Limit           int      `form:"limit"`
	Offset          int      `form:"offset"`
}

// MovementsSummaryRequest bounds the movements summary.
type MovementsSummaryRequest struct {
	DateFrom  *string `form:"dateFrom"`
	DateTo    *string `form:"dateTo"`
	ProductID string  `form:"productId"`
	Reason    string  `form:"reason"`
}
