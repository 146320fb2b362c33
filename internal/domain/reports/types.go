// Package reports provides read-only reporting over the catalog and
// the movement ledger. Reports are recomputed per call; nothing here
// mutates state.
package reports

import (
	"time"

	"stockyard/internal/core/id"
	"stockyard/internal/core/types"
	"stockyard/internal/domain/packaging"
)

// StockStatus classifies a product's stock level.
type StockStatus string

const (
	StatusOK  StockStatus = "ok"
	StatusLow StockStatus = "low"
	StatusOut StockStatus = "out"
)

// ClassifyStock derives the status from quantity and threshold.
// Zero is always out of stock, even with a zero threshold.
func ClassifyStock(quantity, minStock int64) StockStatus {
	switch {
	case quantity == 0:
		return StatusOut
	case quantity <= minStock:
		return StatusLow
	default:
		return StatusOK
	}
}

// --- Stock Report ---

// StockReportFilter defines filters for the stock report.
type StockReportFilter struct {
	// CategoryID limits to one category
	CategoryID *id.ID

	// ProductIDs limits to specific products
	ProductIDs []id.ID

	// Status keeps only rows with the given status
	Status *StockStatus

	// IncludeInactive includes deactivated products
	IncludeInactive bool

	// Pagination
	Limit  int
	Offset int
}

// StockReportItem is one row of the stock report.
type StockReportItem struct {
	ProductID    id.ID  `json:"productId"`
	ProductCode  string `json:"productCode"`
	ProductName  string `json:"productName"`
	CategoryName string `json:"categoryName"`

	// Quantities in canonical units
	Quantity     int64 `json:"quantity"`
	MinStock     int64 `json:"minStock"`
	EntriesTotal int64 `json:"entriesTotal"`
	ExitsTotal   int64 `json:"exitsTotal"`

	// Breakdown at the product's current default ratio
	UnitsPerPackage int                 `json:"unitsPerPackage"`
	Breakdown       packaging.Breakdown `json:"breakdown"`

	// Valuation at the current unit price
	UnitPrice  types.Money `json:"unitPrice"`
	StockValue types.Money `json:"stockValue"`

	LastMovementAt *time.Time  `json:"lastMovementAt,omitempty"`
	Status         StockStatus `json:"status"`
}

// StockReport is the full stock report.
type StockReport struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Items       []StockReportItem `json:"items"`
	TotalItems  int64             `json:"totalItems"`

	// Summary
	TotalQuantity int64       `json:"totalQuantity"`
	TotalValue    types.Money `json:"totalValue"`
	LowCount      int64       `json:"lowCount"`
	OutCount      int64       `json:"outCount"`
}

// --- Movements Summary ---

// MovementsSummaryFilter defines filters for the movements summary.
type MovementsSummaryFilter struct {
	// Period bounds the business date (inclusive); zero means open-ended
	DateFrom *time.Time
	DateTo   *time.Time

	// ProductID limits to one product
	ProductID *id.ID

	// Reason is a case-insensitive substring match
	Reason string
}

// MovementsSummary aggregates ledger activity over a period.
type MovementsSummary struct {
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`

	EntryCount int64 `json:"entryCount"`
	ExitCount  int64 `json:"exitCount"`
	EntryUnits int64 `json:"entryUnits"`
	ExitUnits  int64 `json:"exitUnits"`

	// NetUnits is entries minus exits over the period
	NetUnits int64 `json:"netUnits"`
}
