package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/reports"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStock handles GET /reports/stock
func (h *ReportsHandler) GetStock(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StockReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := reports.StockReportFilter{
		IncludeInactive: req.IncludeInactive,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}

	if req.CategoryID != "" {
		categoryID, err := id.Parse(req.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId format"))
			return
		}
		filter.CategoryID = &categoryID
	}

	for _, pStr := range req.ProductIDs {
		pID, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid product id in productIds").WithDetail("value", pStr))
			return
		}
		filter.ProductIDs = append(filter.ProductIDs, pID)
	}

	if req.Status != "" {
		status := reports.StockStatus(req.Status)
		filter.Status = &status
	}

	report, err := h.service.GetStockReport(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetMovementsSummary handles GET /reports/movements-summary
func (h *ReportsHandler) GetMovementsSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MovementsSummaryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := reports.MovementsSummaryFilter{
		Reason: req.Reason,
	}

	if req.DateFrom != nil {
		t, err := time.Parse(time.RFC3339, *req.DateFrom)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateFrom format, expected RFC3339"))
			return
		}
		filter.DateFrom = &t
	}
	if req.DateTo != nil {
		t, err := time.Parse(time.RFC3339, *req.DateTo)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dateTo format, expected RFC3339"))
			return
		}
		filter.DateTo = &t
	}

	if req.ProductID != "" {
		productID, err := id.Parse(req.ProductID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &productID
	}

	summary, err := h.service.GetMovementsSummary(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
