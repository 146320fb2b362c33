package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// MovementHandler handles movement ledger routes.
type MovementHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewMovementHandler creates the movement handler.
func NewMovementHandler(base *BaseHandler, service *ledger.Service) *MovementHandler {
	return &MovementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Record handles POST /movements.
func (h *MovementHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format").WithDetail("field", "productId"))
		return
	}

	movementType, err := ledger.ParseMovementType(req.Type)
	if err != nil {
		h.Error(c, err)
		return
	}

	input := ledger.RecordMovementInput{
		ProductID:       productID,
		Type:            movementType,
		PackageQuantity: req.PackageQuantity,
		UnitQuantity:    req.UnitQuantity,
		UnitsPerPackage: req.UnitsPerPackage,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	m, err := h.service.RecordMovement(ctx, input)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMovement(m))
}

// Get handles GET /movements/:id.
func (h *MovementHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	movementID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	m, err := h.service.GetByID(ctx, movementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMovement(m))
}

// List handles GET /movements.
func (h *MovementHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MovementListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := h.buildFilter(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

// ListByProduct handles GET /products/:id/movements.
func (h *MovementHandler) ListByProduct(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.MovementListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter, err := h.buildFilter(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := h.service.ListByProduct(ctx, productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result.Items, result.TotalCount, result.Limit, result.Offset)
}

func (h *MovementHandler) buildFilter(req dto.MovementListRequest) (ledger.ListFilter, error) {
	filter := ledger.ListFilter{
		Reason:   req.Reason,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}

	if req.ProductID != "" {
		productID, err := id.Parse(req.ProductID)
		if err != nil {
			return filter, apperror.NewValidation("invalid productId format").WithDetail("field", "productId")
		}
		filter.ProductID = &productID
	}

	if req.Type != "" {
		movementType, err := ledger.ParseMovementType(req.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &movementType
	}

	return filter, nil
}

func (h *MovementHandler) respondList(c *gin.Context, movements []*ledger.Movement, total int64, limit, offset int) {
	items := make([]any, len(movements))
	for i, m := range movements {
		items[i] = dto.FromMovement(m)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	})
}
