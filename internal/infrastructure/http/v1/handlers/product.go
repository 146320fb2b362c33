package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles product catalog routes. It builds on the
// generic catalog handler but routes mutations through the product
// service so its hooks and the quantity guard always apply.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates the product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) (*product.Product, error) {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) (*product.Product, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// List handles GET /products with the product-specific filter.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := product.ListFilter{ListFilter: h.ParseFilter(c)}

	if categoryStr := c.Query("categoryId"); categoryStr != "" {
		categoryID, err := id.Parse(categoryStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId format"))
			return
		}
		filter.CategoryID = &categoryID
	}
	filter.LowStockOnly = c.Query("lowStock") == "true"

	result, err := h.service.ListProducts(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromProduct(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Update handles PUT /products/:id through the product service, which
// keeps the stored quantity regardless of what the client sends.
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(existing); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(ctx, existing); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(existing))
}

// GetByCode handles GET /products/code/:code.
func (h *ProductHandler) GetByCode(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Param("code")
	if code == "" {
		h.Error(c, apperror.NewValidation("code is required"))
		return
	}

	p, err := h.service.GetByCode(ctx, code)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(p))
}
