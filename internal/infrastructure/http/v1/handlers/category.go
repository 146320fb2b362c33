package handlers

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/category"
	"stockyard/internal/infrastructure/http/v1/dto"
)

// CategoryHandler handles category catalog routes.
type CategoryHandler struct {
	*CatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]
	service *category.Service
}

// NewCategoryHandler creates the category handler.
func NewCategoryHandler(base *BaseHandler, service *category.Service) *CategoryHandler {
	config := CatalogHandlerConfig[
		*category.Category,
		dto.CreateCategoryRequest,
		dto.UpdateCategoryRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "category",

		MapCreateDTO: func(req dto.CreateCategoryRequest) (*category.Category, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) (*category.Category, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(c *category.Category) any {
			return dto.FromCategory(c)
		},
	}

	return &CategoryHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Delete handles DELETE /categories/:id as soft deactivation. Products
// keep their reference; the category just stops accepting new ones.
func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	categoryID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Deactivate(ctx, categoryID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
