package category

import (
	"context"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// Service provides business logic for the Category catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService[*Category](repo, txManager, "category")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().On(domain.BeforeDelete, svc.guardReferenced)

	return svc
}

// guardReferenced rejects hard deletion of a category any product
// still points at. Deactivate is the supported path for those.
func (s *Service) guardReferenced(ctx context.Context, c *Category) error {
	count, err := s.repo.CountProducts(ctx, c.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("category is referenced by products and cannot be deleted").
			WithDetail("category_id", c.ID.String()).
			WithDetail("products", count)
	}
	return nil
}

// Deactivate soft-deletes the category. Existing products keep their
// reference; only new product creation under it is blocked.
func (s *Service) Deactivate(ctx context.Context, categoryID id.ID) error {
	return s.SetActive(ctx, categoryID, false)
}

// IsUsable reports whether a category exists and is active,
// i.e. valid as a target for new products.
func (s *Service) IsUsable(ctx context.Context, categoryID id.ID) (bool, error) {
	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return c.IsActive, nil
}
