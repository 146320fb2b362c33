package product

import (
	"context"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
)

// CategoryChecker answers whether a category may receive new products.
// Implemented by the category service; kept as a local interface to
// avoid coupling the catalogs to each other.
type CategoryChecker interface {
	IsUsable(ctx context.Context, categoryID id.ID) (bool, error)
}

// MovementCounter reports how many ledger movements reference a product.
// Implemented by the ledger repository.
type MovementCounter interface {
	CountByProduct(ctx context.Context, productID id.ID) (int64, error)
}

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo       Repository
	categories CategoryChecker
	movements  MovementCounter
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, categories CategoryChecker, movements MovementCounter) *Service {
	base := domain.NewCatalogService[*Product](repo, txManager, "product")

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		categories:     categories,
		movements:      movements,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForUpdate)
	base.Hooks().On(domain.BeforeDelete, svc.guardMovements)

	return svc
}

// prepareForCreate enforces code uniqueness and category usability.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	exists, err := s.repo.ExistsByCode(ctx, p.NormalizedCode(), id.Nil())
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicateCode("product", p.Code)
	}

	usable, err := s.categories.IsUsable(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if !usable {
		return apperror.NewValidation("category does not exist or is inactive").
			WithDetail("field", "categoryId").
			WithDetail("category_id", p.CategoryID.String())
	}

	return nil
}

// prepareForUpdate re-checks code uniqueness against other products.
func (s *Service) prepareForUpdate(ctx context.Context, p *Product) error {
	exists, err := s.repo.ExistsByCode(ctx, p.NormalizedCode(), p.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicateCode("product", p.Code)
	}
	return nil
}

// guardMovements blocks deletion of products the ledger references.
// The movement history must stay interpretable.
func (s *Service) guardMovements(ctx context.Context, p *Product) error {
	count, err := s.movements.CountByProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewHasMovements(p.ID.String(), count)
	}
	return nil
}

// Update modifies catalog fields. The quantity on hand is owned by the
// ledger: whatever the caller sends, the stored value wins.
func (s *Service) Update(ctx context.Context, p *Product) error {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("product", p.ID.String())
		}
		return err
	}
	p.Quantity = current.Quantity

	return s.CatalogService.Update(ctx, p)
}

// GetByCode retrieves a product by its code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Product, error) {
	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", code)
		}
		return nil, err
	}
	return p, nil
}

// ListProducts retrieves products with the extended filter.
func (s *Service) ListProducts(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.ListProducts(ctx, filter)
}
