// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/entity"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/pkg/logger"
)

// CatalogService provides shared business logic for catalog entities.
// Entity-specific rules (uniqueness, referential guards) are attached
// through the hook registry by the owning package.
type CatalogService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](repo CatalogRepository[T], txManager tx.Manager, entityName string) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       repo,
		txManager:  txManager,
		hooks:      NewHookRegistry[T](),
		entityName: entityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, entityID any) error {
	if err == nil {
		return nil
	}
	// Preserve existing AppError, but map not-found to the correct entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, entityID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", entityID)
}

// Create creates a new catalog entity.
func (s *CatalogService[T]) Create(ctx context.Context, e T) error {
	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Uniqueness hooks run inside the transaction so the check and
		// the insert see the same snapshot.
		if err := s.hooks.Run(ctx, BeforeCreate, e); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterCreate, e)
	})
	if err != nil {
		return err
	}

	logger.Debug(ctx, "catalog entity created", "entity", s.entityName)
	return nil
}

// GetByID retrieves entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID.String())
	}
	return e, nil
}

// Update updates an existing entity.
func (s *CatalogService[T]) Update(ctx context.Context, e T) error {
	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeUpdate, e); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterUpdate, e)
	})
}

// Delete removes the entity after its before-delete guards pass.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.hooks.Run(ctx, BeforeDelete, e); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, entityID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return s.hooks.Run(ctx, AfterDelete, e)
	})
}

// SetActive flips the soft-deactivation flag.
func (s *CatalogService[T]) SetActive(ctx context.Context, entityID id.ID, active bool) error {
	if err := s.repo.SetActive(ctx, entityID, active); err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}
	return nil
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if entity exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}
