package ledger

import (
	"context"
	"fmt"
	"time"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
	"stockyard/internal/core/id"
	"stockyard/internal/core/tx"
	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/domain/packaging"
	"stockyard/pkg/logger"
)

// ProductStore is the slice of product persistence the ledger needs.
// GetForUpdate must take a row lock that survives until the enclosing
// transaction ends; that lock is what serializes stock mutations per
// product while leaving different products fully parallel.
type ProductStore interface {
	GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error)
	SetQuantity(ctx context.Context, productID id.ID, quantity int64) error
}

// RecordMovementInput carries everything needed to record one movement.
type RecordMovementInput struct {
	ProductID id.ID
	Type      MovementType

	// Packaging form. UnitsPerPackage overrides the product's default
	// ratio when set (supplier pack sizes change over time).
	PackageQuantity int
	UnitQuantity    int
	UnitsPerPackage *int

	Reason string
	Notes  string

	// Date defaults to now when zero
	Date time.Time

	// Actor identity; defaulted from request context when empty
	UserID   string
	UserName string
}

// Service is the stock consistency engine. All stock mutations flow
// through RecordMovement; nothing else writes product quantities.
type Service struct {
	repo      Repository
	products  ProductStore
	txManager tx.Manager
}

// NewService creates a new ledger service.
func NewService(repo Repository, products ProductStore, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		txManager: txManager,
	}
}

// RecordMovement validates, locks the product row, applies the stock
// delta and appends the movement, all in one transaction. On any
// failure nothing is written.
func (s *Service) RecordMovement(ctx context.Context, input RecordMovementInput) (*Movement, error) {
	if id.IsNil(input.ProductID) {
		return nil, apperror.NewValidation("productId is required").
			WithDetail("field", "productId")
	}
	if input.Type != TypeEntry && input.Type != TypeExit {
		return nil, apperror.NewInvalidInput("movement type must be entry or exit").
			WithDetail("field", "type")
	}
	if input.UnitsPerPackage != nil && *input.UnitsPerPackage < 1 {
		return nil, apperror.NewInvalidInput("units per package must be at least 1").
			WithDetail("field", "unitsPerPackage")
	}

	m := NewMovement(input.ProductID, input.Type)
	m.PackageQuantity = input.PackageQuantity
	m.UnitQuantity = input.UnitQuantity
	m.Reason = input.Reason
	if input.Notes != "" {
		m.Notes = &input.Notes
	}
	m.Date = input.Date
	if m.Date.IsZero() {
		m.Date = time.Now().UTC()
	}

	m.UserID = input.UserID
	m.UserName = input.UserName
	if m.UserID == "" {
		m.UserID = appctx.GetUserID(ctx)
	}
	if m.UserName == "" {
		m.UserName = appctx.GetUserName(ctx)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("product", input.ProductID.String())
			}
			return fmt.Errorf("lock product: %w", err)
		}

		ratio := p.UnitsPerPackage
		if input.UnitsPerPackage != nil {
			ratio = *input.UnitsPerPackage
		}
		m.UnitsPerPackage = ratio

		total, err := packaging.TotalUnits(input.PackageQuantity, input.UnitQuantity, ratio)
		if err != nil {
			return err
		}
		m.TotalUnits = total

		if err := m.Validate(ctx); err != nil {
			return err
		}

		newQuantity := p.Quantity + m.SignedUnits()
		if newQuantity < 0 {
			return apperror.NewInsufficientStock(p.ID.String(), total, p.Quantity)
		}

		if err := s.repo.Create(ctx, m); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		if err := s.products.SetQuantity(ctx, p.ID, newQuantity); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement recorded",
		"movement_id", m.ID.String(),
		"product_id", m.ProductID.String(),
		"type", string(m.Type),
		"total_units", m.TotalUnits,
	)
	return m, nil
}

// GetByID retrieves one movement.
func (s *Service) GetByID(ctx context.Context, movementID id.ID) (*Movement, error) {
	m, err := s.repo.GetByID(ctx, movementID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, err
	}
	return m, nil
}

// List retrieves movements with filtering, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}

// ListByProduct retrieves the ledger slice for one product.
func (s *Service) ListByProduct(ctx context.Context, productID id.ID, filter ListFilter) (domain.ListResult[*Movement], error) {
	filter.ProductID = &productID
	return s.List(ctx, filter)
}

// CountByProduct returns how many movements reference a product.
// Exposed for the product deletion guard.
func (s *Service) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	return s.repo.CountByProduct(ctx, productID)
}
