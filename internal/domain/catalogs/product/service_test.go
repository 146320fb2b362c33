package product

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo keeps products in a map. Update mirrors the SQL repo's SET
// list: every catalog column is written except quantity, which only
// the ledger touches.
type fakeRepo struct {
	products map[id.ID]*Product

	// afterGetByID runs once after a GetByID, standing in for a
	// movement committing between the service's read and its update
	afterGetByID func()
}

func newFakeRepo(products ...*Product) *fakeRepo {
	r := &fakeRepo{products: make(map[id.ID]*Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (f *fakeRepo) Create(ctx context.Context, p *Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	cp := *p
	if f.afterGetByID != nil {
		f.afterGetByID()
		f.afterGetByID = nil
	}
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Product) error {
	stored, ok := f.products[p.ID]
	if !ok {
		return apperror.NewNotFound("product", p.ID.String())
	}
	cp := *p
	cp.Quantity = stored.Quantity
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, productID id.ID) error {
	if _, ok := f.products[productID]; !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeRepo) SetActive(ctx context.Context, productID id.ID, active bool) error {
	p, ok := f.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.IsActive = active
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	var items []*Product
	for _, p := range f.products {
		items = append(items, p)
	}
	return domain.ListResult[*Product]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, productID id.ID) (bool, error) {
	_, ok := f.products[productID]
	return ok, nil
}

func (f *fakeRepo) GetByCode(ctx context.Context, code string) (*Product, error) {
	for _, p := range f.products {
		if strings.EqualFold(p.Code, code) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("product", code)
}

func (f *fakeRepo) ExistsByCode(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	for _, p := range f.products {
		if p.ID != excludeID && strings.EqualFold(p.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetForUpdate(ctx context.Context, productID id.ID) (*Product, error) {
	return f.GetByID(ctx, productID)
}

func (f *fakeRepo) ListProducts(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error) {
	return f.List(ctx, filter.ListFilter)
}

type fakeCategories struct {
	usable bool
}

func (f *fakeCategories) IsUsable(ctx context.Context, categoryID id.ID) (bool, error) {
	return f.usable, nil
}

type fakeMovements struct {
	counts map[id.ID]int64
}

func (f *fakeMovements) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	return f.counts[productID], nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, &fakeTxManager{}, &fakeCategories{usable: true}, &fakeMovements{counts: make(map[id.ID]int64)})
}

func validProduct(code string) *Product {
	p := NewProduct(code, "Test product", id.New(), 10)
	p.MinStock = 5
	return p
}

func TestCreate_Succeeds(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	p := validProduct("SKU-001")
	require.NoError(t, svc.Create(context.Background(), p))

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", stored.Code)
}

func TestCreate_DuplicateCode(t *testing.T) {
	existing := validProduct("SKU-001")
	repo := newFakeRepo(existing)
	svc := newTestService(repo)

	// Codes are unique case-insensitively
	err := svc.Create(context.Background(), validProduct("sku-001"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicateCode))
}

func TestCreate_InactiveCategoryRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeTxManager{}, &fakeCategories{usable: false}, &fakeMovements{})

	err := svc.Create(context.Background(), validProduct("SKU-001"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, repo.products)
}

func TestUpdate_CodeCollisionRejected(t *testing.T) {
	a := validProduct("SKU-001")
	b := validProduct("SKU-002")
	repo := newFakeRepo(a, b)
	svc := newTestService(repo)

	b.Code = "SKU-001"
	err := svc.Update(context.Background(), b)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicateCode))
}

func TestUpdate_KeepsOwnCode(t *testing.T) {
	p := validProduct("SKU-001")
	repo := newFakeRepo(p)
	svc := newTestService(repo)

	p.Name = "Renamed"
	require.NoError(t, svc.Update(context.Background(), p))

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
}

// A movement committing between the catalog service's read and its
// update must survive: the stored quantity wins over whatever the
// caller sent and over the snapshot the service read.
func TestUpdate_NeverRevertsLedgerQuantity(t *testing.T) {
	p := validProduct("SKU-001")
	p.Quantity = 10
	repo := newFakeRepo(p)
	svc := newTestService(repo)

	// The movement lands right after the service pins the quantity
	repo.afterGetByID = func() {
		repo.products[p.ID].Quantity = 15
	}

	update := *p
	update.Name = "Renamed"
	update.Quantity = 10 // stale value from the caller's earlier read
	require.NoError(t, svc.Update(context.Background(), &update))

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, int64(15), stored.Quantity)
}

func TestDelete_BlockedByMovements(t *testing.T) {
	p := validProduct("SKU-001")
	repo := newFakeRepo(p)
	movements := &fakeMovements{counts: map[id.ID]int64{p.ID: 3}}
	svc := NewService(repo, &fakeTxManager{}, &fakeCategories{usable: true}, movements)

	err := svc.Delete(context.Background(), p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeHasMovements))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(3), appErr.Details["movements"])

	// Still there
	_, err = repo.GetByID(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestDelete_SucceedsWithoutMovements(t *testing.T) {
	p := validProduct("SKU-001")
	repo := newFakeRepo(p)
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err := repo.GetByID(context.Background(), p.ID)
	assert.True(t, apperror.IsNotFound(err))
}
