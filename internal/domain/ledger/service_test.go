package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	appctx "stockyard/internal/core/context"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
	"stockyard/internal/domain/catalogs/product"
)

// fakeTxManager serializes transactions with a mutex, standing in for
// the row lock the postgres store takes with FOR UPDATE.
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[id.ID]*product.Product
}

func newFakeProductStore(products ...*product.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[id.ID]*product.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (f *fakeProductStore) GetForUpdate(ctx context.Context, productID id.ID) (*product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) SetQuantity(ctx context.Context, productID id.ID, quantity int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return apperror.NewNotFound("product", productID.String())
	}
	p.Quantity = quantity
	return nil
}

func (f *fakeProductStore) quantity(productID id.ID) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[productID].Quantity
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*Movement
	createErr error
}

func (f *fakeMovementRepo) Create(ctx context.Context, m *Movement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(ctx context.Context, movementID id.ID) (*Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.movements {
		if m.ID == movementID {
			return m, nil
		}
	}
	return nil, apperror.NewNotFound("movement", movementID.String())
}

func (f *fakeMovementRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []*Movement
	for _, m := range f.movements {
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		items = append(items, m)
	}
	return domain.ListResult[*Movement]{Items: items, TotalCount: int64(len(items))}, nil
}

func (f *fakeMovementRepo) CountByProduct(ctx context.Context, productID id.ID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMovementRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.movements)
}

func newTestService(products ...*product.Product) (*Service, *fakeMovementRepo, *fakeProductStore) {
	repo := &fakeMovementRepo{}
	store := newFakeProductStore(products...)
	svc := NewService(repo, store, &fakeTxManager{})
	return svc, repo, store
}

func testProduct(quantity int64, unitsPerPackage int) *product.Product {
	p := product.NewProduct("SKU-001", "Test product", id.New(), unitsPerPackage)
	p.Quantity = quantity
	return p
}

func TestRecordMovement_EntryIncreasesStock(t *testing.T) {
	p := testProduct(10, 12)
	svc, repo, store := newTestService(p)

	m, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID:       p.ID,
		Type:            TypeEntry,
		PackageQuantity: 3,
		UnitQuantity:    5,
		Reason:          "purchase",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(41), m.TotalUnits)
	assert.Equal(t, 12, m.UnitsPerPackage)
	assert.Equal(t, int64(51), store.quantity(p.ID))
	assert.Equal(t, 1, repo.count())
}

func TestRecordMovement_ExitDecreasesStock(t *testing.T) {
	p := testProduct(50, 12)
	svc, _, store := newTestService(p)

	m, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID:    p.ID,
		Type:         TypeExit,
		UnitQuantity: 35,
		Reason:       "sale",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(-35), m.SignedUnits())
	assert.Equal(t, int64(15), store.quantity(p.ID))
}

func TestRecordMovement_InsufficientStock(t *testing.T) {
	p := testProduct(50, 1)
	svc, repo, store := newTestService(p)
	ctx := context.Background()

	_, err := svc.RecordMovement(ctx, RecordMovementInput{
		ProductID: p.ID, Type: TypeExit, UnitQuantity: 35, Reason: "sale",
	})
	require.NoError(t, err)
	require.Equal(t, int64(15), store.quantity(p.ID))

	_, err = svc.RecordMovement(ctx, RecordMovementInput{
		ProductID: p.ID, Type: TypeExit, UnitQuantity: 20, Reason: "sale",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, int64(20), appErr.Details["requested"])
	assert.Equal(t, int64(15), appErr.Details["available"])

	// Nothing written by the failed attempt
	assert.Equal(t, int64(15), store.quantity(p.ID))
	assert.Equal(t, 1, repo.count())
}

func TestRecordMovement_ExitToExactlyZero(t *testing.T) {
	p := testProduct(15, 1)
	svc, _, store := newTestService(p)

	_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID: p.ID, Type: TypeExit, UnitQuantity: 15, Reason: "sale",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.quantity(p.ID))
}

func TestRecordMovement_ZeroEffectRejected(t *testing.T) {
	p := testProduct(10, 12)
	svc, repo, _ := newTestService(p)

	_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID: p.ID, Type: TypeEntry, Reason: "purchase",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidInput))
	assert.Equal(t, 0, repo.count())
}

func TestRecordMovement_ReasonRequired(t *testing.T) {
	p := testProduct(10, 12)
	svc, _, _ := newTestService(p)

	_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID: p.ID, Type: TypeEntry, UnitQuantity: 1, Reason: "   ",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRecordMovement_UnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID: id.New(), Type: TypeEntry, UnitQuantity: 1, Reason: "purchase",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordMovement_InvalidType(t *testing.T) {
	p := testProduct(10, 12)
	svc, _, _ := newTestService(p)

	_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID: p.ID, Type: "transfer", UnitQuantity: 1, Reason: "x",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidInput))
}

func TestRecordMovement_RatioOverride(t *testing.T) {
	p := testProduct(0, 12)
	svc, _, store := newTestService(p)

	override := 6
	m, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID:       p.ID,
		Type:            TypeEntry,
		PackageQuantity: 2,
		UnitsPerPackage: &override,
		Reason:          "purchase",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, m.UnitsPerPackage)
	assert.Equal(t, int64(12), m.TotalUnits)
	assert.Equal(t, int64(12), store.quantity(p.ID))
}

func TestRecordMovement_ActorFromContext(t *testing.T) {
	p := testProduct(10, 1)
	svc, _, _ := newTestService(p)

	ctx := appctx.WithActor(context.Background(), &appctx.ActorContext{
		UserID:   "u-42",
		UserName: "Dana",
	})

	m, err := svc.RecordMovement(ctx, RecordMovementInput{
		ProductID: p.ID, Type: TypeEntry, UnitQuantity: 1, Reason: "purchase",
	})
	require.NoError(t, err)

	assert.Equal(t, "u-42", m.UserID)
	assert.Equal(t, "Dana", m.UserName)
}

// Concurrent recorders against one product must serialize on the lock:
// the final quantity equals the initial plus the sum of all deltas and
// every movement lands in the ledger.
func TestRecordMovement_ConcurrentEntries(t *testing.T) {
	const workers = 20
	p := testProduct(100, 1)
	svc, repo, store := newTestService(p)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
				ProductID: p.ID, Type: TypeEntry, UnitQuantity: 3, Reason: "restock",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100+workers*3), store.quantity(p.ID))
	assert.Equal(t, workers, repo.count())
}

// Mixed concurrent exits must never drive the quantity negative even
// when total demand exceeds supply; the overflow requests fail cleanly.
func TestRecordMovement_ConcurrentExitsNeverNegative(t *testing.T) {
	const workers = 10
	p := testProduct(21, 1) // room for 7 exits of 3
	svc, repo, store := newTestService(p)

	var wg sync.WaitGroup
	var failures int64
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
				ProductID: p.ID, Type: TypeExit, UnitQuantity: 3, Reason: "sale",
			})
			if err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), failures)
	assert.Equal(t, int64(0), store.quantity(p.ID))
	assert.Equal(t, workers-3, repo.count())
}

func TestRecordMovement_CreateFailureLeavesStockUntouched(t *testing.T) {
	p := testProduct(10, 1)
	repo := &fakeMovementRepo{createErr: apperror.NewStorage(assert.AnError)}
	store := newFakeProductStore(p)
	svc := NewService(repo, store, &fakeTxManager{})

	_, err := svc.RecordMovement(context.Background(), RecordMovementInput{
		ProductID: p.ID, Type: TypeEntry, UnitQuantity: 1, Reason: "purchase",
	})
	require.Error(t, err)
	assert.Equal(t, int64(10), store.quantity(p.ID))
}

func TestParseMovementType(t *testing.T) {
	got, err := ParseMovementType("ENTRY")
	require.NoError(t, err)
	assert.Equal(t, TypeEntry, got)

	got, err = ParseMovementType("exit")
	require.NoError(t, err)
	assert.Equal(t, TypeExit, got)

	_, err = ParseMovementType("adjustment")
	require.Error(t, err)
}
