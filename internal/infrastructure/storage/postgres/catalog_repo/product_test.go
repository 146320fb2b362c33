package catalog_repo

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/catalogs/product"
	"stockyard/internal/infrastructure/storage/postgres"
)

// The quantity column belongs to the ledger. A catalog update built
// from a read taken before a movement committed must not carry the
// stale quantity back into the row, so the column never appears in the
// UPDATE's SET map.
func TestProductUpdate_QuantityLeftOutOfSetMap(t *testing.T) {
	repo := NewProductRepo(nil)

	p := product.NewProduct("SKU-001", "Widget", id.New(), 10)
	p.Quantity = 44 // stale snapshot; the ledger may have moved on

	set := repo.updateSetMap(postgres.StructToMap(p))

	if _, ok := set["quantity"]; ok {
		t.Fatal("quantity must not appear in the catalog UPDATE SET map")
	}
	if set["name"] != "Widget" {
		t.Errorf("name missing from SET map: %v", set)
	}
	for _, col := range []string{"id", "version", "created_at"} {
		if _, ok := set[col]; ok {
			t.Errorf("immutable column %q must not appear in SET map", col)
		}
	}
}

func TestTranslateUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_code_lower_idx"}

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "bare unique violation",
			err:      pgErr,
			wantCode: apperror.CodeDuplicateCode,
		},
		{
			name:     "wrapped unique violation",
			err:      fmt.Errorf("insert products: %w", pgErr),
			wantCode: apperror.CodeDuplicateCode,
		},
		{
			name:     "conflict carrying the violation as cause",
			err:      apperror.NewConflict("record with the same unique value already exists").WithCause(pgErr),
			wantCode: apperror.CodeDuplicateCode,
		},
		{
			name:     "other pg error passes through",
			err:      &pgconn.PgError{Code: "23503"},
			wantCode: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateUniqueViolation(tt.err, "SKU-001")
			if tt.wantCode == "" {
				if apperror.IsCode(got, apperror.CodeDuplicateCode) {
					t.Fatalf("error must pass through untranslated, got %v", got)
				}
				return
			}
			if !apperror.IsCode(got, tt.wantCode) {
				t.Fatalf("expected %s, got %v", tt.wantCode, got)
			}
			appErr, _ := apperror.AsAppError(got)
			if appErr.Details["code"] != "SKU-001" {
				t.Errorf("expected offending code in details, got %v", appErr.Details)
			}
		})
	}

	if translateUniqueViolation(nil, "SKU-001") != nil {
		t.Error("nil error must stay nil")
	}
}
