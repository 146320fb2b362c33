package ledger_repo

import (
	"testing"
	"time"

	"stockyard/internal/core/id"
	"stockyard/internal/domain/ledger"
)

func TestApplyFilter_SQL(t *testing.T) {
	repo := NewMovementRepo(nil, nil)
	productID := id.New()
	entry := ledger.TypeEntry
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   ledger.ListFilter
		wantSQL  string
		wantArgs int
	}{
		{
			name:     "no filters",
			filter:   ledger.ListFilter{},
			wantSQL:  "SELECT id, product_id, type, package_quantity, units_per_package, unit_quantity, total_units, reason, notes, date, user_id, user_name, created_at FROM movements",
			wantArgs: 0,
		},
		{
			name:     "by product",
			filter:   ledger.ListFilter{ProductID: &productID},
			wantSQL:  "SELECT id, product_id, type, package_quantity, units_per_package, unit_quantity, total_units, reason, notes, date, user_id, user_name, created_at FROM movements WHERE product_id = $1",
			wantArgs: 1,
		},
		{
			name:     "by type and reason",
			filter:   ledger.ListFilter{Type: &entry, Reason: "purchase"},
			wantSQL:  "SELECT id, product_id, type, package_quantity, units_per_package, unit_quantity, total_units, reason, notes, date, user_id, user_name, created_at FROM movements WHERE type = $1 AND reason ILIKE $2",
			wantArgs: 2,
		},
		{
			name:     "from date",
			filter:   ledger.ListFilter{DateFrom: &from},
			wantSQL:  "SELECT id, product_id, type, package_quantity, units_per_package, unit_quantity, total_units, reason, notes, date, user_id, user_name, created_at FROM movements WHERE date >= $1",
			wantArgs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := repo.applyFilter(repo.baseSelect(), tt.filter)

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("Args count mismatch\nwant: %d\ngot:  %d", tt.wantArgs, len(args))
			}
		})
	}
}

func TestList_Ordering(t *testing.T) {
	repo := NewMovementRepo(nil, nil)

	q := repo.applyFilter(repo.baseSelect(), ledger.ListFilter{}).
		OrderBy("date DESC", "created_at DESC").
		Limit(50)

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT id, product_id, type, package_quantity, units_per_package, unit_quantity, total_units, reason, notes, date, user_id, user_name, created_at FROM movements ORDER BY date DESC, created_at DESC LIMIT 50"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
}
