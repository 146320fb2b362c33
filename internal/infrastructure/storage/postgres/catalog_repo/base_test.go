package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](
		nil,
		"test_table",
		[]string{"id", "name", "is_active"},
		[]string{"name"},
		func() any { return nil },
	)
}

func TestApplyListFilter_SQL(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name     string
		filter   domain.ListFilter
		wantSQL  string
		wantArgs int
	}{
		{
			name:     "active only by default",
			filter:   domain.ListFilter{},
			wantSQL:  "SELECT id, name, is_active FROM test_table WHERE is_active = $1",
			wantArgs: 1,
		},
		{
			name:     "include inactive drops the flag",
			filter:   domain.ListFilter{IncludeInactive: true},
			wantSQL:  "SELECT id, name, is_active FROM test_table",
			wantArgs: 0,
		},
		{
			name:     "search matches name",
			filter:   domain.ListFilter{IncludeInactive: true, Search: "bolt"},
			wantSQL:  "SELECT id, name, is_active FROM test_table WHERE (name ILIKE $1)",
			wantArgs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := repo.applyListFilter(repo.baseSelect(), tt.filter)

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

func TestBaseCatalogRepo_Delete_SQL(t *testing.T) {
	repo := newTestRepo()
	entityID := id.New()

	q := repo.Builder().
		Delete(repo.tableName).
		Where(squirrel.Eq{"id": entityID})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "DELETE FROM test_table WHERE id = $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != entityID {
		t.Errorf("Args mismatch\nwant: [%v]\ngot:  %v", entityID, args)
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		orderBy string
		want    string
		wantErr bool
	}{
		{"", "name ASC", false},
		{"name", "name ASC", false},
		{"-name", "name DESC", false},
		{"+id", "id ASC", false},
		{"unknown_col", "", true},
		{"-", "", true},
	}

	for _, tt := range tests {
		t.Run("orderBy="+tt.orderBy, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !apperror.IsCode(err, apperror.CodeValidation) {
					t.Errorf("expected VALIDATION_ERROR, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("order mismatch\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}
