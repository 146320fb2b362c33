package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockyard/internal/core/entity"
)

type mockCatalog struct {
	entity.BaseEntity
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "is_active", "version", "created_at", "updated_at", "code", "name",
	}

	assert.Len(t, cols, len(expectedCols))
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	base := entity.NewBaseEntity()
	base.Version = 5
	cat := mockCatalog{
		BaseEntity: base,
		Code:       "TEST",
		Name:       "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["is_active"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
}

func TestStructToMap_PointerAndNonStruct(t *testing.T) {
	cat := &mockCatalog{Code: "PTR"}
	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])

	assert.Nil(t, StructToMap(42))
}
