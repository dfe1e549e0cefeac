package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// BrandRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestBrandRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewBrandRepository(mock)

	mock.ExpectQuery("SELECT id, name, path FROM brands WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "path"}).
			AddRow(int64(3), "Acme", "/brands/acme"))

	brand, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrandRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewBrandRepository(mock)

	mock.ExpectQuery("SELECT id, name, path FROM brands WHERE id").
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrandRepository_List_OrderedByName(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewBrandRepository(mock)

	mock.ExpectQuery("SELECT id, name, path FROM brands ORDER BY name ASC").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "path"}).
			AddRow(int64(1), "Acme", "/brands/acme").
			AddRow(int64(2), "Globex", "/brands/globex"))

	brands, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Acme", brands[0].Name)
	assert.Equal(t, "Globex", brands[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// CategoryRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestCategoryRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery("SELECT id, name, path, parent_id FROM categories WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "path", "parent_id"}).
			AddRow(int64(7), "Power Tools", "/categories/tools/power", int64Ptr(2)))

	category, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Power Tools", category.Name)
	require.NotNil(t, category.ParentID)
	assert.Equal(t, int64(2), *category.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_List_OrderedByPath(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery("SELECT id, name, path, parent_id FROM categories ORDER BY path ASC").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "path", "parent_id"}).
			AddRow(int64(2), "Tools", "/categories/tools", (*int64)(nil)).
			AddRow(int64(7), "Power Tools", "/categories/tools/power", int64Ptr(2)))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Nil(t, categories[0].ParentID)
	require.NotNil(t, categories[1].ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// UnitRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestUnitRepository_Resolve_AbbreviationWinsOverCode(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewUnitRepository(mock)

	mock.ExpectQuery("SELECT code, abbreviation FROM units").
		WithArgs("kg").
		WillReturnRows(pgxmock.NewRows([]string{"code", "abbreviation"}).
			AddRow("kilogram", strPtr("kg")))

	unit, err := repo.Resolve(context.Background(), "kg")
	require.NoError(t, err)
	require.NotNil(t, unit)
	assert.Equal(t, "kilogram", unit.Code)
	assert.Equal(t, "kg", *unit.Abbreviation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitRepository_Resolve_UnknownIsNilWithoutError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewUnitRepository(mock)

	mock.ExpectQuery("SELECT code, abbreviation FROM units").
		WithArgs("parsec").
		WillReturnError(pgx.ErrNoRows)

	unit, err := repo.Resolve(context.Background(), "parsec")
	require.NoError(t, err)
	assert.Nil(t, unit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitRepository_Resolve_EmptyIdentifierSkipsQuery(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewUnitRepository(mock)

	unit, err := repo.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, unit)
	assert.NoError(t, mock.ExpectationsWereMet())
}
