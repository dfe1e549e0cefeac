package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/search/memory"
)

func indexDoc(t *testing.T, engine *memory.Engine, id int64, name string, price float64, brandID int64) {
	t.Helper()

	n := name
	p := price
	doc := domain.Document{
		ID:    id,
		Name:  &n,
		Price: &domain.PriceField{Value: &p},
		Brand: &domain.EntityRef{ID: brandID},
	}
	require.NoError(t, engine.Index(context.Background(), &doc))
}

func TestSearch_DefaultsAndMeta(t *testing.T) {
	h := newHarness(t, memory.New())
	indexDoc(t, h.engine, 1, "Steel Widget", 19.99, 1)
	indexDoc(t, h.engine, 2, "Copper Gadget", 29.99, 2)

	rec, resp := doJSON(t, h.router, http.MethodGet, "/api/v1/products/search", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, resp.Error)

	var meta SearchMeta
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 25, meta.PerPage)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 1, meta.Pages)
	assert.Equal(t, "name.keyword", meta.Sort)
	assert.Equal(t, "asc", meta.Dir)
	assert.Empty(t, meta.Filters.Q)
	assert.Nil(t, meta.Filters.BrandID)
	assert.Nil(t, meta.Filters.PriceMin)

	var items []domain.ProductView
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 2)
	// name ascending
	assert.Equal(t, "Copper Gadget", *items[0].Name)
	assert.Equal(t, "Steel Widget", *items[1].Name)
}

func TestSearch_FiltersEchoedInMeta(t *testing.T) {
	h := newHarness(t, memory.New())
	indexDoc(t, h.engine, 1, "Steel Widget", 19.99, 1)
	indexDoc(t, h.engine, 2, "Copper Widget", 29.99, 2)

	rec, resp := doJSON(t, h.router, http.MethodGet,
		"/api/v1/products/search?q=widget&brandId=2&priceMin=25&sort=price&dir=desc", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var meta SearchMeta
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, "widget", meta.Filters.Q)
	require.NotNil(t, meta.Filters.BrandID)
	assert.Equal(t, int64(2), *meta.Filters.BrandID)
	require.NotNil(t, meta.Filters.PriceMin)
	assert.Equal(t, 25.0, *meta.Filters.PriceMin)
	assert.Equal(t, "price.value", meta.Sort)
	assert.Equal(t, "desc", meta.Dir)
}

func TestSearch_UnknownSortFallsBackToName(t *testing.T) {
	h := newHarness(t, memory.New())
	indexDoc(t, h.engine, 1, "Steel Widget", 19.99, 1)

	rec, resp := doJSON(t, h.router, http.MethodGet, "/api/v1/products/search?sort=popularity", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var meta SearchMeta
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Equal(t, "name.keyword", meta.Sort)
}

func TestSearch_Paging(t *testing.T) {
	h := newHarness(t, memory.New())
	for i, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"} {
		indexDoc(t, h.engine, int64(i+1), name, float64(i+1), 1)
	}

	rec, resp := doJSON(t, h.router, http.MethodGet, "/api/v1/products/search?page=2&perPage=2", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var meta SearchMeta
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 2, meta.PerPage)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.Pages)

	var items []domain.ProductView
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	assert.Len(t, items, 2)
}

func TestSearch_ZeroMatches(t *testing.T) {
	h := newHarness(t, memory.New())
	indexDoc(t, h.engine, 1, "Steel Widget", 19.99, 1)

	rec, resp := doJSON(t, h.router, http.MethodGet, "/api/v1/products/search?q=zzz", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var meta SearchMeta
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Zero(t, meta.Total)

	var items []domain.ProductView
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	assert.Empty(t, items)
}

func TestSearch_InvalidParameters(t *testing.T) {
	h := newHarness(t, memory.New())

	cases := []struct {
		name  string
		query string
	}{
		{"non-numeric brandId", "?brandId=abc"},
		{"negative brandId", "?brandId=-1"},
		{"non-numeric priceMin", "?priceMin=cheap"},
		{"non-numeric page", "?page=abc"},
		{"oversized perPage", "?perPage=1000001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := doJSON(t, h.router, http.MethodGet, "/api/v1/products/search"+tc.query, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
		})
	}
}

func TestSearch_NonPositivePagingFallsBackToDefaults(t *testing.T) {
	h := newHarness(t, memory.New())
	indexDoc(t, h.engine, 1, "Steel Widget", 19.99, 1)

	rec, resp := doJSON(t, h.router, http.MethodGet, "/api/v1/products/search?page=0&perPage=-5", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var meta SearchMeta
	require.NoError(t, json.Unmarshal(resp.Meta, &meta))
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 25, meta.PerPage)
}
