package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/CatalogGo/internal/domain"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func int64Ptr(n int64) *int64     { return &n }

func doc(id int64, name, sku string, price float64, brandID int64) domain.Document {
	return domain.Document{
		ID:            id,
		Name:          strPtr(name),
		SKU:           strPtr(sku),
		SKUSearch:     sku,
		Price:         &domain.PriceField{Value: floatPtr(price), Unit: strPtr("€")},
		StockQuantity: floatPtr(10),
		Brand:         &domain.EntityRef{ID: brandID, Name: strPtr("brand")},
	}
}

func seedEngine(t *testing.T, docs ...domain.Document) *Engine {
	t.Helper()
	e := New()
	require.NoError(t, e.EnsureIndex(context.Background(), false))
	for i := range docs {
		require.NoError(t, e.Index(context.Background(), &docs[i]))
	}
	return e
}

func resultNames(t *testing.T, sources []map[string]any) []string {
	t.Helper()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		name, _ := src["name"].(string)
		names = append(names, name)
	}
	return names
}

func TestEngine_SearchMatchesNameAndDescription(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Steel Widget", "WID-10001", 19.99, 1),
		doc(2, "Copper Gadget", "GAD-10002", 29.99, 1),
		domain.Document{
			ID:          3,
			Name:        strPtr("Plain Box"),
			Description: strPtr("a widget carrier"),
		},
	)

	q := domain.NewProductQuery()
	q.Q = "widget"

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.ElementsMatch(t, []string{"Steel Widget", "Plain Box"}, resultNames(t, res.Sources))
}

func TestEngine_SearchMatchesSKUPrefix(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Steel Widget", "WID-10001", 19.99, 1),
		doc(2, "Copper Gadget", "GAD-10002", 29.99, 1),
	)

	q := domain.NewProductQuery()
	q.Q = "wid-10"

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Steel Widget"}, resultNames(t, res.Sources))
}

func TestEngine_SingleCharQueryDoesNotPrefixMatchSKU(t *testing.T) {
	e := seedEngine(t, doc(1, "Steel Widget", "WID-10001", 19.99, 1))

	q := domain.NewProductQuery()
	q.Q = "w"

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	// "w" still substring-matches the name, so target a doc whose name
	// misses the query.
	assert.Equal(t, 1, res.Total)

	q.Q = "x"
	res, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestEngine_Filters(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Alpha", "AAA-00001", 10, 1),
		doc(2, "Beta", "BBB-00002", 20, 2),
		doc(3, "Gamma", "CCC-00003", 30, 2),
	)

	q := domain.NewProductQuery()
	q.BrandID = int64Ptr(2)
	q.PriceMax = floatPtr(25)

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Beta"}, resultNames(t, res.Sources))
}

func TestEngine_PriceFilterExcludesDocsWithoutPrice(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Alpha", "AAA-00001", 10, 1),
		domain.Document{ID: 2, Name: strPtr("No Price")},
	)

	q := domain.NewProductQuery()
	q.PriceMin = floatPtr(1)

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Alpha"}, resultNames(t, res.Sources))
}

func TestEngine_SortAndPaging(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Alpha", "AAA-00001", 30, 1),
		doc(2, "Beta", "BBB-00002", 10, 1),
		doc(3, "Gamma", "CCC-00003", 20, 1),
	)

	q := domain.NewProductQuery()
	q.Sort = domain.SortPrice
	q.Dir = domain.DirDesc
	q.PerPage = 2

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"Alpha", "Gamma"}, resultNames(t, res.Sources))

	q.Page = 2
	res, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"Beta"}, resultNames(t, res.Sources))
}

func TestEngine_SortMissingValuesGoLast(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Alpha", "AAA-00001", 30, 1),
		domain.Document{ID: 2, Name: strPtr("No Price")},
		doc(3, "Gamma", "CCC-00003", 20, 1),
	)

	q := domain.NewProductQuery()
	q.Sort = domain.SortPrice

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gamma", "Alpha", "No Price"}, resultNames(t, res.Sources))

	q.Dir = domain.DirDesc
	res, err = e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Gamma", "No Price"}, resultNames(t, res.Sources))
}

func TestEngine_OffsetPastEndReturnsEmptyPage(t *testing.T) {
	e := seedEngine(t, doc(1, "Alpha", "AAA-00001", 10, 1))

	q := domain.NewProductQuery()
	q.Page = 5

	res, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Empty(t, res.Sources)
}

func TestEngine_IndexOverwritesByID(t *testing.T) {
	e := seedEngine(t, doc(1, "Alpha", "AAA-00001", 10, 1))

	updated := doc(1, "Alpha Renamed", "AAA-00001", 15, 1)
	require.NoError(t, e.Index(context.Background(), &updated))

	res, err := e.Search(context.Background(), domain.NewProductQuery())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []string{"Alpha Renamed"}, resultNames(t, res.Sources))
}

func TestEngine_DeleteIsIdempotent(t *testing.T) {
	e := seedEngine(t, doc(1, "Alpha", "AAA-00001", 10, 1))

	require.NoError(t, e.Delete(context.Background(), 1))
	require.NoError(t, e.Delete(context.Background(), 1))

	res, err := e.Search(context.Background(), domain.NewProductQuery())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestEngine_EnsureIndexRecreateDropsDocuments(t *testing.T) {
	e := seedEngine(t,
		doc(1, "Alpha", "AAA-00001", 10, 1),
		doc(2, "Beta", "BBB-00002", 20, 1),
	)

	require.NoError(t, e.EnsureIndex(context.Background(), true))

	res, err := e.Search(context.Background(), domain.NewProductQuery())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestEngine_BulkNeverReportsItemErrors(t *testing.T) {
	e := New()
	require.NoError(t, e.EnsureIndex(context.Background(), false))

	docs := []domain.Document{
		doc(1, "Alpha", "AAA-00001", 10, 1),
		doc(2, "Beta", "BBB-00002", 20, 1),
	}
	res, err := e.Bulk(context.Background(), docs)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)

	found, err := e.Search(context.Background(), domain.NewProductQuery())
	require.NoError(t, err)
	assert.Equal(t, 2, found.Total)
}
