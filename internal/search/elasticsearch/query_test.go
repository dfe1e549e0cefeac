package elasticsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/CatalogGo/internal/domain"
)

func int64Ptr(n int64) *int64     { return &n }
func floatPtr(f float64) *float64 { return &f }

func boolQuery(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	query, ok := body["query"].(map[string]any)
	require.True(t, ok)
	b, ok := query["bool"].(map[string]any)
	require.True(t, ok)
	return b
}

func TestBuildQuery_EmptyQueryDefaults(t *testing.T) {
	q := domain.NewProductQuery()

	body := BuildQuery(q)

	assert.Equal(t, true, body["track_total_hits"])
	assert.Equal(t, 0, body["from"])
	assert.Equal(t, 25, body["size"])

	b := boolQuery(t, body)
	assert.Empty(t, b["must"])
	assert.Empty(t, b["filter"])

	// Default sort is name ascending with a score tie-break.
	sort, ok := body["sort"].([]any)
	require.True(t, ok)
	require.Len(t, sort, 2)
	assert.Equal(t, map[string]any{"name.keyword": map[string]any{"order": "asc"}}, sort[0])
	assert.Equal(t, map[string]any{"_score": "desc"}, sort[1])
}

func TestBuildQuery_FreeTextGoesIntoMust(t *testing.T) {
	q := domain.NewProductQuery()
	q.Q = "widget"

	body := BuildQuery(q)

	must, ok := boolQuery(t, body)["must"].([]any)
	require.True(t, ok)
	require.Len(t, must, 1)

	inner, ok := must[0].(map[string]any)["bool"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1, inner["minimum_should_match"])

	should, ok := inner["should"].([]any)
	require.True(t, ok)
	require.Len(t, should, 2)

	multiMatch := should[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "widget", multiMatch["query"])
	assert.Equal(t, []string{"name^2", "description"}, multiMatch["fields"])

	match := should[1].(map[string]any)["match"].(map[string]any)
	assert.Equal(t, "widget", match["sku_search"])
}

func TestBuildQuery_FiltersAreNonScoring(t *testing.T) {
	q := domain.NewProductQuery()
	q.BrandID = int64Ptr(3)
	q.CategoryID = int64Ptr(9)
	q.PriceMin = floatPtr(10)
	q.PriceMax = floatPtr(50)
	q.StockMin = floatPtr(1)

	body := BuildQuery(q)

	b := boolQuery(t, body)
	assert.Empty(t, b["must"])

	filter, ok := b["filter"].([]any)
	require.True(t, ok)
	require.Len(t, filter, 4)

	assert.Contains(t, filter, map[string]any{"term": map[string]any{"brand.id": int64(3)}})
	assert.Contains(t, filter, map[string]any{"term": map[string]any{"category.id": int64(9)}})
	assert.Contains(t, filter, map[string]any{
		"range": map[string]any{"price.value": map[string]any{"gte": 10.0, "lte": 50.0}},
	})
	assert.Contains(t, filter, map[string]any{
		"range": map[string]any{"stockQuantity": map[string]any{"gte": 1.0}},
	})
}

func TestBuildQuery_HalfOpenRange(t *testing.T) {
	q := domain.NewProductQuery()
	q.PriceMax = floatPtr(99.5)

	body := BuildQuery(q)

	filter := boolQuery(t, body)["filter"].([]any)
	require.Len(t, filter, 1)
	r := filter[0].(map[string]any)["range"].(map[string]any)["price.value"].(map[string]any)
	assert.Equal(t, 99.5, r["lte"])
	_, hasGte := r["gte"]
	assert.False(t, hasGte)
}

func TestBuildQuery_Pagination(t *testing.T) {
	q := domain.NewProductQuery()
	q.Q = "widget"
	q.BrandID = int64Ptr(3)
	q.Sort = domain.SortPrice
	q.Dir = "desc"
	q.Page = 2
	q.PerPage = 25

	body := BuildQuery(q)

	assert.Equal(t, 25, body["from"])
	assert.Equal(t, 25, body["size"])

	sort := body["sort"].([]any)
	assert.Equal(t, map[string]any{"price.value": map[string]any{"order": "desc"}}, sort[0])
}

func TestResolveSort(t *testing.T) {
	assert.Equal(t, "name.keyword", ResolveSort("name"))
	assert.Equal(t, "sku", ResolveSort("sku"))
	assert.Equal(t, "price.value", ResolveSort("price"))
	assert.Equal(t, "stockQuantity", ResolveSort("stockQuantity"))
	assert.Equal(t, "weight", ResolveSort("weight"))
	assert.Equal(t, "createdAt", ResolveSort("createdAt"))
	assert.Equal(t, "updatedAt", ResolveSort("updatedAt"))

	// Unknown or absent keys fall back to the name mapping.
	assert.Equal(t, "name.keyword", ResolveSort("popularity"))
	assert.Equal(t, "name.keyword", ResolveSort(""))
}

func TestIndexMapping_DeclaresCoreFields(t *testing.T) {
	mapping := indexMapping()

	assert.Contains(t, mapping, `"dynamic": false`)
	assert.Contains(t, mapping, `"sku_search"`)
	assert.Contains(t, mapping, `"edge_ngram"`)
	assert.Contains(t, mapping, `"min_gram": 2`)
	assert.Contains(t, mapping, `"max_gram": 12`)
}
