package elasticsearch

import (
	"github.com/utafrali/CatalogGo/internal/domain"
)

// sortFields maps API sort keys to index fields. Sorting on an analyzed text
// field is not possible, so name sorts on its raw keyword sub-field and price
// on its value sub-field.
var sortFields = map[string]string{
	domain.SortName:          "name.keyword",
	domain.SortSKU:           "sku",
	domain.SortPrice:         "price.value",
	domain.SortStockQuantity: "stockQuantity",
	domain.SortWeight:        "weight",
	domain.SortCreatedAt:     "createdAt",
	domain.SortUpdatedAt:     "updatedAt",
}

// ResolveSort maps the requested sort key through the allow-list, falling
// back to the name mapping for an unrecognized or absent key.
func ResolveSort(key string) string {
	if field, ok := sortFields[key]; ok {
		return field
	}
	return sortFields[domain.SortName]
}

// BuildQuery translates a normalized product query into the Elasticsearch
// query DSL body.
//
// Free text contributes a should clause (multi_match on name boosted 2x plus
// description, or a match on sku_search) inside must; every filter lands in
// filter context so it narrows results without affecting relevance. The
// resolved sort always carries a _score descending tie-break, and total hit
// counting is exact.
func BuildQuery(q *domain.ProductQuery) map[string]any {
	var must []any
	var filter []any

	if q.Q != "" {
		must = append(must, map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  q.Q,
							"fields": []string{"name^2", "description"},
						},
					},
					map[string]any{
						"match": map[string]any{"sku_search": q.Q},
					},
				},
				"minimum_should_match": 1,
			},
		})
	}

	if q.BrandID != nil {
		filter = append(filter, map[string]any{
			"term": map[string]any{"brand.id": *q.BrandID},
		})
	}
	if q.CategoryID != nil {
		filter = append(filter, map[string]any{
			"term": map[string]any{"category.id": *q.CategoryID},
		})
	}
	if r := rangeClause(q.PriceMin, q.PriceMax); r != nil {
		filter = append(filter, map[string]any{
			"range": map[string]any{"price.value": r},
		})
	}
	if r := rangeClause(q.StockMin, q.StockMax); r != nil {
		filter = append(filter, map[string]any{
			"range": map[string]any{"stockQuantity": r},
		})
	}

	if must == nil {
		must = []any{}
	}
	if filter == nil {
		filter = []any{}
	}

	return map[string]any{
		"track_total_hits": true,
		"from":             q.Offset(),
		"size":             q.PerPage,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": []any{
			map[string]any{ResolveSort(q.Sort): map[string]any{"order": q.Direction()}},
			map[string]any{"_score": "desc"},
		},
	}
}

func rangeClause(min, max *float64) map[string]any {
	if min == nil && max == nil {
		return nil
	}
	r := map[string]any{}
	if min != nil {
		r["gte"] = *min
	}
	if max != nil {
		r["lte"] = *max
	}
	return r
}
