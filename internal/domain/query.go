package domain

import "strings"

// Sort keys accepted by the search API. Unrecognized keys fall back to
// SortName rather than erroring.
const (
	SortName          = "name"
	SortSKU           = "sku"
	SortPrice         = "price"
	SortStockQuantity = "stockQuantity"
	SortWeight        = "weight"
	SortCreatedAt     = "createdAt"
	SortUpdatedAt     = "updatedAt"
)

// Sort directions.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// DefaultPerPage is the page size applied when the request names none.
const DefaultPerPage = 25

// ProductQuery is the normalized search request: free text, exact filters,
// ranges, sort, and 1-based pagination.
type ProductQuery struct {
	Q          string   `json:"q,omitempty"`
	BrandID    *int64   `json:"brandId,omitempty"`
	CategoryID *int64   `json:"categoryId,omitempty"`
	PriceMin   *float64 `json:"priceMin,omitempty"`
	PriceMax   *float64 `json:"priceMax,omitempty"`
	StockMin   *float64 `json:"stockMin,omitempty"`
	StockMax   *float64 `json:"stockMax,omitempty"`
	Sort       string   `json:"sort"`
	Dir        string   `json:"dir"`
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
}

// NewProductQuery returns a query with default paging and sorting: first
// page of 25, sorted by name ascending.
func NewProductQuery() *ProductQuery {
	return &ProductQuery{
		Sort:    SortName,
		Dir:     DirAsc,
		Page:    1,
		PerPage: DefaultPerPage,
	}
}

// Normalize clamps page and page size to their minimums.
func (q *ProductQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
}

// Direction returns the effective sort direction: descending only on a
// case-insensitive "desc", ascending otherwise.
func (q *ProductQuery) Direction() string {
	if strings.EqualFold(q.Dir, DirDesc) {
		return DirDesc
	}
	return DirAsc
}

// Offset returns the zero-based result offset, clamped to zero.
func (q *ProductQuery) Offset() int {
	offset := (q.Page - 1) * q.PerPage
	if offset < 0 {
		return 0
	}
	return offset
}

// QueryResult is a page of search hits with the exact total match count.
type QueryResult struct {
	Total int           `json:"total"`
	Items []ProductView `json:"items"`
}
