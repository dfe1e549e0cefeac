package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/search"
)

// Engine is an in-memory implementation of the search.Engine interface,
// used by tests and local development without an Elasticsearch cluster.
// It approximates the index behavior: substring matching on name and
// description, prefix matching on the searchable SKU, and filter and sort
// semantics equivalent to the real query. Thread-safe via sync.RWMutex.
type Engine struct {
	mu    sync.RWMutex
	docs  map[int64]domain.Document
	ready bool
}

var _ search.Engine = (*Engine)(nil)

// New creates a new in-memory search engine.
func New() *Engine {
	return &Engine{
		docs: make(map[int64]domain.Document),
	}
}

// Ping always succeeds.
func (e *Engine) Ping(_ context.Context) error {
	return nil
}

// EnsureIndex marks the engine ready. With recreate set, all stored
// documents are dropped first.
func (e *Engine) EnsureIndex(_ context.Context, recreate bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if recreate {
		e.docs = make(map[int64]domain.Document)
	}
	e.ready = true
	return nil
}

// Index adds or updates a single document.
func (e *Engine) Index(_ context.Context, doc *domain.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[doc.ID] = *doc
	return nil
}

// Bulk adds or updates multiple documents. Every write succeeds, so the
// result never carries item errors.
func (e *Engine) Bulk(_ context.Context, docs []domain.Document) (*search.BulkResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range docs {
		e.docs[docs[i].ID] = docs[i]
	}
	return &search.BulkResult{}, nil
}

// Refresh is a no-op; in-memory writes are immediately visible.
func (e *Engine) Refresh(_ context.Context) error {
	return nil
}

// Delete removes a document by product ID. Missing documents are ignored.
func (e *Engine) Delete(_ context.Context, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.docs, id)
	return nil
}

// Search executes a product query against the in-memory index.
func (e *Engine) Search(_ context.Context, q *domain.ProductQuery) (*search.Result, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	queryLower := strings.ToLower(q.Q)

	matched := make([]domain.Document, 0)
	for _, d := range e.docs {
		if !matches(d, q, queryLower) {
			continue
		}
		matched = append(matched, d)
	}

	sortDocuments(matched, q.Sort, q.Direction())

	total := len(matched)

	offset := q.Offset()
	if offset > total {
		offset = total
	}
	end := offset + q.PerPage
	if end > total {
		end = total
	}

	sources := make([]map[string]any, 0, end-offset)
	for _, d := range matched[offset:end] {
		sources = append(sources, d.Source())
	}

	return &search.Result{
		Total:   total,
		Sources: sources,
		TookMs:  time.Since(start).Milliseconds(),
	}, nil
}

// matches checks whether a document satisfies the query text and filters.
func matches(d domain.Document, q *domain.ProductQuery, queryLower string) bool {
	if queryLower != "" {
		name := strings.ToLower(deref(d.Name))
		desc := strings.ToLower(deref(d.Description))
		skuHit := len(queryLower) >= 2 && strings.HasPrefix(strings.ToLower(d.SKUSearch), queryLower)
		if !strings.Contains(name, queryLower) && !strings.Contains(desc, queryLower) && !skuHit {
			return false
		}
	}

	if q.BrandID != nil {
		if d.Brand == nil || d.Brand.ID != *q.BrandID {
			return false
		}
	}
	if q.CategoryID != nil {
		if d.Category == nil || d.Category.ID != *q.CategoryID {
			return false
		}
	}

	if q.PriceMin != nil || q.PriceMax != nil {
		if d.Price == nil || d.Price.Value == nil {
			return false
		}
		if q.PriceMin != nil && *d.Price.Value < *q.PriceMin {
			return false
		}
		if q.PriceMax != nil && *d.Price.Value > *q.PriceMax {
			return false
		}
	}

	if q.StockMin != nil || q.StockMax != nil {
		if d.StockQuantity == nil {
			return false
		}
		if q.StockMin != nil && *d.StockQuantity < *q.StockMin {
			return false
		}
		if q.StockMax != nil && *d.StockQuantity > *q.StockMax {
			return false
		}
	}

	return true
}

// sortDocuments orders matched documents by the resolved sort key. Documents
// missing the sort value go last regardless of direction, mirroring how the
// index treats absent fields.
func sortDocuments(docs []domain.Document, key, dir string) {
	desc := dir == domain.DirDesc

	sort.SliceStable(docs, func(i, j int) bool {
		switch key {
		case domain.SortSKU:
			return lessStr(docs[i].SKU, docs[j].SKU, desc)
		case domain.SortPrice:
			return lessFloat(priceValue(docs[i]), priceValue(docs[j]), desc)
		case domain.SortStockQuantity:
			return lessFloat(docs[i].StockQuantity, docs[j].StockQuantity, desc)
		case domain.SortWeight:
			return lessFloat(docs[i].Weight, docs[j].Weight, desc)
		case domain.SortCreatedAt:
			return lessStr(docs[i].CreatedAt, docs[j].CreatedAt, desc)
		case domain.SortUpdatedAt:
			return lessStr(docs[i].UpdatedAt, docs[j].UpdatedAt, desc)
		default:
			return lessStr(docs[i].Name, docs[j].Name, desc)
		}
	})
}

func priceValue(d domain.Document) *float64 {
	if d.Price == nil {
		return nil
	}
	return d.Price.Value
}

func lessStr(a, b *string, desc bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if desc {
		return *a > *b
	}
	return *a < *b
}

func lessFloat(a, b *float64, desc bool) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if desc {
		return *a > *b
	}
	return *a < *b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
