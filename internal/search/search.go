package search

import (
	"context"
	"fmt"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// Engine is the search index backend. Implementations are Elasticsearch and
// an in-memory fake for tests.
type Engine interface {
	// EnsureIndex creates the index with its mapping if it does not exist.
	// With recreate, an existing index is deleted first; all documents must
	// be rebuilt afterwards. Index creation is eventually visible on the
	// index service side; callers must not assume immediate queryability.
	EnsureIndex(ctx context.Context, recreate bool) error

	// Index writes a single document with immediate-visibility semantics
	// (the call returns only once the document is searchable).
	Index(ctx context.Context, doc *domain.Document) error

	// Bulk writes many documents in one call. Per-document failures are
	// returned in the result and do not abort the rest of the batch;
	// transport-level failures return an error.
	Bulk(ctx context.Context, docs []domain.Document) (*BulkResult, error)

	// Refresh makes recently written documents visible to queries.
	Refresh(ctx context.Context) error

	// Search executes a product query and returns the exact total match
	// count plus the raw stored source of each hit on the requested page.
	// An engine-rejected query is an error, distinct from zero results.
	Search(ctx context.Context, q *domain.ProductQuery) (*Result, error)

	// Delete removes a document by product ID. Administrative use only; no
	// mutation path propagates relational deletes to the index.
	Delete(ctx context.Context, id int64) error
}

// Result is the raw outcome of a search: hits are stored sources, mapped to
// the API shape by the caller.
type Result struct {
	Total   int
	Sources []map[string]any
	TookMs  int64
}

// ItemError describes one failed document in a bulk write.
type ItemError struct {
	ID     int64  `json:"id"`
	Type   string `json:"type,omitempty"`
	Reason string `json:"reason"`
}

func (e ItemError) String() string {
	if e.Type != "" {
		return fmt.Sprintf("id=%d: %s — %s", e.ID, e.Type, e.Reason)
	}
	return fmt.Sprintf("id=%d: %s", e.ID, e.Reason)
}

// BulkResult reports the per-item outcome of one bulk call.
type BulkResult struct {
	// Errors holds every failed item in the batch. Successful items are
	// not listed.
	Errors []ItemError
}
