package service

import (
	"context"
	"log/slog"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/search"
	"github.com/utafrali/CatalogGo/internal/search/elasticsearch"
)

// SearchService executes product queries against the search engine and maps
// raw hits into API views.
type SearchService struct {
	engine search.Engine
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(engine search.Engine, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine: engine,
		logger: logger,
	}
}

// SearchOutput is a page of product views plus the paging and sorting meta
// the API echoes back. Sort is the resolved index field, not the requested
// key, so clients see exactly what the engine ordered by.
type SearchOutput struct {
	Items   []domain.ProductView
	Total   int
	Page    int
	PerPage int
	Pages   int
	Sort    string
	Dir     string
	TookMs  int64
}

// SearchProducts runs a normalized product query. Zero matches is a valid
// empty page; only an engine failure is an error.
func (s *SearchService) SearchProducts(ctx context.Context, q *domain.ProductQuery) (*SearchOutput, error) {
	q.Normalize()

	result, err := s.engine.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]domain.ProductView, 0, len(result.Sources))
	for _, src := range result.Sources {
		items = append(items, domain.ViewFromSource(src))
	}

	pages := (result.Total + q.PerPage - 1) / q.PerPage

	s.logger.DebugContext(ctx, "product search executed",
		slog.String("q", q.Q),
		slog.Int("total", result.Total),
		slog.Int("page", q.Page),
		slog.Int64("took_ms", result.TookMs),
	)

	return &SearchOutput{
		Items:   items,
		Total:   result.Total,
		Page:    q.Page,
		PerPage: q.PerPage,
		Pages:   pages,
		Sort:    elasticsearch.ResolveSort(q.Sort),
		Dir:     q.Direction(),
		TookMs:  result.TookMs,
	}, nil
}
