package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/event"
	"github.com/utafrali/CatalogGo/internal/repository"
	"github.com/utafrali/CatalogGo/internal/search"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// CatalogService orchestrates catalog mutations across the relational store
// and the search index. The relational write always lands first; a
// subsequent index failure degrades the operation to partial success rather
// than rolling anything back.
type CatalogService struct {
	products   repository.ProductRepository
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	units      repository.UnitRepository
	engine     search.Engine
	producer   *event.Producer
	logger     *slog.Logger

	reindexBatchSize int
	liveBatchSize    int
}

// NewCatalogService creates a new catalog service with the default bulk
// batch sizes.
func NewCatalogService(
	products repository.ProductRepository,
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	units repository.UnitRepository,
	engine search.Engine,
	producer *event.Producer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products:         products,
		brands:           brands,
		categories:       categories,
		units:            units,
		engine:           engine,
		producer:         producer,
		logger:           logger,
		reindexBatchSize: search.ReindexBatchSize,
		liveBatchSize:    search.LiveBatchSize,
	}
}

// SetBatchSizes overrides the bulk batch sizes. Non-positive values keep the
// current setting.
func (s *CatalogService) SetBatchSizes(reindex, live int) {
	if reindex > 0 {
		s.reindexBatchSize = reindex
	}
	if live > 0 {
		s.liveBatchSize = live
	}
}

// ProductPatch describes a partial product update. Each field carries a Set
// flag distinguishing an absent field (leave untouched) from an explicit
// null (clear the value).
type ProductPatch struct {
	Name    *string
	NameSet bool

	SKU    *string
	SKUSet bool

	Description    *string
	DescriptionSet bool

	Price    *PricePatch
	PriceSet bool

	StockQuantity    *float64
	StockQuantitySet bool

	Weight    *float64
	WeightSet bool

	BrandID    *int64
	BrandIDSet bool

	CategoryID    *int64
	CategoryIDSet bool
}

// PricePatch is the price payload of a patch: a value and a unit identifier,
// each independently optional.
type PricePatch struct {
	Value *float64
	Unit  *string
}

// UpdateResult is the outcome of a product update. IndexErr is set when the
// relational write succeeded but the index write did not; the caller decides
// how to surface the partial success.
type UpdateResult struct {
	Product  domain.ProductView
	IndexErr error
}

// UpdateProduct applies a partial update to a product, persists it, and
// synchronizes the search index. The indexed document is immediately
// visible to searches on success. The returned view is decoded from the
// exact document that was sent to the index.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, patch *ProductPatch) (*UpdateResult, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyPatch(ctx, product, patch); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Event delivery is best effort.
	}

	doc := domain.DocumentFromProduct(product)
	result := &UpdateResult{
		Product: domain.ViewFromSource(doc.Source()),
	}

	if err := s.engine.Index(ctx, &doc); err != nil {
		s.logger.ErrorContext(ctx, "product saved but index update failed",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		result.IndexErr = err
		return result, nil
	}

	s.logger.InfoContext(ctx, "product updated", slog.Int64("product_id", product.ID))
	return result, nil
}

// applyPatch mutates the loaded product with every field the patch sets.
// Brand and category references are validated against the store; a set but
// unknown reference rejects the whole patch.
func (s *CatalogService) applyPatch(ctx context.Context, product *domain.Product, patch *ProductPatch) error {
	if patch.NameSet {
		product.Name = patch.Name
	}
	if patch.SKUSet {
		product.SKU = patch.SKU
	}
	if patch.DescriptionSet {
		product.Description = patch.Description
	}

	if patch.PriceSet {
		if patch.Price == nil {
			product.Price = nil
		} else {
			quantity := &domain.Quantity{Value: patch.Price.Value}
			if patch.Price.Unit != nil {
				unit, err := s.units.Resolve(ctx, *patch.Price.Unit)
				if err != nil {
					return err
				}
				quantity.Unit = unit
			}
			product.Price = quantity
		}
	}

	if patch.StockQuantitySet {
		product.StockQuantity = patch.StockQuantity
	}
	if patch.WeightSet {
		product.Weight = patch.Weight
	}

	if patch.BrandIDSet {
		if patch.BrandID == nil {
			product.Brand = nil
		} else {
			brand, err := s.brands.GetByID(ctx, *patch.BrandID)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return apperrors.InvalidInput("brand not found")
				}
				return err
			}
			product.Brand = brand
		}
	}

	if patch.CategoryIDSet {
		if patch.CategoryID == nil {
			product.Category = nil
		} else {
			category, err := s.categories.GetByID(ctx, *patch.CategoryID)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return apperrors.InvalidInput("category not found")
				}
				return err
			}
			product.Category = category
		}
	}

	return nil
}

// BulkPriceResult summarizes a bulk price adjustment. Failed is the true
// error count; Errors holds at most search.MaxReportedErrors of them.
type BulkPriceResult struct {
	Percent          float64
	Matched          int
	Updated          int
	Indexed          int
	SkippedNoPrice   int
	SkippedNullValue int
	Failed           int
	Errors           []search.ItemError
}

// BulkPriceAdjust multiplies every product price by 1+percent/100, rounded
// to two decimals, walking the catalog in ID order. limit caps how many
// products are visited; zero visits all. Products without a price, or with
// a price that has no value, are skipped and counted separately. Relational
// failures skip the product; the walk continues either way, and the index
// is refreshed once at the end.
func (s *CatalogService) BulkPriceAdjust(ctx context.Context, percent float64, limit int) (*BulkPriceResult, error) {
	multiplier := 1 + percent/100

	result := &BulkPriceResult{Percent: percent}

	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	result.Matched = total
	if limit > 0 && limit < total {
		result.Matched = limit
	}

	indexer := search.NewBulkIndexer(s.engine, s.liveBatchSize)

	visited := 0
	afterID := int64(0)
	for {
		pageSize := s.liveBatchSize
		if limit > 0 && limit-visited < pageSize {
			pageSize = limit - visited
		}
		if pageSize == 0 {
			break
		}

		page, err := s.products.ListPage(ctx, afterID, pageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			product := &page[i]
			afterID = product.ID
			visited++

			if product.Price == nil {
				result.SkippedNoPrice++
				continue
			}
			if product.Price.Value == nil {
				result.SkippedNullValue++
				continue
			}

			adjusted := roundCents(*product.Price.Value * multiplier)
			product.Price.Value = &adjusted

			if err := s.products.Update(ctx, product); err != nil {
				result.Failed++
				if len(result.Errors) < search.MaxReportedErrors {
					result.Errors = append(result.Errors, search.ItemError{ID: product.ID, Reason: err.Error()})
				}
				continue
			}
			result.Updated++

			if err := indexer.Add(ctx, domain.DocumentFromProduct(product)); err != nil {
				return nil, fmt.Errorf("bulk index flush: %w", err)
			}
		}
	}

	if err := indexer.Flush(ctx); err != nil {
		return nil, fmt.Errorf("bulk index flush: %w", err)
	}
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refresh index: %w", err)
	}

	stats := indexer.Stats()
	result.Indexed = stats.Indexed
	result.Failed += stats.Failed
	for _, itemErr := range stats.Errors {
		if len(result.Errors) >= search.MaxReportedErrors {
			break
		}
		result.Errors = append(result.Errors, itemErr)
	}

	s.logger.InfoContext(ctx, "bulk price adjustment complete",
		slog.Float64("percent", percent),
		slog.Int("updated", result.Updated),
		slog.Int("indexed", result.Indexed),
		slog.Int("failed", result.Failed),
	)

	return result, nil
}

// ReindexResult summarizes a full catalog reindex.
type ReindexResult struct {
	Total   int
	Indexed int
	Failed  int
	Flushes int
	Errors  []search.ItemError
}

// Reindex rebuilds the search index from the relational store. With recreate
// set, the index is dropped and recreated with a fresh mapping first. The
// catalog is streamed in keyset batches so memory use stays flat regardless
// of catalog size; a final refresh makes every document searchable on
// return. An empty catalog completes with zero documents indexed.
func (s *CatalogService) Reindex(ctx context.Context, recreate bool) (*ReindexResult, error) {
	if err := s.engine.EnsureIndex(ctx, recreate); err != nil {
		return nil, fmt.Errorf("ensure index: %w", err)
	}

	total, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}

	indexer := search.NewBulkIndexer(s.engine, s.reindexBatchSize)

	processed := 0
	afterID := int64(0)
	for {
		page, err := s.products.ListPage(ctx, afterID, s.reindexBatchSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			afterID = page[i].ID
			if err := indexer.Add(ctx, domain.DocumentFromProduct(&page[i])); err != nil {
				return nil, fmt.Errorf("bulk index flush: %w", err)
			}
		}

		processed += len(page)
		s.logger.InfoContext(ctx, "reindex progress",
			slog.Int("processed", processed),
			slog.Int("total", total),
		)
	}

	if err := indexer.Flush(ctx); err != nil {
		return nil, fmt.Errorf("bulk index flush: %w", err)
	}
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refresh index: %w", err)
	}

	stats := indexer.Stats()
	result := &ReindexResult{
		Total:   total,
		Indexed: stats.Indexed,
		Failed:  stats.Failed,
		Flushes: stats.Flushes,
		Errors:  stats.Errors,
	}

	s.logger.InfoContext(ctx, "reindex complete",
		slog.Int("total", total),
		slog.Int("indexed", result.Indexed),
		slog.Int("failed", result.Failed),
		slog.Int("flushes", result.Flushes),
	)

	return result, nil
}

// roundCents rounds to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
