package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/internal/search"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// Word pools for generated product data.
var (
	seedAdjectives = []string{
		"Compact", "Deluxe", "Rugged", "Sleek", "Portable", "Classic",
		"Modular", "Premium", "Ultra", "Essential", "Heavy-Duty", "Slim",
	}
	seedNouns = []string{
		"Widget", "Gadget", "Toolkit", "Lantern", "Speaker", "Backpack",
		"Kettle", "Tripod", "Organizer", "Charger", "Blender", "Monitor",
	}
	seedSentences = []string{
		"Built to handle daily use without fuss.",
		"A dependable choice for home and office alike.",
		"Lightweight construction with a durable finish.",
		"Designed with simplicity and longevity in mind.",
		"Ships ready to use, no assembly required.",
		"An everyday staple with a modern touch.",
	}
)

// SeededProduct identifies one product created by the seeder.
type SeededProduct struct {
	ID   int64  `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// SeedResult summarizes a seeding run. Failed counts index rejections;
// Errors holds at most search.MaxReportedErrors of them.
type SeedResult struct {
	Requested int
	Created   []SeededProduct
	Failed    int
	Errors    []search.ItemError
}

// SeedProducts generates count random products, persists them, and bulk
// indexes them. Seeding requires brand and category reference data to exist.
// A generated key colliding with an existing product is regenerated rather
// than counted.
func (s *CatalogService) SeedProducts(ctx context.Context, count int) (*SeedResult, error) {
	if count < 1 {
		return nil, apperrors.InvalidInput("count must be a positive integer")
	}

	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 || len(categories) == 0 {
		return nil, apperrors.InvalidInput("seed brands and categories first")
	}

	currency, err := s.units.Resolve(ctx, "EUR")
	if err != nil {
		return nil, err
	}

	result := &SeedResult{
		Requested: count,
		Created:   make([]SeededProduct, 0, count),
	}

	indexer := search.NewBulkIndexer(s.engine, s.liveBatchSize)

	// Key collisions with existing products get a bounded number of retries
	// so a dense catalog cannot loop the seeder forever.
	attempts := 0
	maxAttempts := count * 10

	for len(result.Created) < count && attempts < maxAttempts {
		attempts++

		sku := randomSKU()
		key := strings.ToLower(sku)

		name := randomProductName()
		description := randomDescription()
		priceVal := roundCents(1 + rand.Float64()*9998)
		stock := float64(rand.Intn(5001))
		weight := roundCents(0.1 + rand.Float64()*249.9)

		product := &domain.Product{
			Key:           key,
			Path:          "/products/",
			Name:          &name,
			SKU:           &sku,
			Description:   &description,
			Price:         &domain.Quantity{Value: &priceVal, Unit: currency},
			StockQuantity: &stock,
			Weight:        &weight,
			Brand:         &brands[rand.Intn(len(brands))],
			Category:      &categories[rand.Intn(len(categories))],
		}

		if err := s.products.Create(ctx, product); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("seed product: %w", err)
		}

		if err := s.producer.PublishProductCreated(ctx, product); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish product.created event",
				slog.Int64("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		}

		if err := indexer.Add(ctx, domain.DocumentFromProduct(product)); err != nil {
			return nil, fmt.Errorf("bulk index flush: %w", err)
		}

		result.Created = append(result.Created, SeededProduct{
			ID:   product.ID,
			SKU:  sku,
			Name: name,
		})
	}

	if err := indexer.Flush(ctx); err != nil {
		return nil, fmt.Errorf("bulk index flush: %w", err)
	}
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refresh index: %w", err)
	}

	stats := indexer.Stats()
	result.Failed = stats.Failed
	result.Errors = stats.Errors

	s.logger.InfoContext(ctx, "seeded products",
		slog.Int("requested", count),
		slog.Int("created", len(result.Created)),
		slog.Int("index_failed", result.Failed),
	)

	return result, nil
}

// randomSKU produces a SKU of three uppercase letters, a dash, and five
// digits, e.g. "QXT-38241".
func randomSKU() string {
	var b strings.Builder
	for i := 0; i < 3; i++ {
		b.WriteByte(byte('A' + rand.Intn(26)))
	}
	b.WriteByte('-')
	for i := 0; i < 5; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

func randomProductName() string {
	return seedAdjectives[rand.Intn(len(seedAdjectives))] + " " + seedNouns[rand.Intn(len(seedNouns))]
}

func randomDescription() string {
	n := 2 + rand.Intn(3)
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, seedSentences[rand.Intn(len(seedSentences))])
	}
	return strings.Join(parts, " ")
}
