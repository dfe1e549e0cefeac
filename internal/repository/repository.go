package repository

import (
	"context"

	"github.com/utafrali/CatalogGo/internal/domain"
)

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product and populates its generated ID.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Update persists the full state of an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// ListPage returns up to limit products with IDs greater than afterID,
	// ordered by ID ascending. Used to stream the catalog in stable batches.
	ListPage(ctx context.Context, afterID int64, limit int) ([]domain.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)
}

// BrandRepository defines read access to brand reference data.
type BrandRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
}

// CategoryRepository defines read access to category reference data.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// UnitRepository resolves measurement units. Resolve matches the identifier
// against abbreviations first, then codes, and returns nil without error for
// an unknown identifier.
type UnitRepository interface {
	Resolve(ctx context.Context, identifier string) (*domain.Unit, error)
}
