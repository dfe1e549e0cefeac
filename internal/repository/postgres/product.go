package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/pkg/database"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// productColumns is the shared select list for product reads. Brand,
// category and price unit are resolved with left joins so a loaded product
// is self-contained.
const productColumns = `
	p.id, p.key, p.path, p.name, p.sku, p.description,
	p.price_value, p.stock_quantity, p.weight, p.created_at, p.updated_at,
	b.id, b.name, b.path,
	c.id, c.name, c.path, c.parent_id,
	u.code, u.abbreviation`

const productJoins = `
	FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN units u ON u.code = p.price_unit`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product and populates its generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products (key, path, name, sku, description, price_value, price_unit, stock_quantity, weight, brand_id, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		p.Key,
		p.Path,
		p.Name,
		p.SKU,
		p.Description,
		priceValue(p),
		priceUnit(p),
		p.StockQuantity,
		p.Weight,
		brandID(p),
		categoryID(p),
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "key", p.Key)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT` + productColumns + productJoins + `
	WHERE p.id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update persists the full state of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET key = $1, path = $2, name = $3, sku = $4, description = $5,
		    price_value = $6, price_unit = $7, stock_quantity = $8, weight = $9,
		    brand_id = $10, category_id = $11, updated_at = $12
		WHERE id = $13`

	ct, err := r.pool.Exec(ctx, query,
		p.Key,
		p.Path,
		p.Name,
		p.SKU,
		p.Description,
		priceValue(p),
		priceUnit(p),
		p.StockQuantity,
		p.Weight,
		brandID(p),
		categoryID(p),
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "key", p.Key)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// ListPage returns up to limit products with IDs greater than afterID,
// ordered by ID ascending. Keyset pagination keeps batches stable while
// other writers insert rows.
func (r *ProductRepository) ListPage(ctx context.Context, afterID int64, limit int) ([]domain.Product, error) {
	query := `SELECT` + productColumns + productJoins + `
	WHERE p.id > $1
	ORDER BY p.id ASC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// Count returns the total number of products.
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// scanProduct reads one joined product row and assembles the domain model.
// Join columns are scanned into pointers so missing brand, category or unit
// rows collapse to nil references.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p          domain.Product
		priceVal   *float64
		brandID    *int64
		brandName  *string
		brandPath  *string
		catID      *int64
		catName    *string
		catPath    *string
		catParent  *int64
		unitCode   *string
		unitAbbrev *string
	)

	if err := row.Scan(
		&p.ID,
		&p.Key,
		&p.Path,
		&p.Name,
		&p.SKU,
		&p.Description,
		&priceVal,
		&p.StockQuantity,
		&p.Weight,
		&p.CreatedAt,
		&p.UpdatedAt,
		&brandID,
		&brandName,
		&brandPath,
		&catID,
		&catName,
		&catPath,
		&catParent,
		&unitCode,
		&unitAbbrev,
	); err != nil {
		return nil, err
	}

	if priceVal != nil || unitCode != nil {
		p.Price = &domain.Quantity{Value: priceVal}
		if unitCode != nil {
			p.Price.Unit = &domain.Unit{Code: *unitCode, Abbreviation: unitAbbrev}
		}
	}

	if brandID != nil {
		p.Brand = &domain.Brand{ID: *brandID}
		if brandName != nil {
			p.Brand.Name = *brandName
		}
		if brandPath != nil {
			p.Brand.Path = *brandPath
		}
	}

	if catID != nil {
		p.Category = &domain.Category{ID: *catID, ParentID: catParent}
		if catName != nil {
			p.Category.Name = *catName
		}
		if catPath != nil {
			p.Category.Path = *catPath
		}
	}

	return &p, nil
}

func priceValue(p *domain.Product) *float64 {
	if p.Price == nil {
		return nil
	}
	return p.Price.Value
}

func priceUnit(p *domain.Product) *string {
	if p.Price == nil || p.Price.Unit == nil {
		return nil
	}
	return &p.Price.Unit.Code
}

func brandID(p *domain.Product) *int64 {
	if p.Brand == nil {
		return nil
	}
	return &p.Brand.ID
}

func categoryID(p *domain.Product) *int64 {
	if p.Category == nil {
		return nil
	}
	return &p.Category.ID
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
