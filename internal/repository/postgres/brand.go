package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/pkg/database"
	apperrors "github.com/utafrali/CatalogGo/pkg/errors"
)

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	pool database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool database.DBTX) *BrandRepository {
	return &BrandRepository{pool: pool}
}

// GetByID retrieves a brand by its ID.
func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	var b domain.Brand

	err := r.pool.QueryRow(ctx, `SELECT id, name, path FROM brands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Path)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("brand", id)
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}

	return &b, nil
}

// List returns all brands ordered by name.
func (r *BrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, path FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []domain.Brand{}
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Path); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	return brands, nil
}
