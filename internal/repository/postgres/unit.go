package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/CatalogGo/internal/domain"
	"github.com/utafrali/CatalogGo/pkg/database"
)

// UnitRepository resolves measurement units from reference data.
type UnitRepository struct {
	pool database.DBTX
}

// NewUnitRepository creates a new PostgreSQL-backed unit repository.
func NewUnitRepository(pool database.DBTX) *UnitRepository {
	return &UnitRepository{pool: pool}
}

// Resolve looks up a unit by abbreviation first, then by code. An unknown
// identifier resolves to nil without error so a price can keep its value
// while dropping an unrecognized unit.
func (r *UnitRepository) Resolve(ctx context.Context, identifier string) (*domain.Unit, error) {
	if identifier == "" {
		return nil, nil
	}

	var u domain.Unit

	err := r.pool.QueryRow(ctx,
		`SELECT code, abbreviation FROM units WHERE abbreviation = $1 OR code = $1 ORDER BY (abbreviation = $1) DESC LIMIT 1`,
		identifier,
	).Scan(&u.Code, &u.Abbreviation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve unit: %w", err)
	}

	return &u, nil
}
