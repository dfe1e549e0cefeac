package postgres

import (
	"context"
	"embed"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/utafrali/CatalogGo/pkg/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the catalog schema migrations, including seed reference
// data (units, brands, categories) required by the product seeder.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	return database.RunMigrations(ctx, pool, migrationFiles, "migrations", logger)
}
