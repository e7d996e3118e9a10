package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slideforge/internal/domain"
)

// AssetRepositoryPG implements domain.AssetPathLookup for library images.
type AssetRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates an asset lookup backed by PostgreSQL.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepositoryPG {
	return &AssetRepositoryPG{pool: pool}
}

// StoredPath resolves a library asset id into its storage key.
func (r *AssetRepositoryPG) StoredPath(ctx context.Context, assetID string) (string, error) {
	query := `
SELECT storage_key
FROM assets
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, assetID)
	var key string
	if err := row.Scan(&key); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return key, nil
}
