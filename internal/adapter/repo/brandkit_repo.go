package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slideforge/internal/domain"
)

// BrandKitRepositoryPG implements domain.BrandKitRepository.
type BrandKitRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewBrandKitRepository creates a brand kit repository backed by PostgreSQL.
func NewBrandKitRepository(pool *pgxpool.Pool) *BrandKitRepositoryPG {
	return &BrandKitRepositoryPG{pool: pool}
}

// GetByUser fetches the user's brand kit. The logo_url column arrives already
// resolved; logo storage is handled upstream.
func (r *BrandKitRepositoryPG) GetByUser(ctx context.Context, userID string) (*domain.BrandKit, error) {
	query := `
SELECT user_id, primary_color, secondary_color, watermark_text, logo_url
FROM brand_kits
WHERE user_id = $1;
`
	row := r.pool.QueryRow(ctx, query, userID)
	var b domain.BrandKit
	if err := row.Scan(&b.UserID, &b.PrimaryColor, &b.SecondaryColor, &b.WatermarkText, &b.LogoURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}
