package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slideforge/internal/domain"
)

// CarouselRepositoryPG implements domain.CarouselRepository.
type CarouselRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCarouselRepository creates a carousel repository backed by PostgreSQL.
func NewCarouselRepository(pool *pgxpool.Pool) *CarouselRepositoryPG {
	return &CarouselRepositoryPG{pool: pool}
}

// GetByID fetches a carousel by its identifier.
func (r *CarouselRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Carousel, error) {
	query := `
SELECT id, user_id, title, caption, default_template_id, created_at, updated_at
FROM carousels
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var c domain.Carousel
	var defaultTemplate *string
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Caption, &defaultTemplate, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if defaultTemplate != nil {
		c.DefaultTemplateID = *defaultTemplate
	}
	return &c, nil
}
