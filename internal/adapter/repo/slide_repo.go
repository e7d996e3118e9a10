package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slideforge/internal/domain"
	"slideforge/internal/highlight"
)

// SlideRepositoryPG implements domain.SlideRepository.
type SlideRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSlideRepository creates a slide repository backed by PostgreSQL.
func NewSlideRepository(pool *pgxpool.Pool) *SlideRepositoryPG {
	return &SlideRepositoryPG{pool: pool}
}

const slideColumns = `
id, carousel_id, position, slide_type, headline, body,
headline_highlights, body_highlights, template_id,
background, gradient, zone_overrides, created_at, updated_at`

// GetByID fetches a slide by its identifier.
func (r *SlideRepositoryPG) GetByID(ctx context.Context, id string) (*domain.SlideData, error) {
	query := `SELECT ` + slideColumns + `
FROM slides
WHERE id = $1;`
	row := r.pool.QueryRow(ctx, query, id)
	slide, err := scanSlide(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return slide, nil
}

// ListByCarousel returns the carousel's slides in position order.
func (r *SlideRepositoryPG) ListByCarousel(ctx context.Context, carouselID string) ([]domain.SlideData, error) {
	query := `SELECT ` + slideColumns + `
FROM slides
WHERE carousel_id = $1
ORDER BY position;`
	rows, err := r.pool.Query(ctx, query, carouselID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []domain.SlideData
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, *slide)
	}
	return slides, rows.Err()
}

func scanSlide(row pgx.Row) (*domain.SlideData, error) {
	var s domain.SlideData
	var slideType string
	var templateID *string
	var headlineHL, bodyHL []highlight.Span
	var bg *domain.BackgroundDescriptor
	var gradient *domain.GradientSpec
	var overrides []domain.ZoneOverride
	if err := row.Scan(
		&s.ID,
		&s.CarouselID,
		&s.Position,
		&slideType,
		&s.Headline,
		&s.Body,
		&headlineHL,
		&bodyHL,
		&templateID,
		&bg,
		&gradient,
		&overrides,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.Type = domain.SlideType(slideType)
	if templateID != nil {
		s.TemplateID = *templateID
	}
	s.HeadlineHighlights = headlineHL
	s.BodyHighlights = bodyHL
	s.Background = bg
	if gradient != nil {
		s.Gradient = *gradient
	} else {
		s.Gradient = domain.NewUnsetGradient()
	}
	s.ZoneOverrides = overrides
	return &s, nil
}
