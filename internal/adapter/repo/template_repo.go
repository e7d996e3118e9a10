package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slideforge/internal/domain"
)

// TemplateRepositoryPG implements domain.TemplateRepository.
type TemplateRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a template repository backed by PostgreSQL.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepositoryPG {
	return &TemplateRepositoryPG{pool: pool}
}

// GetByID fetches a template; the config column holds the declarative layout.
func (r *TemplateRepositoryPG) GetByID(ctx context.Context, id string) (*domain.TemplateConfig, error) {
	query := `
SELECT id, name, width, height, config
FROM templates
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var tpl domain.TemplateConfig
	var cfg struct {
		SafeArea   domain.SafeArea             `json:"safe_area"`
		Background domain.BackgroundDescriptor `json:"background"`
		Gradient   domain.GradientSpec         `json:"gradient"`
		Zones      []domain.TextZone           `json:"zones"`
		Chrome     domain.ChromeRules          `json:"chrome"`
	}
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Width, &tpl.Height, &cfg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tpl.SafeArea = cfg.SafeArea
	tpl.Background = cfg.Background
	tpl.Gradient = cfg.Gradient
	tpl.Zones = cfg.Zones
	tpl.Chrome = cfg.Chrome
	return &tpl, nil
}
