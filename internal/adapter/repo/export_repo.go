package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slideforge/internal/domain"
)

// ExportRepositoryPG implements domain.ExportRepository.
type ExportRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewExportRepository creates an export repository backed by PostgreSQL.
func NewExportRepository(pool *pgxpool.Pool) *ExportRepositoryPG {
	return &ExportRepositoryPG{pool: pool}
}

// GetByID fetches an export record.
func (r *ExportRepositoryPG) GetByID(ctx context.Context, id string) (*domain.ExportRecord, error) {
	query := `
SELECT id, carousel_id, user_id, status, format, width, height, archive_path, error_message, created_at, updated_at
FROM exports
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var e domain.ExportRecord
	var status, format string
	if err := row.Scan(
		&e.ID,
		&e.CarouselID,
		&e.UserID,
		&status,
		&format,
		&e.Size.Width,
		&e.Size.Height,
		&e.ArchivePath,
		&e.Error,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Status = domain.ExportStatus(status)
	e.Format = domain.ExportFormat(format)
	return &e, nil
}

// ClaimPending verifies the record is still pending. The conditional update
// makes concurrent runs of the same export mutually exclusive without a
// distributed lock.
func (r *ExportRepositoryPG) ClaimPending(ctx context.Context, id string) error {
	query := `
UPDATE exports
SET updated_at = NOW()
WHERE id = $1 AND status = $2;
`
	tag, err := r.pool.Exec(ctx, query, id, domain.ExportStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExportNotPending
	}
	return nil
}

// MarkReady flips the record to ready with its archive path.
func (r *ExportRepositoryPG) MarkReady(ctx context.Context, id string, archivePath string) error {
	query := `
UPDATE exports
SET status = $2, archive_path = $3, error_message = '', updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, id, domain.ExportStatusReady, archivePath)
	return err
}

// MarkFailed flips the record to failed with the user-facing message.
func (r *ExportRepositoryPG) MarkFailed(ctx context.Context, id string, message string) error {
	query := `
UPDATE exports
SET status = $2, error_message = $3, updated_at = NOW()
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query, id, domain.ExportStatusFailed, message)
	return err
}
