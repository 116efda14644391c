package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ireporter-ke/ireporter/internal/domain"
)

// ReportRepository implements storage.ReportRepository using PostgreSQL.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Insert stores a validated report and assigns its id from the sequence.
func (r *ReportRepository) Insert(ctx context.Context, report *domain.Report) (int, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reports (created_by, kind, location, title, comment, status, images, videos, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		report.CreatedBy,
		report.Kind,
		report.Location,
		report.Title,
		report.Comment,
		report.Status,
		emptyIfNil(report.Images),
		emptyIfNil(report.Videos),
		report.CreatedOn,
	)

	var id int
	if err := row.Scan(&id); err != nil {
		return 0, mapError(err)
	}
	report.ID = id
	return id, nil
}

// Find retrieves a report by id.
func (r *ReportRepository) Find(ctx context.Context, id int) (*domain.Report, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, created_by, kind, location, title, comment, status, images, videos, created_on
		FROM reports WHERE id = $1`, id)

	var report domain.Report
	err := row.Scan(
		&report.ID,
		&report.CreatedBy,
		&report.Kind,
		&report.Location,
		&report.Title,
		&report.Comment,
		&report.Status,
		&report.Images,
		&report.Videos,
		&report.CreatedOn,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &report, nil
}

// Update overwrites the stored record for report.ID.
func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE reports SET
			created_by = $2,
			kind = $3,
			location = $4,
			title = $5,
			comment = $6,
			status = $7,
			images = $8,
			videos = $9
		WHERE id = $1`,
		report.ID,
		report.CreatedBy,
		report.Kind,
		report.Location,
		report.Title,
		report.Comment,
		report.Status,
		emptyIfNil(report.Images),
		emptyIfNil(report.Videos),
	)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Mutate applies fn to the stored record inside one transaction, holding a
// row lock across the read-modify-write so concurrent mutations serialize
// instead of overwriting each other.
func (r *ReportRepository) Mutate(ctx context.Context, id int, fn func(*domain.Report) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		SELECT id, created_by, kind, location, title, comment, status, images, videos, created_on
		FROM reports WHERE id = $1
		FOR UPDATE`, id)

	var report domain.Report
	err = row.Scan(
		&report.ID,
		&report.CreatedBy,
		&report.Kind,
		&report.Location,
		&report.Title,
		&report.Comment,
		&report.Status,
		&report.Images,
		&report.Videos,
		&report.CreatedOn,
	)
	if err != nil {
		return mapError(err)
	}

	if err := fn(&report); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE reports SET
			created_by = $2,
			kind = $3,
			location = $4,
			title = $5,
			comment = $6,
			status = $7,
			images = $8,
			videos = $9
		WHERE id = $1`,
		report.ID,
		report.CreatedBy,
		report.Kind,
		report.Location,
		report.Title,
		report.Comment,
		report.Status,
		emptyIfNil(report.Images),
		emptyIfNil(report.Videos),
	)
	if err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes the report entirely. The sequence is untouched, so the id
// is never handed out again.
func (r *ReportRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns all reports in insertion order.
func (r *ReportRepository) List(ctx context.Context) ([]domain.Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_by, kind, location, title, comment, status, images, videos, created_on
		FROM reports ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(
			&report.ID,
			&report.CreatedBy,
			&report.Kind,
			&report.Location,
			&report.Title,
			&report.Comment,
			&report.Status,
			&report.Images,
			&report.Videos,
			&report.CreatedOn,
		)
		if err != nil {
			return nil, mapError(err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// emptyIfNil keeps NOT NULL array columns happy when the entity never had
// media attached.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
