package postgres

import (
	"context"
	"database/sql"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// SegmentPostgres is a PostgreSQL implementation of repository.SegmentRepository.
type SegmentPostgres struct {
	db *sql.DB
}

// NewSegmentPostgres creates a new SegmentPostgres repository.
func NewSegmentPostgres(db *sql.DB) *SegmentPostgres {
	return &SegmentPostgres{db: db}
}

var _ repository.SegmentRepository = (*SegmentPostgres)(nil)

const segmentColumns = `id, title, description, is_private, filters, environment_id, created_at, updated_at`

func scanSegment(row rowScanner) (model.Segment, error) {
	var (
		seg         model.Segment
		description sql.NullString
		filters     []byte
	)
	if err := row.Scan(
		&seg.ID,
		&seg.Title,
		&description,
		&seg.IsPrivate,
		&filters,
		&seg.EnvironmentID,
		&seg.CreatedAt,
		&seg.UpdatedAt,
	); err != nil {
		return seg, err
	}
	seg.Description = stringPtr(description)
	seg.Filters = rawJSON(filters)
	return seg, nil
}

// FindByID fetches a single segment by its ID.
func (r *SegmentPostgres) FindByID(ctx context.Context, id string) (*model.Segment, error) {
	q := `SELECT ` + segmentColumns + ` FROM segments WHERE id = $1`
	seg, err := scanSegment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &seg, nil
}

// ListPublic returns the non-private segments of an environment.
func (r *SegmentPostgres) ListPublic(ctx context.Context, environmentID string) ([]model.Segment, error) {
	q := `SELECT ` + segmentColumns + `
		FROM segments
		WHERE environment_id = $1 AND is_private = false
		ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, q, environmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Segment, 0)
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// PublicTitleExists reports whether a non-private segment with the title exists in the environment.
func (r *SegmentPostgres) PublicTitleExists(ctx context.Context, environmentID, title string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM segments
			WHERE environment_id = $1 AND title = $2 AND is_private = false
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, environmentID, title).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes a segment by ID. It does not return an error if the row does not exist.
func (r *SegmentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM segments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
