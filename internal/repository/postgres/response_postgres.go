package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// ResponsePostgres is a PostgreSQL implementation of repository.ResponseRepository.
type ResponsePostgres struct {
	db *sql.DB
}

// NewResponsePostgres creates a new ResponsePostgres repository.
func NewResponsePostgres(db *sql.DB) *ResponsePostgres {
	return &ResponsePostgres{db: db}
}

var _ repository.ResponseRepository = (*ResponsePostgres)(nil)

// Create inserts a new response row and returns the stored record.
func (r *ResponsePostgres) Create(ctx context.Context, resp *model.Response) (*model.Response, error) {
	data, err := json.Marshal(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("encode data: %w", err)
	}
	meta, err := json.Marshal(resp.Meta)
	if err != nil {
		return nil, fmt.Errorf("encode meta: %w", err)
	}
	ttc, err := json.Marshal(resp.TTC)
	if err != nil {
		return nil, fmt.Errorf("encode ttc: %w", err)
	}
	variables, err := json.Marshal(resp.Variables)
	if err != nil {
		return nil, fmt.Errorf("encode variables: %w", err)
	}

	const q = `
		INSERT INTO responses (
			id, survey_id, finished, data, meta, ttc, variables,
			single_use_id, language, display_id, ending_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id, created_at, updated_at
	`
	out := *resp
	if err := r.db.QueryRowContext(ctx, q,
		resp.ID,
		resp.SurveyID,
		resp.Finished,
		nullObject(data),
		meta,
		nullObject(ttc),
		nullObject(variables),
		nullString(resp.SingleUseID),
		nullString(resp.Language),
		nullString(resp.DisplayID),
		nullString(resp.EndingID),
		resp.CreatedAt,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// nullObject replaces an encoded nil map with an empty JSON object.
func nullObject(b []byte) []byte {
	if string(b) == "null" {
		return []byte("{}")
	}
	return b
}
