package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// EnvironmentPostgres is a PostgreSQL implementation of repository.EnvironmentRepository.
type EnvironmentPostgres struct {
	db *sql.DB
}

// NewEnvironmentPostgres creates a new EnvironmentPostgres repository.
func NewEnvironmentPostgres(db *sql.DB) *EnvironmentPostgres {
	return &EnvironmentPostgres{db: db}
}

var _ repository.EnvironmentRepository = (*EnvironmentPostgres)(nil)

// Exists reports whether the environment exists.
func (r *EnvironmentPostgres) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM environments WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindProjectWithLanguages returns the project of an environment with its languages.
func (r *EnvironmentPostgres) FindProjectWithLanguages(ctx context.Context, environmentID string) (*model.ProjectWithLanguages, error) {
	const qProject = `
		SELECT p.id
		FROM environments e
		JOIN projects p ON p.id = e.project_id
		WHERE e.id = $1
	`
	var p model.ProjectWithLanguages
	if err := r.db.QueryRowContext(ctx, qProject, environmentID).Scan(&p.ID); err != nil {
		return nil, err
	}

	const qLanguages = `
		SELECT id, code, alias
		FROM languages
		WHERE project_id = $1
		ORDER BY code
	`
	rows, err := r.db.QueryContext(ctx, qLanguages, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Languages = make([]model.ProjectLanguage, 0)
	for rows.Next() {
		var (
			l     model.ProjectLanguage
			alias sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Code, &alias); err != nil {
			return nil, err
		}
		l.Alias = alias.String
		p.Languages = append(p.Languages, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanActionClass(row rowScanner) (model.ActionClass, error) {
	var (
		ac               model.ActionClass
		description, key sql.NullString
		noCodeConfig     []byte
	)
	if err := row.Scan(
		&ac.ID,
		&ac.Name,
		&ac.EnvironmentID,
		&description,
		&ac.Type,
		&key,
		&noCodeConfig,
	); err != nil {
		return ac, err
	}
	ac.Description = stringPtr(description)
	ac.Key = stringPtr(key)
	ac.NoCodeConfig = rawJSON(noCodeConfig)
	return ac, nil
}

// ListActionClasses returns the action classes of an environment.
func (r *EnvironmentPostgres) ListActionClasses(ctx context.Context, environmentID string) ([]model.ActionClass, error) {
	const q = `
		SELECT id, name, environment_id, description, type, key, no_code_config
		FROM action_classes
		WHERE environment_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, q, environmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ActionClass, 0)
	for rows.Next() {
		ac, err := scanActionClass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action class: %w", err)
		}
		items = append(items, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
