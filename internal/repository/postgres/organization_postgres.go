package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// OrganizationPostgres is a PostgreSQL implementation of repository.OrganizationRepository.
type OrganizationPostgres struct {
	db *sql.DB
}

// NewOrganizationPostgres creates a new OrganizationPostgres repository.
func NewOrganizationPostgres(db *sql.DB) *OrganizationPostgres {
	return &OrganizationPostgres{db: db}
}

var _ repository.OrganizationRepository = (*OrganizationPostgres)(nil)

// FindBillingByEnvironmentID walks environment -> project -> organization.
func (r *OrganizationPostgres) FindBillingByEnvironmentID(ctx context.Context, environmentID string) (*model.OrganizationBilling, error) {
	const q = `
		SELECT o.billing
		FROM environments e
		JOIN projects p ON p.id = e.project_id
		JOIN organizations o ON o.id = p.organization_id
		WHERE e.id = $1
	`
	var raw []byte
	if err := r.db.QueryRowContext(ctx, q, environmentID).Scan(&raw); err != nil {
		return nil, err
	}
	var billing model.OrganizationBilling
	if err := decodeJSON(raw, &billing); err != nil {
		return nil, fmt.Errorf("decode billing: %w", err)
	}
	return &billing, nil
}
