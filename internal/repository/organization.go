package repository

import (
	"context"

	"surveyapi/internal/model"
)

// OrganizationRepository defines data access for organizations.
type OrganizationRepository interface {
	// FindBillingByEnvironmentID resolves environment -> project -> organization billing.
	FindBillingByEnvironmentID(ctx context.Context, environmentID string) (*model.OrganizationBilling, error)
}
