package repository

import (
	"context"

	"surveyapi/internal/model"
)

// EnvironmentRepository defines data access for environments and their projects.
type EnvironmentRepository interface {
	Exists(ctx context.Context, id string) (bool, error)

	// FindProjectWithLanguages returns the project owning the environment.
	FindProjectWithLanguages(ctx context.Context, environmentID string) (*model.ProjectWithLanguages, error)

	// ListActionClasses returns every action class of the environment.
	ListActionClasses(ctx context.Context, environmentID string) ([]model.ActionClass, error)
}
