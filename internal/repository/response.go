package repository

import (
	"context"

	"surveyapi/internal/model"
)

// ResponseRepository defines data access for survey responses.
type ResponseRepository interface {
	// Create inserts a response. A second response with the same survey and
	// single-use id fails with a unique violation.
	Create(ctx context.Context, resp *model.Response) (*model.Response, error)
}
