package repository

import (
	"context"

	"surveyapi/internal/model"
)

// SegmentRepository defines data access for segments.
type SegmentRepository interface {
	FindByID(ctx context.Context, id string) (*model.Segment, error)

	// ListPublic returns the non-private segments of an environment, most recently updated first.
	ListPublic(ctx context.Context, environmentID string) ([]model.Segment, error)

	// PublicTitleExists reports whether the environment has a non-private segment with the title.
	PublicTitleExists(ctx context.Context, environmentID, title string) (bool, error)

	Delete(ctx context.Context, id string) error
}
