package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
)

type MockSegmentRepository struct {
	mock.Mock
}

func (m *MockSegmentRepository) FindByID(ctx context.Context, id string) (*model.Segment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Segment), args.Error(1)
}

func (m *MockSegmentRepository) ListPublic(ctx context.Context, environmentID string) ([]model.Segment, error) {
	args := m.Called(ctx, environmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Segment), args.Error(1)
}

func (m *MockSegmentRepository) PublicTitleExists(ctx context.Context, environmentID, title string) (bool, error) {
	args := m.Called(ctx, environmentID, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockSegmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
