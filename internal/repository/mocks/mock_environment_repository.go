package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
)

type MockEnvironmentRepository struct {
	mock.Mock
}

func (m *MockEnvironmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEnvironmentRepository) FindProjectWithLanguages(ctx context.Context, environmentID string) (*model.ProjectWithLanguages, error) {
	args := m.Called(ctx, environmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectWithLanguages), args.Error(1)
}

func (m *MockEnvironmentRepository) ListActionClasses(ctx context.Context, environmentID string) ([]model.ActionClass, error) {
	args := m.Called(ctx, environmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActionClass), args.Error(1)
}
