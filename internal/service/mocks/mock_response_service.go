package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
)

type MockResponseService struct {
	mock.Mock
}

func (m *MockResponseService) Create(ctx context.Context, environmentID string, input *model.ResponseInput) (*model.Response, error) {
	args := m.Called(ctx, environmentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Response), args.Error(1)
}
