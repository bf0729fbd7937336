package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string, threshold float64) bool {
	args := m.Called(ctx, token, threshold)
	return args.Bool(0)
}
