package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
)

type MockSegmentService struct {
	mock.Mock
}

func (m *MockSegmentService) ListLoadable(ctx context.Context, environmentID string) ([]model.Segment, error) {
	args := m.Called(ctx, environmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Segment), args.Error(1)
}

func (m *MockSegmentService) Load(ctx context.Context, surveyID, segmentID string) (*model.SurveySegment, error) {
	args := m.Called(ctx, surveyID, segmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveySegment), args.Error(1)
}
