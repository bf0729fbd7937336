package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
)

type MockSurveyService struct {
	mock.Mock
}

func (m *MockSurveyService) List(ctx context.Context, environmentID string, limit, offset int, filter *model.SurveyFilterCriteria) ([]model.SurveySummary, error) {
	args := m.Called(ctx, environmentID, limit, offset, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveySummary), args.Error(1)
}

func (m *MockSurveyService) Get(ctx context.Context, surveyID string) (*model.SurveySummary, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveySummary), args.Error(1)
}

func (m *MockSurveyService) Delete(ctx context.Context, surveyID string) error {
	args := m.Called(ctx, surveyID)
	return args.Error(0)
}

func (m *MockSurveyService) Count(ctx context.Context, environmentID string) (int, error) {
	args := m.Called(ctx, environmentID)
	return args.Int(0), args.Error(1)
}

func (m *MockSurveyService) CopyToOtherEnvironment(ctx context.Context, environmentID, surveyID, targetEnvironmentID, userID string) (*model.CopiedSurvey, error) {
	args := m.Called(ctx, environmentID, surveyID, targetEnvironmentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CopiedSurvey), args.Error(1)
}

func (m *MockSurveyService) GenerateSingleUseLinks(ctx context.Context, surveyID string, count int) ([]string, error) {
	args := m.Called(ctx, surveyID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
