package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) FindByID(ctx context.Context, id string) (*model.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *MockSurveyRepository) FindSummaryByID(ctx context.Context, id string) (*model.SurveySummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveySummary), args.Error(1)
}

func (m *MockSurveyRepository) List(ctx context.Context, q repository.SurveyListQuery) ([]model.SurveySummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveySummary), args.Error(1)
}

func (m *MockSurveyRepository) Count(ctx context.Context, q repository.SurveyListQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockSurveyRepository) Delete(ctx context.Context, id string) (*model.DeletedSurvey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeletedSurvey), args.Error(1)
}

func (m *MockSurveyRepository) FindCopySource(ctx context.Context, id string) (*model.SurveyCopySource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveyCopySource), args.Error(1)
}

func (m *MockSurveyRepository) CreateCopy(ctx context.Context, plan *model.SurveyCopyPlan) (*model.CopiedSurvey, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CopiedSurvey), args.Error(1)
}

func (m *MockSurveyRepository) UpdateSegment(ctx context.Context, surveyID, segmentID string) error {
	args := m.Called(ctx, surveyID, segmentID)
	return args.Error(0)
}
