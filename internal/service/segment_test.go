package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"surveyapi/internal/errs"
	"surveyapi/internal/model"
	repoMocks "surveyapi/internal/repository/mocks"
)

func TestSegmentService_ListLoadable(t *testing.T) {
	ctx := context.Background()
	mSurveys := new(repoMocks.MockSurveyRepository)
	mSegments := new(repoMocks.MockSegmentRepository)
	mSegments.On("ListPublic", ctx, "env-1").Return([]model.Segment{{ID: "seg-2"}, {ID: "seg-1"}}, nil)
	mSegments.On("ListPublic", ctx, "env-2").Return(nil, &pgconn.PgError{Message: "boom"})
	svc := NewSegmentService(mSurveys, mSegments, zerolog.Nop())

	got, err := svc.ListLoadable(ctx, "env-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.ListLoadable(ctx, "env-2")
	var dbErr *errs.DatabaseError
	assert.ErrorAs(t, err, &dbErr)
}

func TestSegmentService_Load(t *testing.T) {
	ctx := context.Background()
	oldID := "seg-old"
	newSegment := &model.Segment{ID: "seg-new", Title: "Power users", EnvironmentID: "env-1"}

	tests := []struct {
		name       string
		setupMocks func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository)
		wantErr    func(t *testing.T, err error)
	}{
		{
			name: "replaces a private segment and deletes it",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-1", SegmentID: &oldID}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(newSegment, nil)
				mSegments.On("FindByID", ctx, "seg-old").Return(&model.Segment{ID: "seg-old", IsPrivate: true}, nil)
				mSurveys.On("UpdateSegment", ctx, "s1", "seg-new").Return(nil)
				mSegments.On("Delete", ctx, "seg-old").Return(nil)
			},
		},
		{
			name: "replaces a public segment and keeps it",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-1", SegmentID: &oldID}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(newSegment, nil)
				mSegments.On("FindByID", ctx, "seg-old").Return(&model.Segment{ID: "seg-old"}, nil)
				mSurveys.On("UpdateSegment", ctx, "s1", "seg-new").Return(nil)
			},
		},
		{
			name: "survey without a segment",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-1"}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(newSegment, nil)
				mSurveys.On("UpdateSegment", ctx, "s1", "seg-new").Return(nil)
			},
		},
		{
			name: "segment already loaded",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				current := "seg-new"
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-1", SegmentID: &current}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(newSegment, nil)
			},
		},
		{
			name: "survey not found",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(nil, sql.ErrNoRows)
			},
			wantErr: func(t *testing.T, err error) {
				var notFound *errs.ResourceNotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "Survey", notFound.Resource)
			},
		},
		{
			name: "segment not found",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-1"}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(nil, sql.ErrNoRows)
			},
			wantErr: func(t *testing.T, err error) {
				var notFound *errs.ResourceNotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, "Segment", notFound.Resource)
			},
		},
		{
			name: "segment of another environment",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-2"}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(newSegment, nil)
			},
			wantErr: func(t *testing.T, err error) {
				var invalid *errs.InvalidInputError
				assert.ErrorAs(t, err, &invalid)
			},
		},
		{
			name: "update fails",
			setupMocks: func(mSurveys *repoMocks.MockSurveyRepository, mSegments *repoMocks.MockSegmentRepository) {
				mSurveys.On("FindByID", ctx, "s1").Return(&model.Survey{ID: "s1", EnvironmentID: "env-1"}, nil)
				mSegments.On("FindByID", ctx, "seg-new").Return(newSegment, nil)
				mSurveys.On("UpdateSegment", ctx, "s1", "seg-new").Return(&pgconn.PgError{Message: "deadlock"})
			},
			wantErr: func(t *testing.T, err error) {
				var dbErr *errs.DatabaseError
				require.ErrorAs(t, err, &dbErr)
				assert.Equal(t, "deadlock", dbErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mSurveys := new(repoMocks.MockSurveyRepository)
			mSegments := new(repoMocks.MockSegmentRepository)
			tt.setupMocks(mSurveys, mSegments)
			svc := NewSegmentService(mSurveys, mSegments, zerolog.Nop())

			got, err := svc.Load(ctx, "s1", "seg-new")

			if tt.wantErr != nil {
				tt.wantErr(t, err)
				assert.Nil(t, got)
				mSegments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "s1", got.SurveyID)
				assert.Equal(t, "seg-new", got.Segment.ID)
			}
			mSurveys.AssertExpectations(t)
			mSegments.AssertExpectations(t)
		})
	}
}
