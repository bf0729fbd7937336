package repository

import (
	"context"

	"surveyapi/internal/model"
)

// StatusScope narrows a survey list relative to the in-progress status.
type StatusScope int

const (
	ScopeAll StatusScope = iota
	ScopeInProgress
	ScopeNotInProgress
)

// SurveyListQuery selects surveys of one environment.
type SurveyListQuery struct {
	EnvironmentID string
	Filter        *model.SurveyFilterCriteria
	Scope         StatusScope
	// OrderBy is ignored by Count. Empty leaves the order to the database.
	OrderBy model.SortBy
	Page    PageQuery
}

// SurveyRepository defines data access for surveys using SQL queries only.
type SurveyRepository interface {
	// FindByID returns the fields needed to accept responses.
	FindByID(ctx context.Context, id string) (*model.Survey, error)

	// FindSummaryByID returns a survey list row.
	FindSummaryByID(ctx context.Context, id string) (*model.SurveySummary, error)

	// List returns survey list rows with their response counts.
	List(ctx context.Context, q SurveyListQuery) ([]model.SurveySummary, error)

	// Count returns the number of surveys matching q.
	Count(ctx context.Context, q SurveyListQuery) (int, error)

	// Delete removes a survey and reports what it pointed at.
	Delete(ctx context.Context, id string) (*model.DeletedSurvey, error)

	// FindCopySource loads everything needed to copy a survey.
	FindCopySource(ctx context.Context, id string) (*model.SurveyCopySource, error)

	// CreateCopy writes a copy plan in a single transaction.
	CreateCopy(ctx context.Context, plan *model.SurveyCopyPlan) (*model.CopiedSurvey, error)

	// UpdateSegment points a survey at another segment.
	UpdateSegment(ctx context.Context, surveyID, segmentID string) error
}
