package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

func TestBuildWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    *model.SurveyFilterCriteria
		wantConds []string
		wantArgs  []any
	}{
		{
			name:   "nil filter",
			filter: nil,
		},
		{
			name:      "name contains with wildcards escaped",
			filter:    &model.SurveyFilterCriteria{Name: "50%_off"},
			wantConds: []string{"s.name ILIKE $1"},
			wantArgs:  []any{`%50\%\_off%`},
		},
		{
			name: "status and type lists",
			filter: &model.SurveyFilterCriteria{
				Status: []model.SurveyStatus{model.SurveyStatusDraft, model.SurveyStatusPaused},
				Type:   []model.SurveyType{model.SurveyTypeApp},
			},
			wantConds: []string{"s.status IN ($1, $2)", "s.type IN ($3)"},
			wantArgs:  []any{"draft", "paused", "app"},
		},
		{
			name: "created by you",
			filter: &model.SurveyFilterCriteria{
				CreatedBy: &model.CreatedByFilter{Value: []string{"you"}, UserID: "u1"},
			},
			wantConds: []string{"s.created_by = $1"},
			wantArgs:  []any{"u1"},
		},
		{
			name: "created by others",
			filter: &model.SurveyFilterCriteria{
				CreatedBy: &model.CreatedByFilter{Value: []string{"others"}, UserID: "u1"},
			},
			wantConds: []string{"s.created_by <> $1"},
			wantArgs:  []any{"u1"},
		},
		{
			name: "created by you and others",
			filter: &model.SurveyFilterCriteria{
				CreatedBy: &model.CreatedByFilter{Value: []string{"you", "others"}, UserID: "u1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q queryArgs
			conds := buildWhereClause(tt.filter, &q)
			assert.Equal(t, tt.wantConds, conds)
			assert.Equal(t, tt.wantArgs, q.args)
		})
	}
}

func TestBuildOrderByClause(t *testing.T) {
	assert.Equal(t, "", buildOrderByClause(""))
	assert.Equal(t, "s.name ASC", buildOrderByClause(model.SortByName))
	assert.Equal(t, "s.created_at DESC", buildOrderByClause(model.SortByCreatedAt))
	assert.Equal(t, "s.updated_at DESC", buildOrderByClause(model.SortByUpdatedAt))
	assert.Equal(t, "s.updated_at DESC", buildOrderByClause(model.SortByRelevance))
	assert.Equal(t, "s.updated_at DESC", buildOrderByClause("popularity"))
}

func TestBuildListFilter(t *testing.T) {
	var q queryArgs
	where := buildListFilter(repository.SurveyListQuery{
		EnvironmentID: "env-1",
		Scope:         repository.ScopeNotInProgress,
		Filter:        &model.SurveyFilterCriteria{Type: []model.SurveyType{model.SurveyTypeLink}},
	}, &q)

	assert.Equal(t, " WHERE s.environment_id = $1 AND s.status <> $2 AND s.type IN ($3)", where)
	assert.Equal(t, []any{"env-1", "inProgress", "link"}, q.args)
}

func TestBuildPagination(t *testing.T) {
	var q queryArgs
	assert.Equal(t, "", buildPagination(repository.PageQuery{}, &q))
	assert.Equal(t, " LIMIT $1 OFFSET $2", buildPagination(repository.PageQuery{Limit: 12, Offset: 24}, &q))
	assert.Equal(t, []any{12, 24}, q.args)
}
