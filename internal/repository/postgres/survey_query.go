package postgres

import (
	"fmt"
	"strings"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// queryArgs collects positional arguments and hands out their $n placeholders.
type queryArgs struct {
	args []any
}

func (q *queryArgs) add(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *queryArgs) list(values []string) string {
	ph := make([]string, len(values))
	for i, v := range values {
		ph[i] = q.add(v)
	}
	return strings.Join(ph, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhereClause turns filter criteria into SQL conditions on the surveys table aliased s.
func buildWhereClause(filter *model.SurveyFilterCriteria, q *queryArgs) []string {
	if filter == nil {
		return nil
	}
	var conds []string

	if filter.Name != "" {
		conds = append(conds, "s.name ILIKE "+q.add("%"+likeEscaper.Replace(filter.Name)+"%"))
	}

	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, st := range filter.Status {
			statuses[i] = string(st)
		}
		conds = append(conds, "s.status IN ("+q.list(statuses)+")")
	}

	if len(filter.Type) > 0 {
		types := make([]string, len(filter.Type))
		for i, t := range filter.Type {
			types[i] = string(t)
		}
		conds = append(conds, "s.type IN ("+q.list(types)+")")
	}

	// Asking for both "you" and "others" is the same as not filtering by creator.
	if cb := filter.CreatedBy; cb != nil && len(cb.Value) == 1 {
		switch cb.Value[0] {
		case "you":
			conds = append(conds, "s.created_by = "+q.add(cb.UserID))
		case "others":
			conds = append(conds, "s.created_by <> "+q.add(cb.UserID))
		}
	}

	return conds
}

// buildOrderByClause maps a sort key to an ORDER BY expression. Empty means no explicit order.
func buildOrderByClause(sortBy model.SortBy) string {
	switch sortBy {
	case "":
		return ""
	case model.SortByName:
		return "s.name ASC"
	case model.SortByCreatedAt:
		return "s.created_at DESC"
	default:
		return "s.updated_at DESC"
	}
}

// buildListFilter renders the WHERE clause shared by survey lists and counts.
func buildListFilter(lq repository.SurveyListQuery, q *queryArgs) string {
	conds := []string{"s.environment_id = " + q.add(lq.EnvironmentID)}
	switch lq.Scope {
	case repository.ScopeInProgress:
		conds = append(conds, "s.status = "+q.add(string(model.SurveyStatusInProgress)))
	case repository.ScopeNotInProgress:
		conds = append(conds, "s.status <> "+q.add(string(model.SurveyStatusInProgress)))
	}
	conds = append(conds, buildWhereClause(lq.Filter, q)...)
	return " WHERE " + strings.Join(conds, " AND ")
}

func buildPagination(pq repository.PageQuery, q *queryArgs) string {
	var b strings.Builder
	if pq.Limit > 0 {
		b.WriteString(" LIMIT " + q.add(pq.Limit))
	}
	if pq.Offset > 0 {
		b.WriteString(" OFFSET " + q.add(pq.Offset))
	}
	return b.String()
}
