package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"surveyapi/internal/model"
	"surveyapi/internal/repository"
)

// SurveyPostgres is a PostgreSQL implementation of repository.SurveyRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type SurveyPostgres struct {
	db *sql.DB
}

// NewSurveyPostgres creates a new SurveyPostgres repository.
func NewSurveyPostgres(db *sql.DB) *SurveyPostgres {
	return &SurveyPostgres{db: db}
}

var _ repository.SurveyRepository = (*SurveyPostgres)(nil)

const summaryColumns = `
		s.id, s.created_at, s.updated_at, s.name, s.type, u.name, s.status, s.single_use, s.environment_id,
		(SELECT COUNT(*) FROM responses r WHERE r.survey_id = s.id) AS response_count`

const summaryFrom = `
		FROM surveys s
		LEFT JOIN users u ON u.id = s.created_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (model.SurveySummary, error) {
	var (
		out         model.SurveySummary
		creatorName sql.NullString
		singleUse   []byte
	)
	if err := row.Scan(
		&out.ID,
		&out.CreatedAt,
		&out.UpdatedAt,
		&out.Name,
		&out.Type,
		&creatorName,
		&out.Status,
		&singleUse,
		&out.EnvironmentID,
		&out.ResponseCount,
	); err != nil {
		return out, err
	}
	if creatorName.Valid {
		out.Creator = &model.SurveyCreator{Name: creatorName.String}
	}
	if err := decodeJSON(singleUse, &out.SingleUse); err != nil {
		return out, fmt.Errorf("decode single_use: %w", err)
	}
	return out, nil
}

// FindByID fetches the response-acceptance view of a survey.
func (r *SurveyPostgres) FindByID(ctx context.Context, id string) (*model.Survey, error) {
	const q = `
		SELECT id, created_at, updated_at, name, type, status, environment_id,
		       created_by, segment_id, single_use, recaptcha
		FROM surveys
		WHERE id = $1
	`
	var (
		s                    model.Survey
		createdBy, segmentID sql.NullString
		singleUse, recaptcha []byte
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Name,
		&s.Type,
		&s.Status,
		&s.EnvironmentID,
		&createdBy,
		&segmentID,
		&singleUse,
		&recaptcha,
	); err != nil {
		return nil, err
	}
	s.CreatedBy = stringPtr(createdBy)
	s.SegmentID = stringPtr(segmentID)
	if err := decodeJSON(singleUse, &s.SingleUse); err != nil {
		return nil, fmt.Errorf("decode single_use: %w", err)
	}
	if err := decodeJSON(recaptcha, &s.Recaptcha); err != nil {
		return nil, fmt.Errorf("decode recaptcha: %w", err)
	}
	return &s, nil
}

// FindSummaryByID fetches a single survey list row.
func (r *SurveyPostgres) FindSummaryByID(ctx context.Context, id string) (*model.SurveySummary, error) {
	q := "SELECT" + summaryColumns + summaryFrom + "\n\t\tWHERE s.id = $1"
	out, err := scanSummary(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns survey rows of one environment.
func (r *SurveyPostgres) List(ctx context.Context, lq repository.SurveyListQuery) ([]model.SurveySummary, error) {
	var args queryArgs
	q := "SELECT" + summaryColumns + summaryFrom + buildListFilter(lq, &args)
	if order := buildOrderByClause(lq.OrderBy); order != "" {
		q += " ORDER BY " + order
	}
	q += buildPagination(lq.Page, &args)

	rows, err := r.db.QueryContext(ctx, q, args.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SurveySummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of surveys matching the query.
func (r *SurveyPostgres) Count(ctx context.Context, lq repository.SurveyListQuery) (int, error) {
	var args queryArgs
	q := "SELECT COUNT(*) FROM surveys s" + buildListFilter(lq, &args)

	var total int
	if err := r.db.QueryRowContext(ctx, q, args.args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Delete removes a survey. Triggers, languages and follow-ups go with it through cascades.
func (r *SurveyPostgres) Delete(ctx context.Context, id string) (*model.DeletedSurvey, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const qTriggers = `SELECT action_class_id FROM survey_triggers WHERE survey_id = $1`
	rows, err := tx.QueryContext(ctx, qTriggers, id)
	if err != nil {
		return nil, err
	}
	var actionClassIDs []string
	for rows.Next() {
		var acID string
		if err := rows.Scan(&acID); err != nil {
			rows.Close()
			return nil, err
		}
		actionClassIDs = append(actionClassIDs, acID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qDelete = `
		WITH deleted AS (
			DELETE FROM surveys WHERE id = $1
			RETURNING id, environment_id, type, segment_id
		)
		SELECT d.id, d.environment_id, d.type, seg.id, seg.is_private
		FROM deleted d
		LEFT JOIN segments seg ON seg.id = d.segment_id
	`
	var (
		out       model.DeletedSurvey
		segmentID sql.NullString
		isPrivate sql.NullBool
	)
	if err := tx.QueryRowContext(ctx, qDelete, id).Scan(
		&out.ID,
		&out.EnvironmentID,
		&out.Type,
		&segmentID,
		&isPrivate,
	); err != nil {
		return nil, err
	}
	if segmentID.Valid {
		out.Segment = &model.DeletedSegment{ID: segmentID.String, IsPrivate: isPrivate.Bool}
	}
	out.TriggerActionClassID = actionClassIDs

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindCopySource loads a survey with its segment, languages, follow-ups and trigger action classes.
func (r *SurveyPostgres) FindCopySource(ctx context.Context, id string) (*model.SurveyCopySource, error) {
	const qSurvey = `
		SELECT s.id, s.name, s.type, s.welcome_card, s.questions, s.endings, s.variables, s.hidden_fields,
		       s.survey_closed_message, s.single_use, s.project_overwrites, s.styling,
		       seg.id, seg.title, seg.description, seg.is_private, seg.filters, seg.environment_id,
		       seg.created_at, seg.updated_at
		FROM surveys s
		LEFT JOIN segments seg ON seg.id = s.segment_id
		WHERE s.id = $1
	`
	var (
		src                                        model.SurveyCopySource
		welcomeCard, questions, endings, variables []byte
		hiddenFields, closedMessage, singleUse     []byte
		projectOverwrites, styling                 []byte
		segID, segTitle, segDescription, segEnvID  sql.NullString
		segPrivate                                 sql.NullBool
		segFilters                                 []byte
		segCreatedAt, segUpdatedAt                 sql.NullTime
	)
	if err := r.db.QueryRowContext(ctx, qSurvey, id).Scan(
		&src.ID,
		&src.Name,
		&src.Type,
		&welcomeCard,
		&questions,
		&endings,
		&variables,
		&hiddenFields,
		&closedMessage,
		&singleUse,
		&projectOverwrites,
		&styling,
		&segID,
		&segTitle,
		&segDescription,
		&segPrivate,
		&segFilters,
		&segEnvID,
		&segCreatedAt,
		&segUpdatedAt,
	); err != nil {
		return nil, err
	}
	src.WelcomeCard = rawJSON(welcomeCard)
	src.Questions = rawJSON(questions)
	src.Endings = rawJSON(endings)
	src.Variables = rawJSON(variables)
	src.HiddenFields = rawJSON(hiddenFields)
	src.SurveyClosedMessage = rawJSON(closedMessage)
	src.SingleUse = rawJSON(singleUse)
	src.ProjectOverwrites = rawJSON(projectOverwrites)
	src.Styling = rawJSON(styling)
	if segID.Valid {
		src.Segment = &model.Segment{
			ID:            segID.String,
			Title:         segTitle.String,
			Description:   stringPtr(segDescription),
			IsPrivate:     segPrivate.Bool,
			Filters:       rawJSON(segFilters),
			EnvironmentID: segEnvID.String,
			CreatedAt:     segCreatedAt.Time,
			UpdatedAt:     segUpdatedAt.Time,
		}
	}

	var err error
	if src.Languages, err = r.copySourceLanguages(ctx, id); err != nil {
		return nil, err
	}
	if src.FollowUps, err = r.copySourceFollowUps(ctx, id); err != nil {
		return nil, err
	}
	if src.Triggers, err = r.copySourceTriggers(ctx, id); err != nil {
		return nil, err
	}
	return &src, nil
}

func (r *SurveyPostgres) copySourceLanguages(ctx context.Context, surveyID string) ([]model.SurveyLanguage, error) {
	const q = `
		SELECT sl."default", sl.enabled, l.code, l.alias
		FROM survey_languages sl
		JOIN languages l ON l.id = sl.language_id
		WHERE sl.survey_id = $1
		ORDER BY l.code
	`
	rows, err := r.db.QueryContext(ctx, q, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SurveyLanguage
	for rows.Next() {
		var (
			sl    model.SurveyLanguage
			alias sql.NullString
		)
		if err := rows.Scan(&sl.Default, &sl.Enabled, &sl.Code, &alias); err != nil {
			return nil, err
		}
		sl.Alias = alias.String
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (r *SurveyPostgres) copySourceFollowUps(ctx context.Context, surveyID string) ([]model.SurveyFollowUp, error) {
	const q = `
		SELECT name, trigger, action
		FROM survey_follow_ups
		WHERE survey_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, q, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SurveyFollowUp
	for rows.Next() {
		var (
			f               model.SurveyFollowUp
			trigger, action []byte
		)
		if err := rows.Scan(&f.Name, &trigger, &action); err != nil {
			return nil, err
		}
		f.Trigger = rawJSON(trigger)
		f.Action = rawJSON(action)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SurveyPostgres) copySourceTriggers(ctx context.Context, surveyID string) ([]model.ActionClass, error) {
	const q = `
		SELECT ac.id, ac.name, ac.environment_id, ac.description, ac.type, ac.key, ac.no_code_config
		FROM survey_triggers t
		JOIN action_classes ac ON ac.id = t.action_class_id
		WHERE t.survey_id = $1
		ORDER BY t.created_at
	`
	rows, err := r.db.QueryContext(ctx, q, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ActionClass
	for rows.Next() {
		ac, err := scanActionClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ac)
	}
	return out, rows.Err()
}

// CreateCopy writes the copied survey and everything it references in one transaction.
func (r *SurveyPostgres) CreateCopy(ctx context.Context, plan *model.SurveyCopyPlan) (*model.CopiedSurvey, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	out := &model.CopiedSurvey{
		ID:            plan.ID,
		EnvironmentID: plan.EnvironmentID,
		Triggers:      make([]model.CopiedTrigger, 0, len(plan.Triggers)),
		Languages:     make([]model.CopiedLanguage, 0, len(plan.Languages)),
	}

	languageIDs := make([]string, len(plan.Languages))
	for i, lang := range plan.Languages {
		const q = `
			INSERT INTO languages (code, alias, project_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (project_id, code) DO UPDATE SET code = EXCLUDED.code
			RETURNING id
		`
		var alias any
		if lang.Alias != "" {
			alias = lang.Alias
		}
		if err := tx.QueryRowContext(ctx, q, lang.Code, alias, lang.ProjectID).Scan(&languageIDs[i]); err != nil {
			return nil, fmt.Errorf("upsert language %s: %w", lang.Code, err)
		}
	}

	var segmentID any
	if sp := plan.Segment; sp != nil {
		if sp.Create != nil {
			const q = `
				INSERT INTO segments (id, title, description, is_private, filters, environment_id)
				VALUES ($1, $2, $3, $4, $5, $6)
			`
			seg := sp.Create
			if _, err := tx.ExecContext(ctx, q,
				seg.ID,
				seg.Title,
				nullString(seg.Description),
				seg.IsPrivate,
				jsonArg(seg.Filters),
				seg.EnvironmentID,
			); err != nil {
				return nil, fmt.Errorf("create segment: %w", err)
			}
			segmentID = seg.ID
		} else {
			segmentID = sp.ConnectID
		}
		out.Segment = &model.SegmentRef{ID: segmentID.(string)}
	}

	const qSurvey = `
		INSERT INTO surveys (
			id, name, type, status, environment_id, created_by, segment_id,
			welcome_card, questions, endings, variables, hidden_fields,
			survey_closed_message, single_use, project_overwrites, styling
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	var createdBy any
	if plan.CreatedBy != "" {
		createdBy = plan.CreatedBy
	}
	if _, err := tx.ExecContext(ctx, qSurvey,
		plan.ID,
		plan.Name,
		plan.Type,
		plan.Status,
		plan.EnvironmentID,
		createdBy,
		segmentID,
		jsonArg(plan.WelcomeCard),
		jsonArg(plan.Questions),
		jsonArg(plan.Endings),
		jsonArg(plan.Variables),
		jsonArg(plan.HiddenFields),
		jsonArg(plan.SurveyClosedMessage),
		jsonArg(plan.SingleUse),
		jsonArg(plan.ProjectOverwrites),
		jsonArg(plan.Styling),
	); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}

	for _, tp := range plan.Triggers {
		ac, err := resolveActionClass(ctx, tx, tp)
		if err != nil {
			return nil, err
		}
		const q = `INSERT INTO survey_triggers (survey_id, action_class_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, q, plan.ID, ac.ID); err != nil {
			return nil, fmt.Errorf("create trigger: %w", err)
		}
		out.Triggers = append(out.Triggers, model.CopiedTrigger{ActionClass: ac})
	}

	for i, lang := range plan.Languages {
		const q = `
			INSERT INTO survey_languages (survey_id, language_id, "default", enabled)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, q, plan.ID, languageIDs[i], lang.Default, lang.Enabled); err != nil {
			return nil, fmt.Errorf("link language %s: %w", lang.Code, err)
		}
		out.Languages = append(out.Languages, model.CopiedLanguage{Code: lang.Code})
	}

	for _, f := range plan.FollowUps {
		const q = `
			INSERT INTO survey_follow_ups (survey_id, name, trigger, action)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, q, plan.ID, f.Name, jsonArg(f.Trigger), jsonArg(f.Action)); err != nil {
			return nil, fmt.Errorf("create follow-up: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveActionClass(ctx context.Context, tx *sql.Tx, tp model.TriggerPlan) (model.CopiedActionClass, error) {
	ac := tp.ActionClass
	if tp.Mode == model.TriggerConnect {
		return model.CopiedActionClass{ID: ac.ID, Name: ac.Name, EnvironmentID: ac.EnvironmentID}, nil
	}

	q := `
		INSERT INTO action_classes (name, description, type, key, no_code_config, environment_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	switch tp.Mode {
	case model.TriggerUpsertByKey:
		q += " ON CONFLICT (key, environment_id) DO UPDATE SET key = EXCLUDED.key"
	case model.TriggerUpsertByName:
		q += " ON CONFLICT (name, environment_id) DO UPDATE SET name = EXCLUDED.name"
	}
	q += " RETURNING id, name, environment_id"

	var out model.CopiedActionClass
	if err := tx.QueryRowContext(ctx, q,
		ac.Name,
		nullString(ac.Description),
		ac.Type,
		nullString(ac.Key),
		jsonArg(ac.NoCodeConfig),
		ac.EnvironmentID,
	).Scan(&out.ID, &out.Name, &out.EnvironmentID); err != nil {
		return out, fmt.Errorf("resolve action class %s: %w", ac.Name, err)
	}
	return out, nil
}

// UpdateSegment points a survey at segmentID.
func (r *SurveyPostgres) UpdateSegment(ctx context.Context, surveyID, segmentID string) error {
	const q = `UPDATE surveys SET segment_id = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, surveyID, segmentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
