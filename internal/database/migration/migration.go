package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_organizations",
		SQL: `CREATE TABLE IF NOT EXISTS organizations (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  billing    JSONB       NOT NULL DEFAULT '{"plan":"free","period":"monthly","limits":{"projects":3,"monthly":{"responses":1500,"miu":2000}}}',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  email      TEXT        NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name            TEXT        NOT NULL,
  organization_id UUID        NOT NULL REFERENCES organizations (id) ON DELETE CASCADE,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (organization_id, name)
);`,
	},
	{
		Name: "create_table_environments",
		SQL: `CREATE TABLE IF NOT EXISTS environments (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  type       TEXT        NOT NULL CHECK (type IN ('production', 'development')),
  project_id UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_languages",
		SQL: `CREATE TABLE IF NOT EXISTS languages (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  code       TEXT        NOT NULL,
  alias      TEXT,
  project_id UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (project_id, code)
);`,
	},
	{
		Name: "create_table_segments",
		SQL: `CREATE TABLE IF NOT EXISTS segments (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title          TEXT        NOT NULL,
  description    TEXT,
  is_private     BOOLEAN     NOT NULL DEFAULT true,
  filters        JSONB       NOT NULL DEFAULT '[]',
  environment_id UUID        NOT NULL REFERENCES environments (id) ON DELETE CASCADE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (environment_id, title)
);`,
	},
	{
		Name: "create_table_action_classes",
		SQL: `CREATE TABLE IF NOT EXISTS action_classes (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name           TEXT        NOT NULL,
  description    TEXT,
  type           TEXT        NOT NULL CHECK (type IN ('code', 'noCode')),
  key            TEXT,
  no_code_config JSONB,
  environment_id UUID        NOT NULL REFERENCES environments (id) ON DELETE CASCADE,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (key, environment_id),
  UNIQUE (name, environment_id)
);`,
	},
	{
		Name: "create_table_surveys",
		SQL: `CREATE TABLE IF NOT EXISTS surveys (
  id                    UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name                  TEXT        NOT NULL,
  type                  TEXT        NOT NULL DEFAULT 'link' CHECK (type IN ('link', 'app')),
  status                TEXT        NOT NULL DEFAULT 'draft'
                                    CHECK (status IN ('draft', 'scheduled', 'inProgress', 'paused', 'completed')),
  environment_id        UUID        NOT NULL REFERENCES environments (id) ON DELETE CASCADE,
  created_by            UUID        REFERENCES users (id) ON DELETE SET NULL,
  segment_id            UUID        REFERENCES segments (id) ON DELETE SET NULL,
  welcome_card          JSONB       NOT NULL DEFAULT '{"enabled":false}',
  questions             JSONB       NOT NULL DEFAULT '[]',
  endings               JSONB       NOT NULL DEFAULT '[]',
  variables             JSONB       NOT NULL DEFAULT '[]',
  hidden_fields         JSONB       NOT NULL DEFAULT '{"enabled":true}',
  survey_closed_message JSONB,
  single_use            JSONB       DEFAULT '{"enabled":false,"isEncrypted":true}',
  project_overwrites    JSONB,
  styling               JSONB,
  recaptcha             JSONB       DEFAULT '{"enabled":false,"threshold":0.1}',
  created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_surveys_environment_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_surveys_environment_updated_at ON surveys (environment_id, updated_at DESC);`,
	},
	{
		Name: "create_index_surveys_segment_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_surveys_segment_id ON surveys (segment_id);`,
	},
	{
		Name: "create_table_survey_triggers",
		SQL: `CREATE TABLE IF NOT EXISTS survey_triggers (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  survey_id       UUID        NOT NULL REFERENCES surveys (id) ON DELETE CASCADE,
  action_class_id UUID        NOT NULL REFERENCES action_classes (id) ON DELETE CASCADE,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (survey_id, action_class_id)
);`,
	},
	{
		Name: "create_table_survey_languages",
		SQL: `CREATE TABLE IF NOT EXISTS survey_languages (
  survey_id   UUID    NOT NULL REFERENCES surveys (id) ON DELETE CASCADE,
  language_id UUID    NOT NULL REFERENCES languages (id) ON DELETE CASCADE,
  "default"   BOOLEAN NOT NULL DEFAULT false,
  enabled     BOOLEAN NOT NULL DEFAULT true,
  PRIMARY KEY (language_id, survey_id)
);`,
	},
	{
		Name: "create_table_survey_follow_ups",
		SQL: `CREATE TABLE IF NOT EXISTS survey_follow_ups (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  survey_id  UUID        NOT NULL REFERENCES surveys (id) ON DELETE CASCADE,
  name       TEXT        NOT NULL,
  trigger    JSONB       NOT NULL,
  action     JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_responses",
		SQL: `CREATE TABLE IF NOT EXISTS responses (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  survey_id     UUID        NOT NULL REFERENCES surveys (id) ON DELETE CASCADE,
  finished      BOOLEAN     NOT NULL DEFAULT false,
  data          JSONB       NOT NULL DEFAULT '{}',
  meta          JSONB       NOT NULL DEFAULT '{}',
  ttc           JSONB       NOT NULL DEFAULT '{}',
  variables     JSONB       NOT NULL DEFAULT '{}',
  single_use_id TEXT,
  language      TEXT,
  display_id    UUID,
  ending_id     TEXT,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (survey_id, single_use_id)
);`,
	},
	{
		Name: "create_index_responses_survey_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_responses_survey_created_at ON responses (survey_id, created_at);`,
	},
}

// EnsureMigrated checks if the 'surveys' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	query := "SELECT to_regclass('public.surveys') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error().
			Err(err).
			Str("event", "db_migration_failed").
			Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Err(err).
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()

	return nil
}
