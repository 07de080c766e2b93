package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
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
		Name: "create_table_patients",
		SQL: `CREATE TABLE IF NOT EXISTS patients (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  organization_id UUID        NOT NULL,
  first_name      TEXT        NOT NULL,
  last_name       TEXT        NOT NULL,
  date_of_birth   DATE,
  phone_number    TEXT,
  email           TEXT,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  organization_id UUID        NOT NULL,
  first_name      TEXT        NOT NULL,
  last_name       TEXT        NOT NULL,
  role            TEXT        NOT NULL DEFAULT 'doctor',
  specialization  TEXT,
  email           TEXT,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_document_assets",
		SQL: `CREATE TABLE IF NOT EXISTS document_assets (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  organization_id UUID        NOT NULL,
  type            TEXT        NOT NULL CHECK (type IN ('logo','signature','background','letterhead')),
  name            TEXT        NOT NULL,
  description     TEXT,
  file_url        TEXT        NOT NULL,
  file_size       BIGINT      NOT NULL CHECK (file_size >= 0),
  mime_type       TEXT        NOT NULL,
  is_active       BOOLEAN     NOT NULL DEFAULT TRUE,
  is_default      BOOLEAN     NOT NULL DEFAULT FALSE,
  uploaded_by     UUID,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_assets_org_type",
		SQL: `CREATE INDEX IF NOT EXISTS idx_document_assets_org_type
  ON document_assets (organization_id, type) WHERE is_active;`,
	},
	{
		// Backstop for the one-default-per-type rule enforced in the
		// application transaction.
		Name: "create_unique_index_document_assets_default",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_document_assets_default
  ON document_assets (organization_id, type) WHERE is_default AND is_active;`,
	},
	{
		Name: "create_table_document_history",
		SQL: `CREATE TABLE IF NOT EXISTS document_history (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  organization_id UUID        NOT NULL,
  patient_id      UUID        NOT NULL REFERENCES patients (id),
  doctor_id       UUID        NOT NULL REFERENCES users (id),
  appointment_id  UUID,
  document_type   TEXT        NOT NULL CHECK (document_type IN
    ('prescription','medical_certificate','exam_order','referral','discharge_summary')),
  template_name   TEXT        NOT NULL,
  document_title  TEXT        NOT NULL,
  file_url        TEXT        NOT NULL,
  file_size       BIGINT      NOT NULL DEFAULT 0 CHECK (file_size >= 0),
  status          TEXT        NOT NULL DEFAULT 'draft' CHECK (status IN
    ('draft','approved','sent','cancelled')),
  generated_by    TEXT        NOT NULL CHECK (generated_by IN ('doctor','ai_assisted','template')),
  ai_prompt       TEXT,
  doctor_notes    TEXT,
  patient_data    JSONB,
  template_data   JSONB,
  assets_used     JSONB,
  approved_at     TIMESTAMPTZ,
  sent_at         TIMESTAMPTZ,
  sent_to         TEXT,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_document_history_org_created_at",
		SQL: `CREATE INDEX IF NOT EXISTS idx_document_history_org_created_at
  ON document_history (organization_id, created_at DESC);`,
	},
	{
		Name: "create_index_document_history_patient",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_history_patient ON document_history (patient_id);`,
	},
	{
		Name: "create_index_document_history_doctor",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_history_doctor ON document_history (doctor_id);`,
	},
	{
		Name: "create_index_document_history_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_history_status ON document_history (organization_id, status);`,
	},
	{
		Name: "create_index_document_history_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_document_history_type ON document_history (organization_id, document_type);`,
	},
}

// EnsureMigrated checks if the 'document_history' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.document_history') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
