package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in the order they are applied. Every
// statement is idempotent so the list can be replayed on each start.
var Migrations = []Migration{
	{
		Name: "create_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "create_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			phone TEXT,
			location TEXT,
			website TEXT,
			linkedin TEXT,
			github TEXT,
			headline TEXT,
			summary TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "create_experiences",
		SQL: `CREATE TABLE IF NOT EXISTS experiences (
			id UUID PRIMARY KEY,
			profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			job_title TEXT NOT NULL,
			company TEXT NOT NULL,
			location TEXT,
			start_date TEXT,
			end_date TEXT,
			is_current BOOLEAN NOT NULL DEFAULT false,
			description TEXT,
			achievements TEXT[] NOT NULL DEFAULT '{}',
			skills TEXT[] NOT NULL DEFAULT '{}',
			sort_order INT NOT NULL DEFAULT 0
		)`,
	},
	{
		Name: "create_educations",
		SQL: `CREATE TABLE IF NOT EXISTS educations (
			id UUID PRIMARY KEY,
			profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			degree TEXT NOT NULL,
			institution TEXT NOT NULL,
			field_of_study TEXT,
			location TEXT,
			start_date TEXT,
			end_date TEXT,
			is_current BOOLEAN NOT NULL DEFAULT false,
			grade TEXT,
			description TEXT,
			achievements TEXT[] NOT NULL DEFAULT '{}',
			sort_order INT NOT NULL DEFAULT 0
		)`,
	},
	{
		Name: "create_skills",
		SQL: `CREATE TABLE IF NOT EXISTS skills (
			id UUID PRIMARY KEY,
			profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			category TEXT,
			level INT,
			years_of_exp INT,
			sort_order INT NOT NULL DEFAULT 0
		)`,
	},
	{
		Name: "create_certifications",
		SQL: `CREATE TABLE IF NOT EXISTS certifications (
			id UUID PRIMARY KEY,
			profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			issuing_org TEXT,
			issue_date TEXT,
			expiration_date TEXT,
			does_not_expire BOOLEAN NOT NULL DEFAULT false,
			credential_id TEXT,
			credential_url TEXT,
			sort_order INT NOT NULL DEFAULT 0
		)`,
	},
	{
		Name: "create_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY,
			profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT,
			role TEXT,
			start_date TEXT,
			end_date TEXT,
			is_current BOOLEAN NOT NULL DEFAULT false,
			url TEXT,
			technologies TEXT[] NOT NULL DEFAULT '{}',
			highlights TEXT[] NOT NULL DEFAULT '{}',
			sort_order INT NOT NULL DEFAULT 0
		)`,
	},
	{
		Name: "create_profile_languages",
		SQL: `CREATE TABLE IF NOT EXISTS profile_languages (
			id UUID PRIMARY KEY,
			profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			sort_order INT NOT NULL DEFAULT 0
		)`,
	},
	{
		Name: "create_templates",
		SQL: `CREATE TABLE IF NOT EXISTS templates (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			metadata JSONB,
			generated_html TEXT,
			generated_css TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "create_cvs",
		SQL: `CREATE TABLE IF NOT EXISTS cvs (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			template_id UUID REFERENCES templates(id) ON DELETE SET NULL,
			title TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'PT',
			job_target_title TEXT NOT NULL DEFAULT '',
			job_target_area TEXT NOT NULL DEFAULT '',
			content_json JSONB,
			generated_pdf_url TEXT,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		Name: "index_cvs_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cvs_user_id ON cvs(user_id)`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		logger.Info("Migration completed", "name", m.Name)
	}

	logger.Info("All migrations completed successfully")
	return nil
}
