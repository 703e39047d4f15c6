// Command init_schema creates the JobBridge database tables.
//
// Usage:
//
//	go run cmd/tools/init_schema/main.go
//
// Requires DATABASE_URL environment variable to be set. Every statement is
// idempotent, so rerunning against an existing database is safe.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		user_type TEXT NOT NULL CHECK (user_type IN ('jobseeker', 'company')),
		password_hash TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		owner_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		name_ko TEXT NOT NULL,
		name_en TEXT,
		registration_number TEXT,
		industry TEXT,
		size TEXT,
		website TEXT,
		description TEXT,
		contact_name TEXT,
		contact_phone TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_postings (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		title_ko TEXT NOT NULL,
		title_en TEXT,
		description TEXT,
		location TEXT,
		employment_type TEXT,
		salary_min INTEGER,
		salary_max INTEGER,
		visa_sponsored BOOLEAN NOT NULL DEFAULT FALSE,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		source_url TEXT,
		display_position TEXT CHECK (display_position IN ('top', 'middle', 'bottom')),
		display_priority INTEGER CHECK (display_priority >= 1),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_job_postings_display_slot
		ON job_postings (display_position, display_priority)
		WHERE display_position IS NOT NULL AND active`,
	`CREATE INDEX IF NOT EXISTS idx_job_postings_company ON job_postings (company_id)`,
	`CREATE TABLE IF NOT EXISTS jobseeker_profiles (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		full_name TEXT NOT NULL,
		nationality TEXT,
		visa_status TEXT,
		phone TEXT,
		bio TEXT,
		desired_salary_min INTEGER,
		desired_salary_max INTEGER,
		onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
		user_type TEXT NOT NULL DEFAULT 'jobseeker',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobseeker_skills (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		skill TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, skill)
	)`,
	`CREATE TABLE IF NOT EXISTS jobseeker_languages (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		level TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS jobseeker_desired_positions (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		position TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS jobseeker_preferred_locations (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		location TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, location)
	)`,
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Statement failed: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Schema initialized.")
}
