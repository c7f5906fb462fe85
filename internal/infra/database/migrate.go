package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		lastname TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		lead_id UUID NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS contacts_email_lower_idx ON contacts (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS leads (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		lastname TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		interest TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT 'web',
		status TEXT NOT NULL DEFAULT 'new',
		notes TEXT NOT NULL DEFAULT '',
		converted_to_contact_id UUID NULL REFERENCES contacts(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (email, source)
	)`,
	`CREATE INDEX IF NOT EXISTS leads_status_idx ON leads (status)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		contact_id UUID NULL REFERENCES contacts(id) ON DELETE SET NULL,
		stage TEXT NOT NULL DEFAULT 'new',
		amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'MXN',
		expected_close_date DATE NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS deals_stage_idx ON deals (stage)`,
	`CREATE TABLE IF NOT EXISTS lead_activities (
		id UUID PRIMARY KEY,
		lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
		from_stage TEXT NULL,
		to_stage TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS lead_activities_lead_idx ON lead_activities (lead_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS deal_activities (
		id UUID PRIMARY KEY,
		deal_id UUID NOT NULL REFERENCES deals(id) ON DELETE CASCADE,
		from_stage TEXT NULL,
		to_stage TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS deal_activities_deal_idx ON deal_activities (deal_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS modalities (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id UUID PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		category_slug TEXT NOT NULL DEFAULT '',
		modality_slug TEXT NOT NULL DEFAULT '',
		duration_hours INT NOT NULL DEFAULT 0,
		price NUMERIC(12,2) NOT NULL DEFAULT 0,
		topics TEXT[] NOT NULL DEFAULT '{}',
		image_url TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		logo_url TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS testimonials (
		id UUID PRIMARY KEY,
		author TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		quote TEXT NOT NULL,
		avatar_url TEXT NOT NULL DEFAULT '',
		published BOOLEAN NOT NULL DEFAULT FALSE,
		sort_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates missing tables. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i, err)
		}
	}
	return nil
}
