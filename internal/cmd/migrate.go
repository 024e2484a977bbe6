package main

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on startup. Statements are idempotent so repeated
// boots are safe; schema changes ship as new IF NOT EXISTS statements.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		profile_picture TEXT,
		roles JSONB NOT NULL DEFAULT '["ROLE_USER"]',
		level INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tribes (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id UUID PRIMARY KEY,
		in_game_name TEXT NOT NULL,
		steam_name TEXT NOT NULL DEFAULT '',
		discord_name TEXT NOT NULL DEFAULT '',
		tribe_id UUID REFERENCES tribes(id) ON DELETE SET NULL,
		level INT NOT NULL DEFAULT 0,
		date_seen TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		auth_user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS maps (
		id UUID PRIMARY KEY,
		base_map_name TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		img TEXT NOT NULL DEFAULT '',
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		tribe_id UUID REFERENCES tribes(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_maps_owner ON maps(owner_id)`,
	`CREATE TABLE IF NOT EXISTS points (
		id UUID PRIMARY KEY,
		map_id UUID NOT NULL REFERENCES maps(id) ON DELETE CASCADE,
		category TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		p_x DOUBLE PRECISION NOT NULL DEFAULT 0,
		p_y DOUBLE PRECISION NOT NULL DEFAULT 0,
		name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '#ff0000',
		size INT NOT NULL DEFAULT 10,
		created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_points_map ON points(map_id)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		icon TEXT,
		color TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT false,
		priority TEXT NOT NULL DEFAULT '',
		comments TEXT NOT NULL DEFAULT '',
		categories JSONB NOT NULL DEFAULT '[]',
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS timer_state (
		state_key TEXT PRIMARY KEY,
		categories JSONB NOT NULL DEFAULT '[]',
		widgets JSONB NOT NULL DEFAULT '[]',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return nil
}
