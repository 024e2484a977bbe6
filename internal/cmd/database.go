package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// databaseDSN builds the Postgres connection URL from DB_* environment
// variables, with local development defaults
func databaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "waypoint"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func setupDatabase() (*sql.DB, error) {
	database, err := sql.Open("pgx", databaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("host", getEnv("DB_HOST", "localhost")).
		Str("database", getEnv("DB_NAME", "waypoint")).
		Msg("connected to database")
	return database, nil
}
