// Package players implements CRUD for tracked in-game players.
package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/sqlutil"
)

// ErrNotFound is returned when a player does not exist
var ErrNotFound = errors.New("player not found")

// CreatePlayerRequest represents the data needed to track a player
type CreatePlayerRequest struct {
	InGameName  string     `json:"inGameName"`
	SteamName   string     `json:"steamName"`
	DiscordName string     `json:"discordName"`
	TribeID     *uuid.UUID `json:"tribeId"`
	Level       int        `json:"level"`
	DateSeen    string     `json:"dateSeen"`
	Notes       string     `json:"notes"`
}

// UpdatePlayerRequest represents the fields that can be updated on a player
type UpdatePlayerRequest struct {
	InGameName  *string    `json:"inGameName"`
	SteamName   *string    `json:"steamName"`
	DiscordName *string    `json:"discordName"`
	TribeID     *uuid.UUID `json:"tribeId"`
	Level       *int       `json:"level"`
	DateSeen    *string    `json:"dateSeen"`
	Notes       *string    `json:"notes"`
}

// Repository implements player data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new players repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const playerColumns = `id, in_game_name, steam_name, discord_name, tribe_id, level, date_seen, notes, auth_user_id, created_at, updated_at`

// ListPlayers returns all tracked players, newest first
func (r *Repository) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// CreatePlayer inserts a new tracked player
func (r *Repository) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error) {
	level := req.Level
	if level < 1 {
		level = 1
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO players (id, in_game_name, steam_name, discord_name, tribe_id, level, date_seen, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+playerColumns,
		uuid.New(), req.InGameName, req.SteamName, req.DiscordName,
		sqlutil.ToNullUUID(req.TribeID), level, req.DateSeen, req.Notes)

	p, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return p, nil
}

// UpdatePlayer applies a partial update and returns the new row
func (r *Repository) UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE players SET
			in_game_name = COALESCE($2, in_game_name),
			steam_name = COALESCE($3, steam_name),
			discord_name = COALESCE($4, discord_name),
			tribe_id = COALESCE($5, tribe_id),
			level = COALESCE($6, level),
			date_seen = COALESCE($7, date_seen),
			notes = COALESCE($8, notes),
			updated_at = now()
		WHERE id = $1
		RETURNING `+playerColumns,
		id,
		sqlutil.ToSqlString(req.InGameName),
		sqlutil.ToSqlString(req.SteamName),
		sqlutil.ToSqlString(req.DiscordName),
		sqlutil.ToNullUUID(req.TribeID),
		nullableInt(req.Level),
		sqlutil.ToSqlString(req.DateSeen),
		sqlutil.ToSqlString(req.Notes))

	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return p, nil
}

// DeletePlayer removes a tracked player by id
func (r *Repository) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlayersByTribe removes every player linked to a tribe
func (r *Repository) DeletePlayersByTribe(ctx context.Context, tribeID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE tribe_id = $1`, tribeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete players by tribe: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func nullableInt(val *int) sql.NullInt64 {
	if val == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*val), Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var (
		p               models.Player
		tribe, authUser uuid.NullUUID
	)
	err := row.Scan(&p.ID, &p.InGameName, &p.SteamName, &p.DiscordName,
		&tribe, &p.Level, &p.DateSeen, &p.Notes, &authUser, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.TribeID = sqlutil.FromNullUUID(tribe)
	p.AuthUserID = sqlutil.FromNullUUID(authUser)
	return &p, nil
}
