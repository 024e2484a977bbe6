package models

import (
	"time"

	"github.com/google/uuid"
)

// Player is a tracked in-game character, optionally linked to a tribe
// and to an auth account
type Player struct {
	ID          uuid.UUID  `json:"id"`
	InGameName  string     `json:"inGameName"`
	SteamName   string     `json:"steamName"`
	DiscordName string     `json:"discordName"`
	TribeID     *uuid.UUID `json:"tribeId"`
	Level       int        `json:"level"`
	DateSeen    string     `json:"dateSeen"`
	Notes       string     `json:"notes"`
	AuthUserID  *uuid.UUID `json:"authUserId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Tribe is a named group of players
type Tribe struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
