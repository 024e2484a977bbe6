// Package mapcache keeps an in-memory, normalized view of the caller's map
// instances and points consistent with the backend. Entities live in flat
// id-keyed tables; the map-to-points relationship is a separate index. Every
// mutation talks to the server first and touches the cache only on success,
// so the cache never holds speculative state.
package mapcache

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnknownBaseMap is returned when a map instance references a base map
// name outside the fixed catalog. The check is local; no request is made.
var ErrUnknownBaseMap = errors.New("unknown base map")

// Map is a user-created, titled placement of a base map
type Map struct {
	ID          uuid.UUID  `json:"id"`
	BaseMapName string     `json:"baseMapName"`
	Title       string     `json:"title"`
	Img         string     `json:"img"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	TribeID     *uuid.UUID `json:"tribeId"`
}

// Point is a placed annotation on a map instance
type Point struct {
	ID          uuid.UUID `json:"id"`
	MapID       uuid.UUID `json:"mapId"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	PX          float64   `json:"pX"`
	PY          float64   `json:"pY"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Size        int       `json:"size"`
}

// CreatePointParams carries the fields accepted when placing a point.
// Optional display fields left zero get server-side defaults.
type CreatePointParams struct {
	Category    string  `json:"category"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	PX          float64 `json:"pX"`
	PY          float64 `json:"pY"`
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Size        int     `json:"size,omitempty"`
}

// PointPatch is the partial-update payload for a point. It carries exactly
// the recognized fields; anything else a caller holds never reaches the
// wire because there is no place to put it.
type PointPatch struct {
	Category    *string  `json:"category,omitempty"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	PX          *float64 `json:"pX,omitempty"`
	PY          *float64 `json:"pY,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Size        *int     `json:"size,omitempty"`
}

// API is the slice of the HTTP client the store depends on
type API interface {
	Get(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, body, out any) error
	Put(ctx context.Context, endpoint string, body, out any) error
	Delete(ctx context.Context, endpoint string) error
}
