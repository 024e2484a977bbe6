package models

import (
	"time"

	"github.com/google/uuid"
)

// Default visual properties applied when a point is created without them
const (
	DefaultPointColor = "#ff0000"
	DefaultPointSize  = 10
)

// Point is an annotation placed on a specific map instance. X/Y are absolute
// pixel coordinates, PX/PY are percentage coordinates for responsive rendering.
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
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
