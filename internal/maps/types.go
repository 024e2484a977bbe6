package maps

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a map does not exist or is not owned by the caller
var ErrNotFound = errors.New("map not found")

// CreateMapRequest represents the data needed to place a new map instance
type CreateMapRequest struct {
	BaseMapName string `json:"baseMapName"`
	Title       string `json:"title"`
	Img         string `json:"img"`
}

// UpdateMapRequest represents the fields a map owner may change
type UpdateMapRequest struct {
	Title   *string    `json:"title"`
	Img     *string    `json:"img"`
	TribeID *uuid.UUID `json:"tribeId"`
}
