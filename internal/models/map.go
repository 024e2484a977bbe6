package models

import (
	"time"

	"github.com/google/uuid"
)

// MapInstance represents one placed copy of a base map with a user-chosen title
type MapInstance struct {
	ID          uuid.UUID  `json:"id"`
	BaseMapName string     `json:"baseMapName"`
	Title       string     `json:"title"`
	Img         string     `json:"img"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	TribeID     *uuid.UUID `json:"tribeId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
