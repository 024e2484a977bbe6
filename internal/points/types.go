package points

import "errors"

// Sentinel errors the handler maps to HTTP status codes
var (
	ErrNotFound  = errors.New("point not found")
	ErrForbidden = errors.New("point belongs to another user's map")
)

// CreatePointRequest represents the data needed to place a point on a map.
// Coordinates use pointers so a missing field is distinguishable from zero.
type CreatePointRequest struct {
	Category    string   `json:"category"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	PX          *float64 `json:"pX"`
	PY          *float64 `json:"pY"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Icon        string   `json:"icon"`
	Size        int      `json:"size"`
}

// PointPatch is the explicit partial-update type for points. It carries
// exactly the allow-listed fields; anything else in a request body is
// dropped during decoding.
type PointPatch struct {
	Category    *string  `json:"category"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	PX          *float64 `json:"pX"`
	PY          *float64 `json:"pY"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Color       *string  `json:"color"`
	Icon        *string  `json:"icon"`
	Size        *int     `json:"size"`
}

// IsEmpty reports whether the patch carries no recognized fields
func (p PointPatch) IsEmpty() bool {
	return p.Category == nil && p.X == nil && p.Y == nil && p.PX == nil &&
		p.PY == nil && p.Name == nil && p.Description == nil &&
		p.Color == nil && p.Icon == nil && p.Size == nil
}
