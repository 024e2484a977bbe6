package mapcache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/basemaps"
)

// Store is the normalized cache. Construct one per session; it holds no
// ambient global state so tests can build isolated instances.
//
// Index semantics: a missing pointIDsByMap entry means the map's points
// were never fetched; an empty non-nil slice means fetched, zero points.
type Store struct {
	api API

	mu            sync.Mutex
	mapsByID      map[uuid.UUID]Map
	mapIDs        []uuid.UUID
	pointsByID    map[uuid.UUID]Point
	pointIDsByMap map[uuid.UUID][]uuid.UUID
	activeMapID   *uuid.UUID
	err           error
}

// NewStore creates an empty store backed by the given API client
func NewStore(api API) *Store {
	return &Store{
		api:           api,
		mapsByID:      make(map[uuid.UUID]Map),
		pointsByID:    make(map[uuid.UUID]Point),
		pointIDsByMap: make(map[uuid.UUID][]uuid.UUID),
	}
}

// fail records the error for display and returns it to the caller
func (s *Store) fail(err error) error {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	return err
}

func (s *Store) clearErr() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

// Err returns the last recorded failure, nil after a successful action
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// FetchMaps loads all maps owned by the current user and replaces the map
// index. Points are not eagerly loaded. On failure the cache is unchanged;
// there is no partial overwrite.
func (s *Store) FetchMaps(ctx context.Context) error {
	s.clearErr()

	var fetched []Map
	if err := s.api.Get(ctx, "/api/maps", &fetched); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mapsByID = make(map[uuid.UUID]Map, len(fetched))
	s.mapIDs = make([]uuid.UUID, 0, len(fetched))
	for _, m := range fetched {
		s.mapsByID[m.ID] = m
		s.mapIDs = append(s.mapIDs, m.ID)
	}

	// Drop point state for maps that no longer exist so the indexes stay
	// referentially consistent
	for mapID, pointIDs := range s.pointIDsByMap {
		if _, ok := s.mapsByID[mapID]; ok {
			continue
		}
		for _, pid := range pointIDs {
			delete(s.pointsByID, pid)
		}
		delete(s.pointIDsByMap, mapID)
	}
	if s.activeMapID != nil {
		if _, ok := s.mapsByID[*s.activeMapID]; !ok {
			s.activeMapID = nil
		}
	}
	return nil
}

// CreateMapInstance validates the base map name against the local catalog
// before any network call, then creates the map server-side. On success the
// map joins the index with an initialized empty point-index entry, so a map
// can never exist without one.
func (s *Store) CreateMapInstance(ctx context.Context, baseMapName, title string) (*Map, error) {
	s.clearErr()

	baseMap, ok := basemaps.Lookup(baseMapName)
	if !ok {
		return nil, s.fail(ErrUnknownBaseMap)
	}

	body := map[string]string{
		"baseMapName": baseMap.Name,
		"title":       title,
		"img":         baseMap.Img,
	}
	var created Map
	if err := s.api.Post(ctx, "/api/maps", body, &created); err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapsByID[created.ID] = created
	s.mapIDs = append(s.mapIDs, created.ID)
	s.pointIDsByMap[created.ID] = []uuid.UUID{}
	return &created, nil
}

// UpdateMapTitle renames a map instance
func (s *Store) UpdateMapTitle(ctx context.Context, id uuid.UUID, title string) (*Map, error) {
	s.clearErr()

	body := map[string]string{"title": title}
	var updated Map
	if err := s.api.Put(ctx, "/api/maps/"+id.String(), body, &updated); err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mapsByID[id]; ok {
		s.mapsByID[id] = updated
	}
	return &updated, nil
}

// DeleteMapInstance deletes server-side first, then removes the map and
// every point indexed under it from both tables. If the deleted map was
// active, the first remaining map is promoted, fetching its points when
// they were never loaded.
func (s *Store) DeleteMapInstance(ctx context.Context, id uuid.UUID) error {
	s.clearErr()

	if err := s.api.Delete(ctx, "/api/maps/"+id.String()); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	for _, pid := range s.pointIDsByMap[id] {
		delete(s.pointsByID, pid)
	}
	delete(s.pointIDsByMap, id)
	delete(s.mapsByID, id)
	for i, mid := range s.mapIDs {
		if mid == id {
			s.mapIDs = append(s.mapIDs[:i], s.mapIDs[i+1:]...)
			break
		}
	}

	wasActive := s.activeMapID != nil && *s.activeMapID == id
	var next *uuid.UUID
	if wasActive {
		s.activeMapID = nil
		if len(s.mapIDs) > 0 {
			nextID := s.mapIDs[0]
			next = &nextID
		}
	}
	s.mu.Unlock()

	if next != nil {
		return s.SetActiveMap(ctx, *next)
	}
	return nil
}

// FetchPoints loads the points of a map and replaces that map's slice of
// the index. Calling it again is a deliberate re-sync; callers wanting
// load-once behavior check PointsFetched first.
func (s *Store) FetchPoints(ctx context.Context, mapID uuid.UUID) error {
	s.clearErr()

	var fetched []Point
	if err := s.api.Get(ctx, "/api/points/map/"+mapID.String(), &fetched); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pid := range s.pointIDsByMap[mapID] {
		delete(s.pointsByID, pid)
	}
	pointIDs := make([]uuid.UUID, 0, len(fetched))
	for _, p := range fetched {
		s.pointsByID[p.ID] = p
		pointIDs = append(pointIDs, p.ID)
	}
	s.pointIDsByMap[mapID] = pointIDs
	return nil
}

// PointsFetched reports whether a map's points were ever loaded
func (s *Store) PointsFetched(mapID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pointIDsByMap[mapID]
	return ok
}

// CreatePoint places a point on a map. The server applies display defaults
// for omitted fields; the returned point is the authoritative record.
func (s *Store) CreatePoint(ctx context.Context, mapID uuid.UUID, params CreatePointParams) (*Point, error) {
	s.clearErr()

	var created Point
	if err := s.api.Post(ctx, "/api/points/map/"+mapID.String(), params, &created); err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointsByID[created.ID] = created
	s.pointIDsByMap[mapID] = append(s.pointIDsByMap[mapID], created.ID)
	return &created, nil
}

// UpdatePoint sends a partial update. The patch type carries only the
// recognized fields, so unknown fields can never reach the server.
func (s *Store) UpdatePoint(ctx context.Context, id uuid.UUID, patch PointPatch) (*Point, error) {
	s.clearErr()

	var updated Point
	if err := s.api.Put(ctx, "/api/points/"+id.String(), patch, &updated); err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pointsByID[id]; ok {
		s.pointsByID[id] = updated
	}
	return &updated, nil
}

// DeletePoint removes a point server-side, then from both indexes
func (s *Store) DeletePoint(ctx context.Context, id uuid.UUID) error {
	s.clearErr()

	if err := s.api.Delete(ctx, "/api/points/"+id.String()); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	point, ok := s.pointsByID[id]
	if !ok {
		return nil
	}
	delete(s.pointsByID, id)
	ids := s.pointIDsByMap[point.MapID]
	for i, pid := range ids {
		if pid == id {
			s.pointIDsByMap[point.MapID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// SetActiveMap marks a map active. When its points were never fetched this
// triggers exactly one fetch; a map already holding a fetched entry, even an
// empty one, is not re-fetched.
func (s *Store) SetActiveMap(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, known := s.mapsByID[id]
	_, fetched := s.pointIDsByMap[id]
	s.mu.Unlock()
	if !known {
		return nil
	}

	if !fetched {
		if err := s.FetchPoints(ctx, id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	activeID := id
	s.activeMapID = &activeID
	s.mu.Unlock()
	return nil
}

// SetActiveBaseMap activates the first instance of the given base map in
// insertion order. With no instance of that base map, the active map is
// cleared.
func (s *Store) SetActiveBaseMap(ctx context.Context, baseMapName string) error {
	s.mu.Lock()
	var target *uuid.UUID
	for _, id := range s.mapIDs {
		if s.mapsByID[id].BaseMapName == baseMapName {
			targetID := id
			target = &targetID
			break
		}
	}
	if target == nil {
		s.activeMapID = nil
	}
	s.mu.Unlock()

	if target == nil {
		return nil
	}
	return s.SetActiveMap(ctx, *target)
}

// ClearActiveMap unsets the active map
func (s *Store) ClearActiveMap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeMapID = nil
}
