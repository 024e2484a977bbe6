package mapcache

import "github.com/google/uuid"

// MapWithPoints is the active map with its point ids resolved to objects
type MapWithPoints struct {
	Map    Map
	Points []Point
}

// BaseMapGroup is one base map's instances in insertion order
type BaseMapGroup struct {
	BaseMapName string
	Maps        []Map
}

// ActiveMapID returns the id of the active map, nil when unset
func (s *Store) ActiveMapID() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeMapID == nil {
		return nil
	}
	id := *s.activeMapID
	return &id
}

// ActiveMap resolves the active map and its points. Returns nil when no
// map is active; a map with no fetched or zero points yields an empty
// point list.
func (s *Store) ActiveMap() *MapWithPoints {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeMapID == nil {
		return nil
	}
	m, ok := s.mapsByID[*s.activeMapID]
	if !ok {
		return nil
	}

	pointIDs := s.pointIDsByMap[m.ID]
	points := make([]Point, 0, len(pointIDs))
	for _, pid := range pointIDs {
		if p, ok := s.pointsByID[pid]; ok {
			points = append(points, p)
		}
	}
	return &MapWithPoints{Map: m, Points: points}
}

// GroupedMaps groups map instances by base map name, preserving insertion
// order of both the groups and the instances within each group
func (s *Store) GroupedMaps() []BaseMapGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	indexByName := make(map[string]int)
	var groups []BaseMapGroup
	for _, id := range s.mapIDs {
		m := s.mapsByID[id]
		i, ok := indexByName[m.BaseMapName]
		if !ok {
			i = len(groups)
			indexByName[m.BaseMapName] = i
			groups = append(groups, BaseMapGroup{BaseMapName: m.BaseMapName})
		}
		groups[i].Maps = append(groups[i].Maps, m)
	}
	return groups
}

// BaseMapInstances returns the instances of one base map in insertion order
func (s *Store) BaseMapInstances(baseMapName string) []Map {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Map
	for _, id := range s.mapIDs {
		if m := s.mapsByID[id]; m.BaseMapName == baseMapName {
			out = append(out, m)
		}
	}
	return out
}

// Maps returns all map instances in insertion order
func (s *Store) Maps() []Map {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Map, 0, len(s.mapIDs))
	for _, id := range s.mapIDs {
		out = append(out, s.mapsByID[id])
	}
	return out
}

// PointIDs returns the point ids indexed under a map and whether the map's
// points were ever fetched
func (s *Store) PointIDs(mapID uuid.UUID) ([]uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, ok := s.pointIDsByMap[mapID]
	if !ok {
		return nil, false
	}
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out, true
}

// GetPoint returns a point from the flat table
func (s *Store) GetPoint(id uuid.UUID) (Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pointsByID[id]
	return p, ok
}
