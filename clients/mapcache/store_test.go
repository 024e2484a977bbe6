package mapcache

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/clients/apiclient"
)

// fakeBackend is an in-memory stand-in for the REST API. It mirrors the
// server's behavior for the routes the store uses, including point display
// defaults and cascade deletion.
type fakeBackend struct {
	mu       sync.Mutex
	maps     map[uuid.UUID]Map
	mapOrder []uuid.UUID
	points   map[uuid.UUID]Point
	requests int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		maps:   make(map[uuid.UUID]Map),
		points: make(map[uuid.UUID]Point),
	}
}

func (f *fakeBackend) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	count := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.requests++
			f.mu.Unlock()
			next(w, r)
		}
	}

	mux.HandleFunc("GET /api/maps", count(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		out := make([]Map, 0, len(f.mapOrder))
		for _, id := range f.mapOrder {
			out = append(out, f.maps[id])
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(out)
	}))

	mux.HandleFunc("POST /api/maps", count(func(w http.ResponseWriter, r *http.Request) {
		var m Map
		json.NewDecoder(r.Body).Decode(&m)
		m.ID = uuid.New()
		f.mu.Lock()
		f.maps[m.ID] = m
		f.mapOrder = append(f.mapOrder, m.ID)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m)
	}))

	mux.HandleFunc("DELETE /api/maps/{id}", count(func(w http.ResponseWriter, r *http.Request) {
		id, _ := uuid.Parse(r.PathValue("id"))
		f.mu.Lock()
		delete(f.maps, id)
		for i, mid := range f.mapOrder {
			if mid == id {
				f.mapOrder = append(f.mapOrder[:i], f.mapOrder[i+1:]...)
				break
			}
		}
		for pid, p := range f.points {
			if p.MapID == id {
				delete(f.points, pid)
			}
		}
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("GET /api/points/map/{mapId}", count(func(w http.ResponseWriter, r *http.Request) {
		mapID, _ := uuid.Parse(r.PathValue("mapId"))
		f.mu.Lock()
		out := []Point{}
		for _, p := range f.points {
			if p.MapID == mapID {
				out = append(out, p)
			}
		}
		f.mu.Unlock()
		json.NewEncoder(w).Encode(out)
	}))

	mux.HandleFunc("POST /api/points/map/{mapId}", count(func(w http.ResponseWriter, r *http.Request) {
		mapID, _ := uuid.Parse(r.PathValue("mapId"))
		var p Point
		json.NewDecoder(r.Body).Decode(&p)
		p.ID = uuid.New()
		p.MapID = mapID
		if p.Color == "" {
			p.Color = "#ff0000"
		}
		if p.Size == 0 {
			p.Size = 10
		}
		if p.Icon == "" {
			p.Icon = p.Category
		}
		f.mu.Lock()
		f.points[p.ID] = p
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(p)
	}))

	mux.HandleFunc("PUT /api/points/{id}", count(func(w http.ResponseWriter, r *http.Request) {
		id, _ := uuid.Parse(r.PathValue("id"))
		var patch map[string]json.RawMessage
		json.NewDecoder(r.Body).Decode(&patch)
		f.mu.Lock()
		p, ok := f.points[id]
		if !ok {
			f.mu.Unlock()
			w.WriteHeader(http.StatusNotFound)
			return
		}
		data, _ := json.Marshal(p)
		var merged map[string]json.RawMessage
		json.Unmarshal(data, &merged)
		for k, v := range patch {
			merged[k] = v
		}
		remarshaled, _ := json.Marshal(merged)
		json.Unmarshal(remarshaled, &p)
		f.points[id] = p
		f.mu.Unlock()
		json.NewEncoder(w).Encode(p)
	}))

	mux.HandleFunc("DELETE /api/points/{id}", count(func(w http.ResponseWriter, r *http.Request) {
		id, _ := uuid.Parse(r.PathValue("id"))
		f.mu.Lock()
		delete(f.points, id)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	return mux
}

func newTestStore(t *testing.T) (*Store, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	return NewStore(apiclient.NewClient(server.URL)), backend
}

func mustCreateMap(t *testing.T, store *Store, baseMapName, title string) *Map {
	t.Helper()
	m, err := store.CreateMapInstance(context.Background(), baseMapName, title)
	if err != nil {
		t.Fatalf("CreateMapInstance(%q): %v", baseMapName, err)
	}
	return m
}

func mustCreatePoint(t *testing.T, store *Store, mapID uuid.UUID, params CreatePointParams) *Point {
	t.Helper()
	p, err := store.CreatePoint(context.Background(), mapID, params)
	if err != nil {
		t.Fatalf("CreatePoint: %v", err)
	}
	return p
}

func TestCreateMapInstance(t *testing.T) {
	store, _ := newTestStore(t)

	m := mustCreateMap(t, store, "The Island", "Base Camp")
	if m.ID == uuid.Nil {
		t.Fatal("expected server-assigned id")
	}
	if m.Title != "Base Camp" {
		t.Errorf("Title = %q, want %q", m.Title, "Base Camp")
	}

	ids, fetched := store.PointIDs(m.ID)
	if !fetched {
		t.Fatal("new map should have an initialized point-index entry")
	}
	if len(ids) != 0 {
		t.Errorf("point index = %v, want empty", ids)
	}
}

func TestCreateMapInstanceUnknownBaseMap(t *testing.T) {
	store, backend := newTestStore(t)

	_, err := store.CreateMapInstance(context.Background(), "Atlantis", "Nope")
	if err != ErrUnknownBaseMap {
		t.Fatalf("err = %v, want ErrUnknownBaseMap", err)
	}
	if store.Err() != ErrUnknownBaseMap {
		t.Errorf("store.Err() = %v, want ErrUnknownBaseMap", store.Err())
	}
	if backend.requestCount() != 0 {
		t.Errorf("request count = %d, want 0 (validation is local)", backend.requestCount())
	}
	if len(store.Maps()) != 0 {
		t.Error("cache mutated on failed create")
	}
}

func TestPointDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	m := mustCreateMap(t, store, "The Island", "Base Camp")

	p := mustCreatePoint(t, store, m.ID, CreatePointParams{
		X: 100, Y: 200, PX: 0.5, PY: 0.6, Category: "Resource",
	})
	if p.Color != "#ff0000" {
		t.Errorf("Color = %q, want default #ff0000", p.Color)
	}
	if p.Size != 10 {
		t.Errorf("Size = %d, want default 10", p.Size)
	}
	if p.Icon != "Resource" {
		t.Errorf("Icon = %q, want category fallback", p.Icon)
	}
}

// Referential consistency: after any sequence of point mutations, every id
// indexed under a map resolves in the flat table and vice versa.
func TestReferentialConsistency(t *testing.T) {
	store, _ := newTestStore(t)
	m := mustCreateMap(t, store, "Ragnarok", "PvP")

	p1 := mustCreatePoint(t, store, m.ID, CreatePointParams{X: 1, Y: 1, Category: "Turrets"})
	p2 := mustCreatePoint(t, store, m.ID, CreatePointParams{X: 2, Y: 2, Category: "Resource"})
	mustCreatePoint(t, store, m.ID, CreatePointParams{X: 3, Y: 3, Category: "Tame"})

	if err := store.DeletePoint(context.Background(), p1.ID); err != nil {
		t.Fatalf("DeletePoint: %v", err)
	}

	ids, _ := store.PointIDs(m.ID)
	if len(ids) != 2 {
		t.Fatalf("index size = %d, want 2", len(ids))
	}
	for _, id := range ids {
		if _, ok := store.GetPoint(id); !ok {
			t.Errorf("indexed point %s missing from flat table", id)
		}
	}
	if _, ok := store.GetPoint(p1.ID); ok {
		t.Error("deleted point still in flat table")
	}
	if _, ok := store.GetPoint(p2.ID); !ok {
		t.Error("surviving point missing from flat table")
	}
}

// Deleting a map removes every point indexed under it (no orphans).
func TestDeleteMapCascadesPoints(t *testing.T) {
	store, _ := newTestStore(t)
	m1 := mustCreateMap(t, store, "The Island", "A")
	m2 := mustCreateMap(t, store, "Valguero", "B")

	doomed := mustCreatePoint(t, store, m1.ID, CreatePointParams{X: 1, Y: 1, Category: "Turrets"})
	kept := mustCreatePoint(t, store, m2.ID, CreatePointParams{X: 2, Y: 2, Category: "Resource"})

	if err := store.DeleteMapInstance(context.Background(), m1.ID); err != nil {
		t.Fatalf("DeleteMapInstance: %v", err)
	}

	if _, ok := store.GetPoint(doomed.ID); ok {
		t.Error("point of deleted map still in flat table")
	}
	if _, fetched := store.PointIDs(m1.ID); fetched {
		t.Error("deleted map still has a point-index entry")
	}
	if _, ok := store.GetPoint(kept.ID); !ok {
		t.Error("point of surviving map was removed")
	}
}

// Deleting the only map while it is active clears the active map.
func TestDeleteOnlyActiveMap(t *testing.T) {
	store, _ := newTestStore(t)
	m := mustCreateMap(t, store, "The Island", "Solo")

	if err := store.SetActiveMap(context.Background(), m.ID); err != nil {
		t.Fatalf("SetActiveMap: %v", err)
	}
	if err := store.DeleteMapInstance(context.Background(), m.ID); err != nil {
		t.Fatalf("DeleteMapInstance: %v", err)
	}

	if store.ActiveMapID() != nil {
		t.Error("activeMapID should be nil after deleting the only map")
	}
	if store.ActiveMap() != nil {
		t.Error("ActiveMap() should return nil after deleting the only map")
	}
}

// Deleting the active map with others remaining promotes the first remaining
// map and fetches its points when they were never loaded.
func TestDeleteActiveMapPromotesNext(t *testing.T) {
	seeder, backend := newTestStore(t)
	m1 := mustCreateMap(t, seeder, "The Island", "First")
	m2 := mustCreateMap(t, seeder, "Scorched Earth", "Second")

	// A fresh session knows the maps but has never fetched any points
	store := NewStore(seeder.api)
	if err := store.FetchMaps(context.Background()); err != nil {
		t.Fatalf("FetchMaps: %v", err)
	}
	if store.PointsFetched(m2.ID) {
		t.Fatal("precondition: m2 points should be unfetched in a fresh session")
	}

	if err := store.SetActiveMap(context.Background(), m1.ID); err != nil {
		t.Fatalf("SetActiveMap: %v", err)
	}
	before := backend.requestCount()
	if err := store.DeleteMapInstance(context.Background(), m1.ID); err != nil {
		t.Fatalf("DeleteMapInstance: %v", err)
	}

	active := store.ActiveMapID()
	if active == nil || *active != m2.ID {
		t.Fatalf("active = %v, want %s", active, m2.ID)
	}
	if !store.PointsFetched(m2.ID) {
		t.Error("promoted map's points were not fetched")
	}
	// DELETE plus exactly one points fetch
	if got := backend.requestCount() - before; got != 2 {
		t.Errorf("requests during delete = %d, want 2", got)
	}
}

// fetchPoints twice is idempotent: the second result exactly replaces the
// first with no duplicate accumulation.
func TestFetchPointsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	m := mustCreateMap(t, store, "Extinction", "Farm")
	mustCreatePoint(t, store, m.ID, CreatePointParams{X: 1, Y: 1, Category: "Resource"})
	mustCreatePoint(t, store, m.ID, CreatePointParams{X: 2, Y: 2, Category: "Obelisk"})

	if err := store.FetchPoints(context.Background(), m.ID); err != nil {
		t.Fatalf("FetchPoints: %v", err)
	}
	first, _ := store.PointIDs(m.ID)

	if err := store.FetchPoints(context.Background(), m.ID); err != nil {
		t.Fatalf("FetchPoints again: %v", err)
	}
	second, _ := store.PointIDs(m.ID)

	if len(second) != len(first) {
		t.Fatalf("second fetch indexed %d points, want %d", len(second), len(first))
	}
	seen := make(map[uuid.UUID]bool)
	for _, id := range second {
		if seen[id] {
			t.Errorf("duplicate point id %s after re-fetch", id)
		}
		seen[id] = true
	}
}

// Activating a map with a fetched-but-empty point entry must not re-fetch.
func TestSetActiveMapFetchesOnce(t *testing.T) {
	store, backend := newTestStore(t)
	m := mustCreateMap(t, store, "Aberration", "Cave")

	before := backend.requestCount()
	if err := store.SetActiveMap(context.Background(), m.ID); err != nil {
		t.Fatalf("SetActiveMap: %v", err)
	}
	// Entry was initialized empty at creation, so no fetch happens
	if got := backend.requestCount() - before; got != 0 {
		t.Errorf("requests during activation = %d, want 0", got)
	}

	active := store.ActiveMap()
	if active == nil {
		t.Fatal("ActiveMap() = nil")
	}
	if len(active.Points) != 0 {
		t.Errorf("points = %d, want 0", len(active.Points))
	}
}

func TestFetchMapsFailureLeavesCacheUnchanged(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	store := NewStore(apiclient.NewClient(server.URL))

	m := mustCreateMap(t, store, "The Center", "Keep")

	// Kill the backend so the next fetch fails at the network level
	server.Close()

	err := store.FetchMaps(context.Background())
	if err == nil {
		t.Fatal("expected error from dead backend")
	}
	if !apiclient.IsKind(err, apiclient.KindNetwork) {
		t.Errorf("err kind = %v, want network", err)
	}
	if store.Err() == nil {
		t.Error("failure not recorded in store")
	}

	maps := store.Maps()
	if len(maps) != 1 || maps[0].ID != m.ID {
		t.Errorf("cache changed on failed fetch: %v", maps)
	}
}

func TestGroupedMapsPreservesInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)
	a := mustCreateMap(t, store, "The Island", "A")
	b := mustCreateMap(t, store, "Ragnarok", "B")
	c := mustCreateMap(t, store, "The Island", "C")

	groups := store.GroupedMaps()
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].BaseMapName != "The Island" || groups[1].BaseMapName != "Ragnarok" {
		t.Errorf("group order = %q, %q", groups[0].BaseMapName, groups[1].BaseMapName)
	}
	if len(groups[0].Maps) != 2 || groups[0].Maps[0].ID != a.ID || groups[0].Maps[1].ID != c.ID {
		t.Errorf("The Island group = %v", groups[0].Maps)
	}
	if len(groups[1].Maps) != 1 || groups[1].Maps[0].ID != b.ID {
		t.Errorf("Ragnarok group = %v", groups[1].Maps)
	}
}

func TestUpdatePointForwardsOnlyAllowList(t *testing.T) {
	store, _ := newTestStore(t)
	m := mustCreateMap(t, store, "The Island", "Base")
	p := mustCreatePoint(t, store, m.ID, CreatePointParams{X: 1, Y: 1, Category: "Resource"})

	name := "Metal node"
	x := 42.0
	updated, err := store.UpdatePoint(context.Background(), p.ID, PointPatch{Name: &name, X: &x})
	if err != nil {
		t.Fatalf("UpdatePoint: %v", err)
	}
	if updated.Name != "Metal node" || updated.X != 42.0 {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Category != "Resource" {
		t.Errorf("untouched field changed: Category = %q", updated.Category)
	}

	cached, _ := store.GetPoint(p.ID)
	if cached.Name != "Metal node" {
		t.Errorf("cache not updated: %+v", cached)
	}
}

func TestSetActiveBaseMap(t *testing.T) {
	store, _ := newTestStore(t)
	mustCreateMap(t, store, "The Island", "A")
	first := mustCreateMap(t, store, "Valguero", "B")
	mustCreateMap(t, store, "Valguero", "C")

	if err := store.SetActiveBaseMap(context.Background(), "Valguero"); err != nil {
		t.Fatalf("SetActiveBaseMap: %v", err)
	}
	active := store.ActiveMapID()
	if active == nil || *active != first.ID {
		t.Errorf("active = %v, want first Valguero instance %s", active, first.ID)
	}

	if err := store.SetActiveBaseMap(context.Background(), "Astraeos"); err != nil {
		t.Fatalf("SetActiveBaseMap: %v", err)
	}
	if store.ActiveMapID() != nil {
		t.Error("active map should clear when no instance of the base map exists")
	}
}
