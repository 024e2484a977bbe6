package timerboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// API is the slice of the HTTP client the board client depends on
type API interface {
	Get(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, body, out any) error
}

// Client fetches, saves and subscribes to the shared timer board
type Client struct {
	api API

	mu       sync.Mutex
	snapshot Snapshot
}

// NewClient creates a new timer board client
func NewClient(api API) *Client {
	return &Client{
		api:      api,
		snapshot: Snapshot{Categories: []Category{}, Widgets: []Widget{}},
	}
}

// Snapshot returns the current local board state
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Fetch loads the board from the server and replaces local state
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot
	if err := c.api.Get(ctx, "/api/timer-state", &snapshot); err != nil {
		return Snapshot{}, err
	}
	c.apply(snapshot)
	return snapshot, nil
}

// Save persists the full board. The server broadcasts the stored snapshot
// to every other session; this session applies the server's echo directly.
func (c *Client) Save(ctx context.Context, snapshot Snapshot) (Snapshot, error) {
	var stored Snapshot
	if err := c.api.Post(ctx, "/api/timer-state", snapshot, &stored); err != nil {
		return Snapshot{}, err
	}
	c.apply(stored)
	return stored, nil
}

// apply replaces local state with the incoming snapshot unconditionally
func (c *Client) apply(snapshot Snapshot) {
	if snapshot.Categories == nil {
		snapshot.Categories = []Category{}
	}
	if snapshot.Widgets == nil {
		snapshot.Widgets = []Widget{}
	}
	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()
}

// event mirrors the websocket envelope pushed by the gateway
type event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Subscribe connects to the gateway websocket and applies every incoming
// board snapshot, invoking onSnapshot after each replacement. It blocks
// until ctx is done or the connection fails.
func (c *Client) Subscribe(ctx context.Context, wsURL string, onSnapshot func(Snapshot)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read websocket: %w", err)
		}

		var ev event
		if err := json.Unmarshal(message, &ev); err != nil {
			continue
		}
		if ev.Type != "timer:state" {
			continue
		}

		var snapshot Snapshot
		if err := json.Unmarshal(ev.Data, &snapshot); err != nil {
			continue
		}
		c.apply(snapshot)
		if onSnapshot != nil {
			onSnapshot(snapshot)
		}
	}
}
