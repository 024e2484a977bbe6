package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcdev12/waypoint/internal/models"
)

func handlerMux(h *WebSocketHandler) *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func dialTimerSocket(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/timer"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, cm *ConnectionManager, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for cm.ConnectionCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("connection count = %d, want %d", cm.ConnectionCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Two subscribed clients must receive byte-for-byte identical snapshots.
func TestBroadcastReachesAllClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager(DefaultConnectionConfig())
	go cm.Start(ctx)

	handler := NewWebSocketHandler(cm)
	server := httptest.NewServer(handlerMux(handler))
	defer server.Close()

	connA := dialTimerSocket(t, server.URL)
	connB := dialTimerSocket(t, server.URL)
	waitForConnections(t, cm, 2)

	snapshot := &models.TimerSnapshot{
		Categories: []models.TimerCategory{{ID: "c1", Name: "Breeding", Order: 0}},
		Widgets: []models.TimerWidget{{
			ID: "w1", Type: models.WidgetTypeCountdown, Name: "Imprint",
			CategoryID: "c1", Timer: json.RawMessage(`{"duration":60000,"active":true,"endTime":1700000000000}`),
		}},
	}
	cm.Broadcast(NewTimerStateEvent(snapshot))

	readMessage := func(conn *websocket.Conn) []byte {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, message, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return message
	}

	msgA := readMessage(connA)
	msgB := readMessage(connB)

	if string(msgA) != string(msgB) {
		t.Errorf("clients received different bytes:\nA: %s\nB: %s", msgA, msgB)
	}

	var event struct {
		Type string               `json:"type"`
		Data models.TimerSnapshot `json:"data"`
	}
	if err := json.Unmarshal(msgA, &event); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if event.Type != string(EventTypeTimerState) {
		t.Errorf("event type = %q, want %q", event.Type, EventTypeTimerState)
	}
	if len(event.Data.Widgets) != 1 || event.Data.Widgets[0].ID != "w1" {
		t.Errorf("widgets = %+v", event.Data.Widgets)
	}
	if string(event.Data.Widgets[0].Timer) != `{"duration":60000,"active":true,"endTime":1700000000000}` {
		t.Errorf("timer sub-object changed in flight: %s", event.Data.Widgets[0].Timer)
	}
}

// A client dropping while snapshots stream out must not take the broadcast
// loop down; remaining clients keep receiving. Removal is serialized with
// the sends on the Start goroutine, so a close between the connection
// snapshot and the send cannot panic the process.
func TestDisconnectDuringBroadcastStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager(DefaultConnectionConfig())
	go cm.Start(ctx)

	handler := NewWebSocketHandler(cm)
	server := httptest.NewServer(handlerMux(handler))
	defer server.Close()

	stayer := dialTimerSocket(t, server.URL)
	waitForConnections(t, cm, 1)

	snapshot := &models.TimerSnapshot{
		Categories: []models.TimerCategory{{ID: "c1", Name: "Breeding", Order: 0}},
	}

	for i := 0; i < 20; i++ {
		leaver := dialTimerSocket(t, server.URL)
		waitForConnections(t, cm, 2)

		for j := 0; j < 3; j++ {
			cm.Broadcast(NewTimerStateEvent(snapshot))
		}
		leaver.Close()
		waitForConnections(t, cm, 1)
	}

	// The surviving client is still registered and still receives
	cm.Broadcast(NewTimerStateEvent(snapshot))
	stayer.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := stayer.ReadMessage(); err != nil {
		t.Fatalf("surviving client stopped receiving: %v", err)
	}
	if cm.ConnectionCount() != 1 {
		t.Errorf("connection count = %d, want 1", cm.ConnectionCount())
	}
}

func TestUnregisterOnClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewConnectionManager(DefaultConnectionConfig())
	go cm.Start(ctx)

	handler := NewWebSocketHandler(cm)
	server := httptest.NewServer(handlerMux(handler))
	defer server.Close()

	conn := dialTimerSocket(t, server.URL)
	waitForConnections(t, cm, 1)

	conn.Close()
	waitForConnections(t, cm, 0)
}
