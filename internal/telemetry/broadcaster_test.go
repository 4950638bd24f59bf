package telemetry

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/utils"
)

func startBroadcastServer(t *testing.T, st *store.Store, interval time.Duration) (*httptest.Server, *Broadcaster) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := NewBroadcaster(st, interval, utils.NewLogger(""))
	go b.Run()

	r := gin.New()
	r.GET("/ws", b.HandleWebSocket())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, b
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastsSnapshotEachTick(t *testing.T) {
	st := store.New()
	srv, _ := startBroadcastServer(t, st, 20*time.Millisecond)
	conn := dialWS(t, srv)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg models.MetricsUpdate
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != models.MetricsUpdateType {
		t.Fatalf("expected type %q, got %q", models.MetricsUpdateType, msg.Type)
	}
	if len(msg.Data.Gpus) != 2 {
		t.Fatalf("expected 2 gpus in snapshot, got %d", len(msg.Data.Gpus))
	}
	if len(msg.Data.Storage) != 3 {
		t.Fatalf("expected 3 volumes in snapshot, got %d", len(msg.Data.Storage))
	}
	if _, err := time.Parse(time.RFC3339, msg.Data.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", msg.Data.Timestamp)
	}
}

func TestSnapshotReflectsStoreMutation(t *testing.T) {
	st := store.New()
	b := NewBroadcaster(st, time.Second, utils.NewLogger(""))

	util := 0.42
	if _, err := st.UpdateGpu("gpu0", models.GpuPatch{Utilization: &util}); err != nil {
		t.Fatalf("update gpu: %v", err)
	}

	snap := b.Snapshot()
	if snap.Data.Gpus[0].Utilization != 0.42 {
		t.Fatalf("snapshot did not re-read the store: %v", snap.Data.Gpus[0].Utilization)
	}
}

func TestTicksArriveInOrder(t *testing.T) {
	st := store.New()
	srv, _ := startBroadcastServer(t, st, 10*time.Millisecond)
	conn := dialWS(t, srv)

	var stamps []time.Time
	for i := 0; i < 3; i++ {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		var msg models.MetricsUpdate
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("unmarshal %d: %v", i, err)
		}
		ts, err := time.Parse(time.RFC3339, msg.Data.Timestamp)
		if err != nil {
			t.Fatalf("timestamp %d: %v", i, err)
		}
		stamps = append(stamps, ts)
	}

	for i := 1; i < len(stamps); i++ {
		if stamps[i].Before(stamps[i-1]) {
			t.Fatalf("tick %d arrived out of order", i)
		}
	}
}

func TestDisconnectStopsObserverOnly(t *testing.T) {
	st := store.New()
	srv, b := startBroadcastServer(t, st, 10*time.Millisecond)

	first := dialWS(t, srv)
	second := dialWS(t, srv)

	waitForClients(t, b, 2)
	first.Close()
	waitForClients(t, b, 1)

	// The surviving observer keeps receiving ticks.
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := second.ReadMessage(); err != nil {
		t.Fatalf("surviving observer stopped receiving: %v", err)
	}
}

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, b.ClientCount())
}
