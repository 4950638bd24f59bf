// Package telemetry pushes periodic metrics snapshots to connected
// WebSocket observers and samples host disk usage into the store.
package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/utils"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

// Broadcaster owns every observer connection. Each observer gets its own
// interval timer; every tick re-reads the GPU and storage collections and
// writes one metrics_update message. Delivery is best-effort: a failed write
// closes that observer only, and a slow observer simply receives the next
// tick's fresher snapshot.
type Broadcaster struct {
	store      *store.Store
	interval   time.Duration
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mutex      sync.RWMutex
	logger     *utils.Logger
}

// NewBroadcaster builds a Broadcaster pushing snapshots of st at the given
// interval.
func NewBroadcaster(st *store.Store, interval time.Duration, logger *utils.Logger) *Broadcaster {
	return &Broadcaster{
		store:      st,
		interval:   interval,
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		logger:     logger,
	}
}

// Run processes observer registration. Call once in its own goroutine.
func (b *Broadcaster) Run() {
	for {
		select {
		case conn := <-b.register:
			b.mutex.Lock()
			b.clients[conn] = true
			b.mutex.Unlock()
			b.logger.Write("WebSocket client connected")

		case conn := <-b.unregister:
			b.mutex.Lock()
			if _, ok := b.clients[conn]; ok {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mutex.Unlock()
			b.logger.Write("WebSocket client disconnected")
		}
	}
}

// ClientCount returns the number of connected observers.
func (b *Broadcaster) ClientCount() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.clients)
}

// Snapshot reads the current GPU and storage collections into one telemetry
// message.
func (b *Broadcaster) Snapshot() models.MetricsUpdate {
	return models.MetricsUpdate{
		Type: models.MetricsUpdateType,
		Data: models.MetricsPayload{
			Gpus:      b.store.ListGpus(),
			Storage:   b.store.ListStorage(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// HandleWebSocket upgrades the request and serves the observer until it
// disconnects.
func (b *Broadcaster) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			b.logger.Writef("WebSocket upgrade error: %v", err)
			return
		}

		conn.SetReadLimit(1024)

		b.register <- conn

		stop := make(chan struct{})
		go b.pushLoop(conn, stop)

		defer func() {
			close(stop)
			b.unregister <- conn
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
					b.logger.Writef("WebSocket error: %v", err)
				}
				break
			}
		}
	}
}

// pushLoop writes one snapshot per tick until the observer closes or a
// write fails. Ticks are never retried; the next tick carries fresher data.
func (b *Broadcaster) pushLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := b.writeSnapshot(conn); err != nil {
				b.logger.Writef("WebSocket write error: %v", err)
				return
			}
		case <-stop:
			return
		}
	}
}

func (b *Broadcaster) writeSnapshot(conn *websocket.Conn) error {
	payload, err := json.Marshal(b.Snapshot())
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
