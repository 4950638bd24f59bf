package dashclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"unidash/internal/models"
	"unidash/internal/utils"
)

// Sink receives reconciled telemetry. A callback fires only when its
// collection changed relative to the previous snapshot.
type Sink struct {
	OnGpus    func([]models.Gpu)
	OnStorage func([]models.StorageVolume)
}

// Client maintains a persistent connection to the dashboard's /ws endpoint.
// On transport loss it retries after a fixed backoff, indefinitely; the
// broadcaster is stateless across reconnects so each new connection simply
// starts receiving fresh snapshots.
type Client struct {
	url     string
	backoff time.Duration
	sink    Sink
	cache   ReconcileCache
	logger  *utils.Logger
}

// NewClient builds a Client for the given ws:// URL.
func NewClient(url string, backoff time.Duration, sink Sink, logger *utils.Logger) *Client {
	return &Client{
		url:     url,
		backoff: backoff,
		sink:    sink,
		logger:  logger,
	}
}

// Run connects and consumes pushes until ctx is cancelled.
func (c *Client) Run(ctx context.Context) {
	for {
		if err := c.consume(ctx); err != nil {
			c.logger.Writef("WebSocket disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff):
		}
	}
}

func (c *Client) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.logger.Write("WebSocket connected")

	// Unblock the read loop when ctx is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		c.handle(payload)
	}
}

func (c *Client) handle(payload []byte) {
	var msg models.MetricsUpdate
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.logger.Writef("WebSocket message parse error: %v", err)
		return
	}
	if msg.Type != models.MetricsUpdateType {
		return
	}

	gpusChanged, storageChanged := c.cache.Apply(msg.Data)
	if gpusChanged && c.sink.OnGpus != nil {
		c.sink.OnGpus(msg.Data.Gpus)
	}
	if storageChanged && c.sink.OnStorage != nil {
		c.sink.OnStorage(msg.Data.Storage)
	}
}
