package dashclient

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/telemetry"
	"unidash/internal/utils"
)

func startServer(t *testing.T, st *store.Store, interval time.Duration) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := telemetry.NewBroadcaster(st, interval, utils.NewLogger(""))
	go b.Run()

	r := gin.New()
	r.GET("/ws", b.HandleWebSocket())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestClientSuppressesUnchangedSnapshots(t *testing.T) {
	st := store.New()
	url := startServer(t, st, 10*time.Millisecond)

	var gpuPublishes, storagePublishes atomic.Int64
	client := NewClient(url, 50*time.Millisecond, Sink{
		OnGpus:    func([]models.Gpu) { gpuPublishes.Add(1) },
		OnStorage: func([]models.StorageVolume) { storagePublishes.Add(1) },
	}, utils.NewLogger(""))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		client.Run(ctx)
		close(done)
	}()

	// Several ticks pass with the store untouched: only the priming snapshot
	// may publish.
	time.Sleep(150 * time.Millisecond)
	if n := gpuPublishes.Load(); n != 1 {
		t.Fatalf("expected exactly 1 gpu publication over identical ticks, got %d", n)
	}
	if n := storagePublishes.Load(); n != 1 {
		t.Fatalf("expected exactly 1 storage publication over identical ticks, got %d", n)
	}

	// A store mutation makes the next snapshot differ, which must publish
	// exactly one more gpu update and no storage update.
	util := 0.99
	if _, err := st.UpdateGpu("gpu0", models.GpuPatch{Utilization: &util}); err != nil {
		t.Fatalf("update gpu: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && gpuPublishes.Load() < 2 {
		time.Sleep(5 * time.Millisecond)
	}
	if n := gpuPublishes.Load(); n != 2 {
		t.Fatalf("expected 2 gpu publications after mutation, got %d", n)
	}
	if n := storagePublishes.Load(); n != 1 {
		t.Fatalf("storage republished without change: %d", n)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("client did not stop on context cancellation")
	}
}
