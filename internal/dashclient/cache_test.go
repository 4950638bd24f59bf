package dashclient

import (
	"testing"
	"time"

	"unidash/internal/models"
)

func snapshot(util0 float64, used float64) models.MetricsPayload {
	return models.MetricsPayload{
		Gpus: []models.Gpu{
			{ID: "gpu0", Name: "GPU 0", Utilization: util0, VramUsed: 52, VramTotal: 80},
			{ID: "gpu1", Name: "GPU 1", Utilization: 0.01, VramUsed: 4, VramTotal: 80},
		},
		Storage: []models.StorageVolume{
			{ID: "models", Name: "Models Drive", UsedGB: used, TotalGB: 2000},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func TestIdenticalSnapshotPublishesOnce(t *testing.T) {
	var c ReconcileCache

	g1, s1 := c.Apply(snapshot(0.76, 1880))
	if !g1 || !s1 {
		t.Fatalf("first snapshot must publish both collections")
	}

	// Same values, fresher timestamp: the envelope timestamp is not part of
	// the collections, so nothing should publish.
	g2, s2 := c.Apply(snapshot(0.76, 1880))
	if g2 || s2 {
		t.Fatalf("structurally identical snapshot must be suppressed, got gpus=%v storage=%v", g2, s2)
	}
}

func TestDistinctSnapshotsPublishInArrivalOrder(t *testing.T) {
	var c ReconcileCache
	c.Apply(snapshot(0.10, 500))

	var seen []float64
	payloads := []models.MetricsPayload{snapshot(0.20, 500), snapshot(0.30, 500), snapshot(0.40, 500)}
	for _, p := range payloads {
		if gpus, _ := c.Apply(p); gpus {
			seen = append(seen, p.Gpus[0].Utilization)
		}
	}

	if len(seen) != 3 {
		t.Fatalf("expected 3 publications, got %d", len(seen))
	}
	for i, want := range []float64{0.20, 0.30, 0.40} {
		if seen[i] != want {
			t.Fatalf("publication %d out of order: got %v, want %v", i, seen[i], want)
		}
	}
}

func TestCollectionsReconcileIndependently(t *testing.T) {
	var c ReconcileCache
	c.Apply(snapshot(0.76, 1880))

	// Only storage changes.
	gpus, storage := c.Apply(snapshot(0.76, 1680))
	if gpus {
		t.Fatalf("unchanged gpu collection published")
	}
	if !storage {
		t.Fatalf("changed storage collection suppressed")
	}
}

func TestElementOrderIsSignificant(t *testing.T) {
	var c ReconcileCache
	first := snapshot(0.76, 1880)
	c.Apply(first)

	reordered := snapshot(0.76, 1880)
	reordered.Gpus[0], reordered.Gpus[1] = reordered.Gpus[1], reordered.Gpus[0]

	gpus, _ := c.Apply(reordered)
	if !gpus {
		t.Fatalf("reordered collection must count as changed")
	}
}
