// Package dashclient is the observer side of the telemetry link: a WebSocket
// client that absorbs metrics_update pushes and only surfaces collections
// that actually changed since the previous snapshot.
package dashclient

import (
	"reflect"

	"unidash/internal/models"
)

// ReconcileCache holds the last-applied value per telemetry collection.
// Apply returns which collections structurally differ from the cached
// values; unchanged collections are suppressed so downstream consumers
// never recompute on identical data. Equality is order-sensitive deep
// equality over the whole collection.
type ReconcileCache struct {
	gpus    []models.Gpu
	storage []models.StorageVolume
	primed  bool
}

// Apply reconciles one snapshot against the cache. The first snapshot always
// reports both collections as changed.
func (c *ReconcileCache) Apply(data models.MetricsPayload) (gpusChanged, storageChanged bool) {
	if !c.primed {
		c.gpus = data.Gpus
		c.storage = data.Storage
		c.primed = true
		return true, true
	}

	if !reflect.DeepEqual(c.gpus, data.Gpus) {
		c.gpus = data.Gpus
		gpusChanged = true
	}
	if !reflect.DeepEqual(c.storage, data.Storage) {
		c.storage = data.Storage
		storageChanged = true
	}
	return gpusChanged, storageChanged
}

// Gpus returns the last-applied GPU collection.
func (c *ReconcileCache) Gpus() []models.Gpu {
	return c.gpus
}

// Storage returns the last-applied storage collection.
func (c *ReconcileCache) Storage() []models.StorageVolume {
	return c.storage
}
