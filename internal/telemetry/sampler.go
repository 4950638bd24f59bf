package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/disk"

	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/utils"
)

const bytesPerGB = 1 << 30

// DiskSampler refreshes the system storage volume from real host disk usage.
// The seeded demo figures stay untouched unless the sampler is started.
type DiskSampler struct {
	store    *store.Store
	volumeID string
	interval time.Duration
	logger   *utils.Logger

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewDiskSampler samples the volume's configured path every interval and
// writes the result back through the store, keeping usedGB, totalGB and
// usagePercent consistent.
func NewDiskSampler(st *store.Store, volumeID string, interval time.Duration, logger *utils.Logger) *DiskSampler {
	return &DiskSampler{
		store:    st,
		volumeID: volumeID,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the background sampler. Calling Start on a running sampler
// is a no-op.
func (d *DiskSampler) Start() {
	d.mu.Lock()
	if d.stop != nil {
		d.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	d.stop = stop
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		ctx := context.Background()
		d.refresh(ctx)
		for {
			select {
			case <-ticker.C:
				d.refresh(ctx)
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the sampler and waits for shutdown.
func (d *DiskSampler) Stop() {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	d.wg.Wait()
}

func (d *DiskSampler) refresh(ctx context.Context) {
	vol, err := d.store.GetStorage(d.volumeID)
	if err != nil {
		d.logger.Writef("Disk sampler: volume %s missing: %v", d.volumeID, err)
		return
	}

	usage, err := disk.UsageWithContext(ctx, vol.Path)
	if err != nil {
		d.logger.Writef("Disk sampler: usage for %s: %v", vol.Path, err)
		return
	}

	usedGB := float64(usage.Used) / bytesPerGB
	totalGB := float64(usage.Total) / bytesPerGB
	var percent float64
	if totalGB > 0 {
		percent = usedGB / totalGB * 100
	}

	if _, err := d.store.UpdateStorage(d.volumeID, models.StorageVolumePatch{
		UsedGB:       &usedGB,
		TotalGB:      &totalGB,
		UsagePercent: &percent,
	}); err != nil {
		d.logger.Writef("Disk sampler: update %s: %v", d.volumeID, err)
	}
}
