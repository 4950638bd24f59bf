package models

import "time"

// Patch types carry partial updates. Nil fields are left untouched by the
// store's merge; identity fields are deliberately absent.

// ServicePatch is a partial update for a Service.
type ServicePatch struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"type"`
	Status      *string  `json:"status"`
	URL         *string  `json:"url"`
	ContainerID *string  `json:"containerId"`
	Uptime      *float64 `json:"uptime"`
}

// GpuPatch is a partial update for a Gpu.
type GpuPatch struct {
	Name        *string  `json:"name"`
	Utilization *float64 `json:"utilization"`
	VramUsed    *float64 `json:"vramUsed"`
	VramTotal   *float64 `json:"vramTotal"`
	Temperature *int     `json:"temperature"`
	JobsQueued  *int     `json:"jobsQueued" binding:"omitempty,gte=0"`
}

// StorageVolumePatch is a partial update for a StorageVolume.
type StorageVolumePatch struct {
	Name         *string  `json:"name"`
	Path         *string  `json:"path"`
	UsedGB       *float64 `json:"usedGB"`
	TotalGB      *float64 `json:"totalGB"`
	UsagePercent *float64 `json:"usagePercent"`
	Category     *string  `json:"type"`
}

// CameraPatch is a partial update for a Camera.
type CameraPatch struct {
	Name            *string    `json:"name"`
	Enabled         *bool      `json:"enabled"`
	CaptionEnabled  *bool      `json:"captionEnabled"`
	RateLimit       *int       `json:"rateLimit" binding:"omitempty,gte=0"`
	ThumbnailURL    *string    `json:"thumbnailUrl"`
	LastCaption     *string    `json:"lastCaption"`
	LastCaptionTime *time.Time `json:"lastCaptionTime"`
}

// NewCaption carries the caller-provided fields for a caption; id and
// timestamp are generated by the store.
type NewCaption struct {
	CameraID    string `json:"cameraId" binding:"required"`
	CameraName  string `json:"cameraName" binding:"required"`
	Caption     string `json:"caption" binding:"required"`
	SnapshotURL string `json:"snapshotUrl"`
}

// NewEvent carries the caller-provided fields for an event; id and
// timestamp are generated by the store.
type NewEvent struct {
	Category    string         `json:"type"`
	Severity    string         `json:"severity"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}
