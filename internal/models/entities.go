// Package models defines the entity types and wire payloads shared by the
// store, the telemetry broadcaster, and the HTTP handlers.
package models

import "time"

// Service categories.
const (
	ServiceCategoryAI         = "ai"
	ServiceCategoryDB         = "db"
	ServiceCategoryAutomation = "automation"
	ServiceCategoryVision     = "vision"
	ServiceCategoryInfra      = "infra"
)

// Service statuses.
const (
	ServiceStatusOperational = "operational"
	ServiceStatusWarning     = "warning"
	ServiceStatusCritical    = "critical"
	ServiceStatusOffline     = "offline"
)

// Service is a monitored infrastructure service. Status and Uptime are
// independently settable; uptime is descriptive, not derived from status.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"type"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	ContainerID string    `json:"containerId,omitempty"`
	Uptime      float64   `json:"uptime,omitempty"`
	LastChecked time.Time `json:"lastChecked"`
}

// Gpu is a single accelerator tracked by the dashboard. Utilization is a
// 0-1 fraction; VRAM figures are in GB.
type Gpu struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Utilization float64   `json:"utilization"`
	VramUsed    float64   `json:"vramUsed"`
	VramTotal   float64   `json:"vramTotal"`
	Temperature int       `json:"temperature,omitempty"`
	JobsQueued  int       `json:"jobsQueued"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Storage volume categories.
const (
	StorageCategoryModels = "models"
	StorageCategoryData   = "data"
	StorageCategorySystem = "system"
)

// StorageVolume is a mounted drive. UsagePercent is stored independently of
// UsedGB/TotalGB; callers that mutate one must keep the other consistent.
type StorageVolume struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	UsedGB       float64   `json:"usedGB"`
	TotalGB      float64   `json:"totalGB"`
	UsagePercent float64   `json:"usagePercent"`
	Category     string    `json:"type"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// Camera is a vision feed with an optional caption pipeline.
type Camera struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Enabled         bool       `json:"enabled"`
	CaptionEnabled  bool       `json:"captionEnabled"`
	RateLimit       int        `json:"rateLimit"`
	ThumbnailURL    string     `json:"thumbnailUrl,omitempty"`
	LastCaption     string     `json:"lastCaption,omitempty"`
	LastCaptionTime *time.Time `json:"lastCaptionTime,omitempty"`
}

// Caption is an immutable caption record produced by a camera. CameraName is
// denormalized so the timeline can render without a second lookup.
type Caption struct {
	ID          string    `json:"id"`
	CameraID    string    `json:"cameraId"`
	CameraName  string    `json:"cameraName"`
	Caption     string    `json:"caption"`
	Timestamp   time.Time `json:"timestamp"`
	SnapshotURL string    `json:"snapshotUrl,omitempty"`
}

// AutomationStats is the singleton home-automation coverage summary.
type AutomationStats struct {
	ID                string    `json:"id"`
	TotalEntities     int       `json:"totalEntities"`
	ActiveAutomations int       `json:"activeAutomations"`
	TotalAutomations  int       `json:"totalAutomations"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// Model is a registered inference model and its placement.
type Model struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Provider       string  `json:"provider"`
	Placement      string  `json:"placement"`
	VramFootprint  float64 `json:"vramFootprint,omitempty"`
	TypicalLatency int     `json:"typicalLatency,omitempty"`
	IsPinned       bool    `json:"isPinned"`
}

// Event severities.
const (
	EventSeverityInfo    = "info"
	EventSeverityWarning = "warning"
	EventSeverityError   = "error"
)

// Event categories.
const (
	EventCategoryService    = "service"
	EventCategoryContainer  = "container"
	EventCategoryGpu        = "gpu"
	EventCategoryStorage    = "storage"
	EventCategoryAutomation = "automation"
	EventCategoryVision     = "vision"
)

// Event is one entry in the append-only system event log.
type Event struct {
	ID          string         `json:"id"`
	Category    string         `json:"type"`
	Severity    string         `json:"severity"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}
