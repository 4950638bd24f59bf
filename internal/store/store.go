// Package store owns all dashboard entity state: typed in-memory collections
// with list/get/update/create operations and entity-specific orderings.
// Each collection is guarded by its own RWMutex; consumers always receive
// copies, never references into the maps.
package store

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"unidash/internal/models"
)

// ErrNotFound is returned by get/update operations for an unknown entity id.
var ErrNotFound = errors.New("not found")

// maxEvents is the retention cap of the event log; older entries are
// trimmed after every insert.
const maxEvents = 50

// Store holds every entity collection. Construct with New and inject it
// wherever entity state is needed.
type Store struct {
	servicesMu sync.RWMutex
	services   map[string]models.Service

	gpusMu sync.RWMutex
	gpus   map[string]models.Gpu

	volumesMu sync.RWMutex
	volumes   map[string]models.StorageVolume

	camerasMu sync.RWMutex
	cameras   map[string]models.Camera

	captionsMu sync.RWMutex
	captions   []models.Caption

	automationMu sync.RWMutex
	automation   *models.AutomationStats

	modelsMu sync.RWMutex
	models   map[string]models.Model

	eventsMu sync.RWMutex
	events   []models.Event
}

// New builds a Store pre-populated with the seed inventory.
func New() *Store {
	s := &Store{
		services: make(map[string]models.Service),
		gpus:     make(map[string]models.Gpu),
		volumes:  make(map[string]models.StorageVolume),
		cameras:  make(map[string]models.Camera),
		models:   make(map[string]models.Model),
	}
	s.seed()
	return s
}

// ListServices returns all services sorted by name.
func (s *Store) ListServices() []models.Service {
	s.servicesMu.RLock()
	defer s.servicesMu.RUnlock()
	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetService returns the service with the given id.
func (s *Store) GetService(id string) (models.Service, error) {
	s.servicesMu.RLock()
	defer s.servicesMu.RUnlock()
	svc, ok := s.services[id]
	if !ok {
		return models.Service{}, ErrNotFound
	}
	return svc, nil
}

// CreateService registers a new service and stamps its check time.
func (s *Store) CreateService(svc models.Service) models.Service {
	svc.LastChecked = time.Now()
	s.servicesMu.Lock()
	s.services[svc.ID] = svc
	s.servicesMu.Unlock()
	return svc
}

// UpdateService merges the patch over the stored service.
func (s *Store) UpdateService(id string, patch models.ServicePatch) (models.Service, error) {
	s.servicesMu.Lock()
	defer s.servicesMu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return models.Service{}, ErrNotFound
	}
	if patch.Name != nil {
		svc.Name = *patch.Name
	}
	if patch.Category != nil {
		svc.Category = *patch.Category
	}
	if patch.Status != nil {
		svc.Status = *patch.Status
	}
	if patch.URL != nil {
		svc.URL = *patch.URL
	}
	if patch.ContainerID != nil {
		svc.ContainerID = *patch.ContainerID
	}
	if patch.Uptime != nil {
		svc.Uptime = *patch.Uptime
	}
	s.services[id] = svc
	return svc, nil
}

// ListGpus returns all GPUs sorted by name.
func (s *Store) ListGpus() []models.Gpu {
	s.gpusMu.RLock()
	defer s.gpusMu.RUnlock()
	out := make([]models.Gpu, 0, len(s.gpus))
	for _, g := range s.gpus {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetGpu returns the GPU with the given id.
func (s *Store) GetGpu(id string) (models.Gpu, error) {
	s.gpusMu.RLock()
	defer s.gpusMu.RUnlock()
	g, ok := s.gpus[id]
	if !ok {
		return models.Gpu{}, ErrNotFound
	}
	return g, nil
}

// UpdateGpu merges the patch over the stored GPU and refreshes its
// last-updated timestamp.
func (s *Store) UpdateGpu(id string, patch models.GpuPatch) (models.Gpu, error) {
	s.gpusMu.Lock()
	defer s.gpusMu.Unlock()
	g, ok := s.gpus[id]
	if !ok {
		return models.Gpu{}, ErrNotFound
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Utilization != nil {
		g.Utilization = *patch.Utilization
	}
	if patch.VramUsed != nil {
		g.VramUsed = *patch.VramUsed
	}
	if patch.VramTotal != nil {
		g.VramTotal = *patch.VramTotal
	}
	if patch.Temperature != nil {
		g.Temperature = *patch.Temperature
	}
	if patch.JobsQueued != nil {
		g.JobsQueued = *patch.JobsQueued
	}
	g.LastUpdated = time.Now()
	s.gpus[id] = g
	return g, nil
}

// ListStorage returns all storage volumes sorted by name.
func (s *Store) ListStorage() []models.StorageVolume {
	s.volumesMu.RLock()
	defer s.volumesMu.RUnlock()
	out := make([]models.StorageVolume, 0, len(s.volumes))
	for _, v := range s.volumes {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetStorage returns the storage volume with the given id.
func (s *Store) GetStorage(id string) (models.StorageVolume, error) {
	s.volumesMu.RLock()
	defer s.volumesMu.RUnlock()
	v, ok := s.volumes[id]
	if !ok {
		return models.StorageVolume{}, ErrNotFound
	}
	return v, nil
}

// UpdateStorage merges the patch over the stored volume and refreshes its
// last-updated timestamp. UsagePercent is stored as given; callers mutating
// UsedGB are responsible for keeping the two consistent.
func (s *Store) UpdateStorage(id string, patch models.StorageVolumePatch) (models.StorageVolume, error) {
	s.volumesMu.Lock()
	defer s.volumesMu.Unlock()
	v, ok := s.volumes[id]
	if !ok {
		return models.StorageVolume{}, ErrNotFound
	}
	if patch.Name != nil {
		v.Name = *patch.Name
	}
	if patch.Path != nil {
		v.Path = *patch.Path
	}
	if patch.UsedGB != nil {
		v.UsedGB = *patch.UsedGB
	}
	if patch.TotalGB != nil {
		v.TotalGB = *patch.TotalGB
	}
	if patch.UsagePercent != nil {
		v.UsagePercent = *patch.UsagePercent
	}
	if patch.Category != nil {
		v.Category = *patch.Category
	}
	v.LastUpdated = time.Now()
	s.volumes[id] = v
	return v, nil
}

// ListCameras returns all cameras sorted by name.
func (s *Store) ListCameras() []models.Camera {
	s.camerasMu.RLock()
	defer s.camerasMu.RUnlock()
	out := make([]models.Camera, 0, len(s.cameras))
	for _, c := range s.cameras {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetCamera returns the camera with the given id.
func (s *Store) GetCamera(id string) (models.Camera, error) {
	s.camerasMu.RLock()
	defer s.camerasMu.RUnlock()
	c, ok := s.cameras[id]
	if !ok {
		return models.Camera{}, ErrNotFound
	}
	return c, nil
}

// UpdateCamera merges the patch over the stored camera.
func (s *Store) UpdateCamera(id string, patch models.CameraPatch) (models.Camera, error) {
	s.camerasMu.Lock()
	defer s.camerasMu.Unlock()
	c, ok := s.cameras[id]
	if !ok {
		return models.Camera{}, ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Enabled != nil {
		c.Enabled = *patch.Enabled
	}
	if patch.CaptionEnabled != nil {
		c.CaptionEnabled = *patch.CaptionEnabled
	}
	if patch.RateLimit != nil {
		c.RateLimit = *patch.RateLimit
	}
	if patch.ThumbnailURL != nil {
		c.ThumbnailURL = *patch.ThumbnailURL
	}
	if patch.LastCaption != nil {
		c.LastCaption = *patch.LastCaption
	}
	if patch.LastCaptionTime != nil {
		t := *patch.LastCaptionTime
		c.LastCaptionTime = &t
	}
	s.cameras[id] = c
	return c, nil
}

// ListCaptions returns all captions newest first.
func (s *Store) ListCaptions() []models.Caption {
	s.captionsMu.RLock()
	defer s.captionsMu.RUnlock()
	out := make([]models.Caption, 0, len(s.captions))
	for i := len(s.captions) - 1; i >= 0; i-- {
		out = append(out, s.captions[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// CreateCaption appends an immutable caption record with a generated id and
// the current timestamp.
func (s *Store) CreateCaption(in models.NewCaption) models.Caption {
	rec := models.Caption{
		ID:          uuid.NewString(),
		CameraID:    in.CameraID,
		CameraName:  in.CameraName,
		Caption:     in.Caption,
		Timestamp:   time.Now(),
		SnapshotURL: in.SnapshotURL,
	}
	s.captionsMu.Lock()
	s.captions = append(s.captions, rec)
	s.captionsMu.Unlock()
	return rec
}

// AutomationStats returns the singleton home-automation summary.
func (s *Store) AutomationStats() (models.AutomationStats, error) {
	s.automationMu.RLock()
	defer s.automationMu.RUnlock()
	if s.automation == nil {
		return models.AutomationStats{}, ErrNotFound
	}
	return *s.automation, nil
}

// ListModels returns the model registry, pinned entries first, then by name.
func (s *Store) ListModels() []models.Model {
	s.modelsMu.RLock()
	defer s.modelsMu.RUnlock()
	out := make([]models.Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return strings.Compare(out[i].Name, out[j].Name) < 0
	})
	return out
}

// ListEvents returns the retained event log, newest first.
func (s *Store) ListEvents() []models.Event {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	out := make([]models.Event, 0, len(s.events))
	for i := len(s.events) - 1; i >= 0; i-- {
		out = append(out, s.events[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// CreateEvent appends an event with a generated id and the current
// timestamp, then trims the log back to the retention cap.
func (s *Store) CreateEvent(in models.NewEvent) models.Event {
	ev := models.Event{
		ID:          uuid.NewString(),
		Category:    in.Category,
		Severity:    in.Severity,
		Title:       in.Title,
		Description: in.Description,
		Metadata:    in.Metadata,
		Timestamp:   time.Now(),
	}
	s.eventsMu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > maxEvents {
		// Oldest entries live at the front; appends keep insertion order.
		sort.SliceStable(s.events, func(i, j int) bool { return s.events[i].Timestamp.Before(s.events[j].Timestamp) })
		s.events = s.events[len(s.events)-maxEvents:]
	}
	s.eventsMu.Unlock()
	return ev
}
