package store

import (
	"time"

	"github.com/google/uuid"

	"unidash/internal/models"
)

// seed loads the initial inventory. Services, GPUs, volumes, cameras, models
// and the automation summary are mutated in place afterwards; captions and
// events only accumulate.
func (s *Store) seed() {
	now := time.Now()

	for _, svc := range []models.Service{
		{ID: "langfuse", Name: "Langfuse", Category: models.ServiceCategoryAI, Status: models.ServiceStatusOperational, URL: "http://localhost:3001", ContainerID: "langfuse_abc123", Uptime: 99.8, LastChecked: now},
		{ID: "flowise", Name: "Flowise", Category: models.ServiceCategoryAI, Status: models.ServiceStatusOperational, URL: "http://localhost:3002", ContainerID: "flowise_def456", Uptime: 98.5, LastChecked: now},
		{ID: "n8n", Name: "n8n", Category: models.ServiceCategoryAutomation, Status: models.ServiceStatusOperational, URL: "http://localhost:5678", ContainerID: "n8n_ghi789", Uptime: 99.9, LastChecked: now},
		{ID: "ollama", Name: "Ollama", Category: models.ServiceCategoryAI, Status: models.ServiceStatusOperational, URL: "http://localhost:11434", ContainerID: "ollama_jkl012", Uptime: 100, LastChecked: now},
		{ID: "supabase", Name: "Supabase", Category: models.ServiceCategoryDB, Status: models.ServiceStatusOperational, URL: "http://localhost:54321", ContainerID: "supabase_mno345", Uptime: 99.7, LastChecked: now},
		{ID: "qdrant", Name: "Qdrant", Category: models.ServiceCategoryDB, Status: models.ServiceStatusWarning, URL: "http://localhost:6333", ContainerID: "qdrant_pqr678", Uptime: 95.2, LastChecked: now},
		{ID: "neo4j", Name: "Neo4j", Category: models.ServiceCategoryDB, Status: models.ServiceStatusOperational, URL: "http://localhost:7474", ContainerID: "neo4j_stu901", Uptime: 98.1, LastChecked: now},
		{ID: "caddy", Name: "Caddy", Category: models.ServiceCategoryInfra, Status: models.ServiceStatusOperational, ContainerID: "caddy_vwx234", Uptime: 99.99, LastChecked: now},
	} {
		s.services[svc.ID] = svc
	}

	for _, g := range []models.Gpu{
		{ID: "gpu0", Name: "GPU 0", Utilization: 0.76, VramUsed: 52, VramTotal: 80, Temperature: 72, JobsQueued: 3, LastUpdated: now},
		{ID: "gpu1", Name: "GPU 1", Utilization: 0.01, VramUsed: 4, VramTotal: 80, Temperature: 45, JobsQueued: 0, LastUpdated: now},
	} {
		s.gpus[g.ID] = g
	}

	for _, v := range []models.StorageVolume{
		{ID: "models", Name: "Models Drive", Path: "/mnt/models", UsedGB: 1880, TotalGB: 2000, UsagePercent: 94, Category: models.StorageCategoryModels, LastUpdated: now},
		{ID: "data", Name: "Data Drive", Path: "/mnt/data", UsedGB: 450, TotalGB: 1000, UsagePercent: 45, Category: models.StorageCategoryData, LastUpdated: now},
		{ID: "system", Name: "System Drive", Path: "/", UsedGB: 180, TotalGB: 500, UsagePercent: 36, Category: models.StorageCategorySystem, LastUpdated: now},
	} {
		s.volumes[v.ID] = v
	}

	trackerCaptionTime := now.Add(-5 * time.Minute)
	for _, c := range []models.Camera{
		{ID: "tracker", Name: "Tracker Camera", Enabled: true, CaptionEnabled: true, RateLimit: 60, LastCaption: "Person walking towards front door", LastCaptionTime: &trackerCaptionTime},
		{ID: "front_door", Name: "Front Door", Enabled: true, RateLimit: 60},
		{ID: "driveway", Name: "Driveway", Enabled: true, RateLimit: 60},
		{ID: "backyard", Name: "Backyard", Enabled: true, RateLimit: 90},
		{ID: "garage", Name: "Garage", Enabled: true, RateLimit: 60},
		{ID: "side_gate", Name: "Side Gate", RateLimit: 60},
		{ID: "porch", Name: "Front Porch", Enabled: true, RateLimit: 60},
	} {
		s.cameras[c.ID] = c
	}

	s.captions = []models.Caption{
		{ID: uuid.NewString(), CameraID: "tracker", CameraName: "Tracker Camera", Caption: "Cat walking across porch", Timestamp: now.Add(-4 * time.Hour)},
		{ID: uuid.NewString(), CameraID: "tracker", CameraName: "Tracker Camera", Caption: "Motion detected near vehicle in driveway", Timestamp: now.Add(-2 * time.Hour)},
		{ID: uuid.NewString(), CameraID: "tracker", CameraName: "Tracker Camera", Caption: "Person walking towards front door with package", Timestamp: now.Add(-5 * time.Minute)},
	}

	s.automation = &models.AutomationStats{
		ID:                "ha_stats",
		TotalEntities:     443,
		ActiveAutomations: 1,
		TotalAutomations:  1,
		LastUpdated:       now,
	}

	for _, m := range []models.Model{
		{ID: "llama3_70b", Name: "Llama 3 70B", Provider: "Ollama", Placement: "GPU0", VramFootprint: 42, TypicalLatency: 450, IsPinned: true},
		{ID: "mistral_7b", Name: "Mistral 7B", Provider: "LMStudio", Placement: "GPU1", VramFootprint: 5.2, TypicalLatency: 85},
		{ID: "sd_xl", Name: "Stable Diffusion XL", Provider: "LocalAI", Placement: "GPU0", VramFootprint: 12, TypicalLatency: 2500, IsPinned: true},
		{ID: "codellama", Name: "CodeLlama 34B", Provider: "Ollama", Placement: "GPU0", VramFootprint: 20, TypicalLatency: 320},
	} {
		s.models[m.ID] = m
	}

	s.events = []models.Event{
		{ID: uuid.NewString(), Category: models.EventCategoryService, Severity: models.EventSeverityInfo, Title: "Langfuse service started", Description: "Service successfully initialized and ready", Timestamp: now.Add(-time.Hour)},
		{ID: uuid.NewString(), Category: models.EventCategoryGpu, Severity: models.EventSeverityWarning, Title: "GPU0 high utilization", Description: "GPU0 has been at 76% utilization for extended period", Timestamp: now.Add(-30 * time.Minute)},
		{ID: uuid.NewString(), Category: models.EventCategoryStorage, Severity: models.EventSeverityError, Title: "Models drive at 94% capacity", Description: "Critical storage warning - consider offloading to MinIO", Timestamp: now.Add(-15 * time.Minute)},
		{ID: uuid.NewString(), Category: models.EventCategoryVision, Severity: models.EventSeverityInfo, Title: "New caption generated", Description: "Tracker Camera: Person walking towards front door", Timestamp: now.Add(-5 * time.Minute)},
	}
}
