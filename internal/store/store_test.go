package store

import (
	"fmt"
	"testing"

	"unidash/internal/models"
)

func TestListServicesSortedByName(t *testing.T) {
	s := New()
	services := s.ListServices()
	if len(services) != 8 {
		t.Fatalf("expected 8 seeded services, got %d", len(services))
	}
	for i := 1; i < len(services); i++ {
		if services[i-1].Name > services[i].Name {
			t.Fatalf("services out of order: %q before %q", services[i-1].Name, services[i].Name)
		}
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s := New()
	before := s.ListGpus()

	status := "offline"
	if _, err := s.UpdateService("nope", models.ServicePatch{Status: &status}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	util := 0.5
	if _, err := s.UpdateGpu("nope", models.GpuPatch{Utilization: &util}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateStorage("nope", models.StorageVolumePatch{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateCamera("nope", models.CameraPatch{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := s.ListGpus()
	if len(before) != len(after) {
		t.Fatalf("collection changed after failed update")
	}
}

func TestUpdateServiceMergesOnlyProvidedFields(t *testing.T) {
	s := New()
	status := "critical"
	updated, err := s.UpdateService("qdrant", models.ServicePatch{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "critical" {
		t.Fatalf("status not applied: %q", updated.Status)
	}
	if updated.Name != "Qdrant" || updated.URL != "http://localhost:6333" || updated.Uptime != 95.2 {
		t.Fatalf("unrelated fields mutated: %+v", updated)
	}
	if updated.ID != "qdrant" {
		t.Fatalf("identity changed: %q", updated.ID)
	}
}

func TestUpdateGpuRefreshesTimestamp(t *testing.T) {
	s := New()
	before, _ := s.GetGpu("gpu0")
	util := 0.5
	updated, err := s.UpdateGpu("gpu0", models.GpuPatch{Utilization: &util})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Utilization != 0.5 {
		t.Fatalf("utilization not applied: %v", updated.Utilization)
	}
	if updated.LastUpdated.Before(before.LastUpdated) {
		t.Fatalf("lastUpdated not refreshed")
	}
	if updated.VramUsed != before.VramUsed {
		t.Fatalf("unrelated fields mutated")
	}
}

func TestListModelsPinnedFirstThenName(t *testing.T) {
	s := New()
	ms := s.ListModels()
	if len(ms) != 4 {
		t.Fatalf("expected 4 models, got %d", len(ms))
	}
	wantOrder := []string{"llama3_70b", "sd_xl", "codellama", "mistral_7b"}
	for i, want := range wantOrder {
		if ms[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, ms[i].ID)
		}
	}
}

func TestEventLogCapAndOrder(t *testing.T) {
	s := New()
	for i := 0; i < 120; i++ {
		s.CreateEvent(models.NewEvent{
			Category: models.EventCategoryService,
			Severity: models.EventSeverityInfo,
			Title:    fmt.Sprintf("event %d", i),
		})
	}

	events := s.ListEvents()
	if len(events) != 50 {
		t.Fatalf("expected 50 retained events, got %d", len(events))
	}
	// Newest first, and all seeded (older) entries must have been trimmed.
	for i := 1; i < len(events); i++ {
		if events[i-1].Timestamp.Before(events[i].Timestamp) {
			t.Fatalf("events out of order at %d", i)
		}
	}
	if events[0].Title != "event 119" {
		t.Fatalf("expected newest event first, got %q", events[0].Title)
	}
}

func TestCreateCaptionGeneratesIdentity(t *testing.T) {
	s := New()
	rec := s.CreateCaption(models.NewCaption{
		CameraID:   "tracker",
		CameraName: "Tracker Camera",
		Caption:    "Bird on the fence",
	})
	if rec.ID == "" {
		t.Fatalf("expected generated id")
	}
	if rec.Timestamp.IsZero() {
		t.Fatalf("expected stamped timestamp")
	}

	captions := s.ListCaptions()
	if captions[0].ID != rec.ID {
		t.Fatalf("new caption should be newest first, got %q", captions[0].Caption)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := New()
	gpus := s.ListGpus()
	gpus[0].Utilization = 0.99

	fresh, _ := s.GetGpu(gpus[0].ID)
	if fresh.Utilization == 0.99 {
		t.Fatalf("mutating a listed value leaked into the store")
	}
}
