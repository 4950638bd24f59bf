// Package handlers exposes the dashboard's request/response API over gin.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"unidash/internal/middleware"
	"unidash/internal/models"
	"unidash/internal/store"
	"unidash/internal/utils"
)

// offloadFreedGB is how much an offload run moves off a volume.
const offloadFreedGB = 200.0

// DashboardHandlers serves the entity read/write surface consumed by the UI.
type DashboardHandlers struct {
	store  *store.Store
	logger *utils.Logger
}

func NewDashboardHandlers(st *store.Store, logger *utils.Logger) *DashboardHandlers {
	return &DashboardHandlers{store: st, logger: logger}
}

func (h *DashboardHandlers) APIServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListServices())
}

func (h *DashboardHandlers) APIServiceByID(c *gin.Context) {
	svc, err := h.store.GetService(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *DashboardHandlers) APIGpus(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListGpus())
}

func (h *DashboardHandlers) APIGpuByID(c *gin.Context) {
	gpu, err := h.store.GetGpu(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "GPU not found"})
		return
	}
	c.JSON(http.StatusOK, gpu)
}

func (h *DashboardHandlers) APIStorage(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListStorage())
}

func (h *DashboardHandlers) APIStorageByID(c *gin.Context) {
	vol, err := h.store.GetStorage(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Storage not found"})
		return
	}
	c.JSON(http.StatusOK, vol)
}

func (h *DashboardHandlers) APICameras(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListCameras())
}

func (h *DashboardHandlers) APICameraByID(c *gin.Context) {
	cam, err := h.store.GetCamera(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}
	c.JSON(http.StatusOK, cam)
}

// APICameraUpdate applies a partial camera update. A captionEnabled change
// also lands a vision event in the log; the two writes are independent, so
// an event failure would leave the camera updated (no rollback).
func (h *DashboardHandlers) APICameraUpdate(c *gin.Context) {
	id := c.Param("id")

	cam, err := h.store.GetCamera(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}

	var patch models.CameraPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format", "details": err.Error()})
		return
	}

	updated, err := h.store.UpdateCamera(id, patch)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Camera not found"})
		return
	}

	if patch.CaptionEnabled != nil {
		state := "disabled"
		if *patch.CaptionEnabled {
			state = "enabled"
		}
		h.store.CreateEvent(models.NewEvent{
			Category:    models.EventCategoryVision,
			Severity:    models.EventSeverityInfo,
			Title:       fmt.Sprintf("Caption %s for %s", state, cam.Name),
			Description: "Vision Caption API toggled for camera",
			Metadata:    map[string]any{"cameraId": id},
		})
	}

	c.JSON(http.StatusOK, updated)
}

func (h *DashboardHandlers) APICaptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListCaptions())
}

// APICaptionCreate records a caption produced by the vision pipeline. The
// body is bound upstream by middleware.ValidateJSON when routed through
// main; the handler binds itself otherwise.
func (h *DashboardHandlers) APICaptionCreate(c *gin.Context) {
	var in models.NewCaption
	if v, ok := c.Get(middleware.ValidatedDataKey); ok {
		if bound, ok := v.(*models.NewCaption); ok {
			in = *bound
		}
	} else if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.store.CreateCaption(in))
}

func (h *DashboardHandlers) APIAutomationStats(c *gin.Context) {
	stats, err := h.store.AutomationStats()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Home Assistant stats not found"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandlers) APIModels(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListModels())
}

func (h *DashboardHandlers) APIEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListEvents())
}

type offloadRequest struct {
	StorageID string `json:"storageId"`
}

// APIStorageOffload frees a fixed chunk from a volume and records the run in
// the event log, keeping usagePercent consistent with the new usedGB.
func (h *DashboardHandlers) APIStorageOffload(c *gin.Context) {
	var req offloadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StorageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Storage ID is required"})
		return
	}

	vol, err := h.store.GetStorage(req.StorageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Storage not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate offload"})
		return
	}

	newUsedGB := vol.UsedGB - offloadFreedGB
	if newUsedGB < 0 {
		newUsedGB = 0
	}
	newUsagePercent := newUsedGB / vol.TotalGB * 100

	if _, err := h.store.UpdateStorage(req.StorageID, models.StorageVolumePatch{
		UsedGB:       &newUsedGB,
		UsagePercent: &newUsagePercent,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate offload"})
		return
	}

	h.store.CreateEvent(models.NewEvent{
		Category:    models.EventCategoryStorage,
		Severity:    models.EventSeverityInfo,
		Title:       fmt.Sprintf("MinIO offload completed for %s", vol.Name),
		Description: fmt.Sprintf("Freed %.0f GB - usage now at %.1f%%", offloadFreedGB, newUsagePercent),
		Metadata:    map[string]any{"storageId": req.StorageID, "freedGB": offloadFreedGB},
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Offload completed", "freedGB": offloadFreedGB})
}
