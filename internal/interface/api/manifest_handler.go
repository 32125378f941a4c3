package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
	"github.com/Donelpee/travelcover-insurance/internal/usecase"
)

// ManifestHandler serves manifest capture, lookup and the immediate
// bulk-send action.
type ManifestHandler struct {
	manifests repository.ManifestRepository
	service   *usecase.ManifestService
	notifier  *usecase.Notifier
}

// NewManifestHandler creates a new manifest handler
func NewManifestHandler(
	manifests repository.ManifestRepository,
	service *usecase.ManifestService,
	notifier *usecase.Notifier,
) *ManifestHandler {
	return &ManifestHandler{
		manifests: manifests,
		service:   service,
		notifier:  notifier,
	}
}

// Capture saves a manifest with its passenger batch and schedules its
// notifications.
func (h *ManifestHandler) Capture(c *gin.Context) {
	var input usecase.CaptureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manifest, scheduled, err := h.service.Capture(c.Request.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidTripWindow) {
			status = http.StatusBadRequest
		}
		body := gin.H{"error": err.Error()}
		if manifest != nil {
			// Saved but not scheduled; the client can retry planning.
			body["manifest_id"] = manifest.ID
			body["reference"] = manifest.Reference
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             manifest.ID,
		"reference":      manifest.Reference,
		"passengers":     manifest.PassengerCount,
		"jobs_scheduled": scheduled,
	})
}

func (h *ManifestHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	manifest, err := h.manifests.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "manifest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, manifest)
}

func (h *ManifestHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	manifests, err := h.manifests.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, manifests)
}

// Replan recomputes the scheduled jobs for an existing manifest.
// Idempotent: already-scheduled (passenger, rule, recipient) tuples
// are skipped.
func (h *ManifestHandler) Replan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inserted, err := h.service.Replan(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs_scheduled": inserted})
}

// SendNow fans an immediate SMS out to every passenger and next of
// kin on the manifest.
func (h *ManifestHandler) SendNow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	summary, err := h.notifier.SendManifestNow(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Delete soft-deletes a manifest, cascading to passengers and pending
// jobs.
func (h *ManifestHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
