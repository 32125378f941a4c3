package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// JobHandler exposes the scheduled-jobs screen: listing, per-job
// cancellation and the delivery report.
type JobHandler struct {
	jobs repository.JobRepository
	logs repository.DeliveryLogRepository
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobs repository.JobRepository, logs repository.DeliveryLogRepository) *JobHandler {
	return &JobHandler{jobs: jobs, logs: logs}
}

// List returns scheduled jobs, optionally filtered by status and
// manifest.
func (h *JobHandler) List(c *gin.Context) {
	status := entity.JobStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	var manifestID uint
	if raw := c.Query("manifest_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manifest_id"})
			return
		}
		manifestID = uint(id)
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := h.jobs.List(c.Request.Context(), status, manifestID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Cancel cancels a pending job. Jobs already sent, failed or
// cancelled are terminal and cannot be cancelled again.
func (h *JobHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.jobs.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "job is not pending"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(entity.JobCancelled)})
}

// DeliveryReport aggregates the delivery log by channel and status
// over a trailing window (default 7 days).
func (h *JobHandler) DeliveryReport(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	report, err := h.logs.Report(c.Request.Context(), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
