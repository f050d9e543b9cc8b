package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openroles/jobfeed/internal/domain"
	"github.com/openroles/jobfeed/internal/logger"
	"github.com/openroles/jobfeed/internal/repository"
	"github.com/openroles/jobfeed/internal/service"
)

// FeedHandler handles feed processing and pipeline status endpoints.
type FeedHandler struct {
	pipeline  *service.Pipeline
	jobs      *repository.JobRepository
	reviews   *repository.ReviewRepository
	threshold float64
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(
	pipeline *service.Pipeline,
	jobs *repository.JobRepository,
	reviews *repository.ReviewRepository,
	threshold float64,
) *FeedHandler {
	return &FeedHandler{
		pipeline:  pipeline,
		jobs:      jobs,
		reviews:   reviews,
		threshold: threshold,
	}
}

// ProcessFeedRequest is the request body for POST /api/v1/feeds/process.
type ProcessFeedRequest struct {
	InputPath string `json:"input_path" binding:"required"`
}

// ProcessFeed runs the full pipeline over one feed input (a local path or a
// URL). The run is synchronous; the response carries the run summary.
func (h *FeedHandler) ProcessFeed(c *gin.Context) {
	var req ProcessFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "input_path is required",
		})
		return
	}

	log := logger.FromContext(c.Request.Context())
	log.WithField("input_path", req.InputPath).Info("Feed processing requested")

	result := h.pipeline.ProcessFeed(c.Request.Context(), req.InputPath)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Status reports listing counts by lifecycle status, the active confidence
// threshold, and the review queue summary.
func (h *FeedHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	active, err := h.jobs.CountByStatus(ctx, domain.JobStatusActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query job counts"})
		return
	}
	closed, err := h.jobs.CountByStatus(ctx, domain.JobStatusClosed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query job counts"})
		return
	}
	reviewSummary, err := h.reviews.Status(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query review queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": gin.H{
			"active": active,
			"closed": closed,
			"total":  active + closed,
		},
		"review_queue":         reviewSummary,
		"confidence_threshold": h.threshold,
	})
}
