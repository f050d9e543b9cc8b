package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openroles/jobfeed/internal/repository"
)

// ReviewHandler exposes the manual-review queue.
type ReviewHandler struct {
	reviews *repository.ReviewRepository
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews *repository.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Queue lists pending review items in enqueue order.
func (h *ReviewHandler) Queue(c *gin.Context) {
	items, err := h.reviews.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list review queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}

// Status summarizes the review queue.
func (h *ReviewHandler) Status(c *gin.Context) {
	summary, err := h.reviews.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query review queue"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
