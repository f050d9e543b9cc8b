package service

import (
	"context"

	"github.com/openroles/jobfeed/internal/domain"
	"github.com/openroles/jobfeed/internal/logger"
)

// Publisher pushes auto-approved listings to the publication platform.
type Publisher interface {
	Publish(ctx context.Context, job domain.Job) error
}

// ReviewQueue is the durable holding area for listings awaiting a human
// decision.
type ReviewQueue interface {
	Enqueue(ctx context.Context, job domain.Job) error
	Status(ctx context.Context) (*domain.ReviewSummary, error)
	List(ctx context.Context) ([]domain.ReviewItem, error)
}

// RouteDecision is the terminal state assigned to an enriched job.
type RouteDecision int

const (
	RouteAutoApproved RouteDecision = iota
	RouteManualReview
)

// Router makes the publish-vs-review decision for enriched listings.
type Router struct {
	publisher Publisher
	reviews   ReviewQueue
	threshold float64
	log       *logger.Logger
}

// NewRouter creates a confidence router with the given inclusive threshold.
func NewRouter(publisher Publisher, reviews ReviewQueue, threshold float64, log *logger.Logger) *Router {
	return &Router{
		publisher: publisher,
		reviews:   reviews,
		threshold: threshold,
		log:       log,
	}
}

// Route sends one enriched job to its terminal state: a missing confidence
// score or a score below the threshold goes to manual review, a score at or
// above the threshold is published. The threshold comparison is inclusive at
// the boundary.
func (r *Router) Route(ctx context.Context, job domain.Job) (RouteDecision, error) {
	score, ok := job.ConfidenceScore()

	if !ok {
		r.log.WithField("title", job.Title()).Warn("Confidence score not found, defaulting to manual review")
		return RouteManualReview, r.reviews.Enqueue(ctx, job)
	}

	if score >= r.threshold {
		r.log.WithFields(logger.Fields{
			"title":      job.Title(),
			"confidence": score,
			"threshold":  r.threshold,
		}).Info("Auto-approving job")
		return RouteAutoApproved, r.publisher.Publish(ctx, job)
	}

	r.log.WithFields(logger.Fields{
		"title":      job.Title(),
		"confidence": score,
		"threshold":  r.threshold,
	}).Info("Sending job for manual review")
	return RouteManualReview, r.reviews.Enqueue(ctx, job)
}
