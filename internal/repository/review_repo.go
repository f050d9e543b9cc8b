package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/openroles/jobfeed/internal/domain"
	"gorm.io/gorm"
)

// ReviewRepository is the durable manual-review queue: listings whose
// enrichment confidence fell below the auto-approval threshold wait here for
// a human decision.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Enqueue appends an enriched job to the review queue.
func (r *ReviewRepository) Enqueue(ctx context.Context, job domain.Job) error {
	item := &domain.ReviewItem{
		JobHash:    job.String("job_hash"),
		Title:      job.Title(),
		Payload:    domain.JobPayload(job),
		Status:     domain.ReviewStatusPending,
		EnqueuedAt: time.Now().UTC(),
	}
	if score, ok := job.ConfidenceScore(); ok {
		item.Confidence = &score
	}

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to enqueue review item: %w", err)
	}
	return nil
}

// Status returns a summary of the queue.
func (r *ReviewRepository) Status(ctx context.Context) (*domain.ReviewSummary, error) {
	summary := &domain.ReviewSummary{}

	if err := r.db.WithContext(ctx).
		Model(&domain.ReviewItem{}).
		Count(&summary.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count review items: %w", err)
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.ReviewItem{}).
		Where("status = ?", domain.ReviewStatusPending).
		Count(&summary.Pending).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending review items: %w", err)
	}

	if summary.Pending > 0 {
		var oldest domain.ReviewItem
		if err := r.db.WithContext(ctx).
			Where("status = ?", domain.ReviewStatusPending).
			Order("enqueued_at ASC").
			First(&oldest).Error; err == nil {
			summary.Oldest = &oldest.EnqueuedAt
		}
	}

	return summary, nil
}

// List returns pending review items in enqueue order.
func (r *ReviewRepository) List(ctx context.Context) ([]domain.ReviewItem, error) {
	var items []domain.ReviewItem
	if err := r.db.WithContext(ctx).
		Where("status = ?", domain.ReviewStatusPending).
		Order("enqueued_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list review items: %w", err)
	}
	return items, nil
}
