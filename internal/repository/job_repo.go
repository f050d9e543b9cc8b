package repository

import (
	"context"
	"fmt"

	"github.com/openroles/jobfeed/internal/domain"
	"gorm.io/gorm"
)

// JobRepository is the persistent store for job listings. It is the single
// source of truth for existence and activity of a listing; fingerprint
// membership is never cached across pipeline runs.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// ExistingFingerprints returns the fingerprint set of every stored listing,
// active and closed.
func (r *JobRepository) ExistingFingerprints(ctx context.Context) (map[string]struct{}, error) {
	var hashes []string
	if err := r.db.WithContext(ctx).
		Model(&domain.JobRecord{}).
		Pluck("job_hash", &hashes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch existing fingerprints: %w", err)
	}

	set := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		if h != "" {
			set[h] = struct{}{}
		}
	}
	return set, nil
}

// ActiveFingerprints returns fingerprint -> record ID for every active listing.
func (r *JobRepository) ActiveFingerprints(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		ID      int64
		JobHash string
	}
	if err := r.db.WithContext(ctx).
		Model(&domain.JobRecord{}).
		Select("id", "job_hash").
		Where("status = ?", domain.JobStatusActive).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch active fingerprints: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.JobHash != "" {
			out[row.JobHash] = row.ID
		}
	}
	return out, nil
}

// Insert persists a new job record.
func (r *JobRepository) Insert(ctx context.Context, rec *domain.JobRecord) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert job %s: %w", rec.ExternalJobID, err)
	}
	return nil
}

// CloseByFingerprints marks every listing with one of the given fingerprints
// as closed. Closure is idempotent per record.
func (r *JobRepository) CloseByFingerprints(ctx context.Context, fingerprints []string) (int64, error) {
	if len(fingerprints) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Model(&domain.JobRecord{}).
		Where("job_hash IN ?", fingerprints).
		Where("status = ?", domain.JobStatusActive).
		Update("status", domain.JobStatusClosed)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to close jobs: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CountByStatus counts stored listings by status.
func (r *JobRepository) CountByStatus(ctx context.Context, status domain.JobStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.JobRecord{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
