package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ReviewStatus represents the state of a queued review item.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// JobPayload stores the full enriched job as JSON in the database.
type JobPayload Job

// Value implements the driver.Valuer interface for database serialization.
func (p JobPayload) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *JobPayload) Scan(value interface{}) error {
	if value == nil {
		*p = JobPayload{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan JobPayload")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, p)
}

// ReviewItem is a listing held for manual review because its enrichment
// confidence fell below the auto-approval threshold.
type ReviewItem struct {
	ID         int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	JobHash    string       `gorm:"type:text;index:idx_review_hash" json:"job_hash"`
	Title      string       `gorm:"type:text" json:"title"`
	Confidence *float64     `json:"confidence"`
	Payload    JobPayload   `gorm:"type:text" json:"payload"`
	Status     ReviewStatus `gorm:"type:text;index:idx_review_status;default:pending" json:"status"`
	EnqueuedAt time.Time    `json:"enqueued_at"`
}

// TableName returns the database table name for ReviewItem.
func (ReviewItem) TableName() string {
	return "review_queue"
}

// ReviewSummary describes the state of the manual review queue.
type ReviewSummary struct {
	Pending int64      `json:"pending"`
	Total   int64      `json:"total"`
	Oldest  *time.Time `json:"oldest,omitempty"`
}
