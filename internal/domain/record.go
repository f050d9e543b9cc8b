package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// LocationList stores a job's location entries as JSON in the database.
type LocationList []map[string]interface{}

// Value implements the driver.Valuer interface for database serialization.
func (l LocationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (l *LocationList) Scan(value interface{}) error {
	if value == nil {
		*l = LocationList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan LocationList")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, l)
}

// JobRecord is the persisted shape of a canonical job listing. Datetime
// fields are stored as the ISO-8601 strings carried by the canonical job so
// that the stored contract matches what feeds delivered bit for bit.
type JobRecord struct {
	ID              int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalJobID   string       `gorm:"type:text;not null" json:"external_job_id"`
	JobSource       string       `gorm:"type:text;not null" json:"job_source"`
	FeedID          *int         `json:"feed_id"`
	JobHash         string       `gorm:"type:text;not null;uniqueIndex:idx_jobs_hash" json:"job_hash"`
	CreatedAt       string       `gorm:"type:text" json:"created_at"`
	UpdatedAt       string       `gorm:"type:text" json:"updated_at"`
	PostedAt        string       `gorm:"type:text" json:"posted_at"`
	ExpiresAt       *string      `gorm:"type:text" json:"expires_at"`
	Status          JobStatus    `gorm:"type:text;index:idx_jobs_status" json:"status"`
	CompanyName     string       `gorm:"type:text;not null" json:"company_name"`
	Title           string       `gorm:"type:text;not null" json:"title"`
	Description     string       `gorm:"type:text;not null" json:"description"`
	ApplicationURL  *string      `gorm:"type:text" json:"application_url"`
	EmploymentType  *string      `gorm:"type:text" json:"employment_type"`
	IsRemote        bool         `json:"is_remote"`
	IsMultiLocation bool         `json:"is_multi_location"`
	IsInternational bool         `json:"is_international"`
	Locations       LocationList `gorm:"type:text" json:"locations"`
	SalaryMin       *float64     `json:"salary_min"`
	SalaryMax       *float64     `json:"salary_max"`
	SalaryPeriod    *string      `gorm:"type:text" json:"salary_period"`
	Currency        *string      `gorm:"type:text" json:"currency"`
}

// TableName returns the database table name for JobRecord.
func (JobRecord) TableName() string {
	return "open_jobs"
}

// RecordFromJob converts a validated canonical job into its persisted shape.
// Fields outside the target schema (including ai_ attributes) are dropped.
func RecordFromJob(job Job) *JobRecord {
	rec := &JobRecord{
		ExternalJobID:   job.String("external_job_id"),
		JobSource:       job.String("job_source"),
		JobHash:         job.String("job_hash"),
		CreatedAt:       job.String("created_at"),
		UpdatedAt:       job.String("updated_at"),
		PostedAt:        job.String("posted_at"),
		Status:          JobStatus(job.String("status")),
		CompanyName:     job.String("company_name"),
		Title:           job.String("title"),
		Description:     job.String("description"),
		IsRemote:        boolField(job, "is_remote"),
		IsMultiLocation: boolField(job, "is_multi_location"),
		IsInternational: boolField(job, "is_international"),
	}

	if v, ok := job["feed_id"]; ok && v != nil {
		if n, ok := toInt(v); ok {
			rec.FeedID = &n
		}
	}
	rec.ExpiresAt = stringPtr(job, "expires_at")
	rec.ApplicationURL = stringPtr(job, "application_url")
	rec.EmploymentType = stringPtr(job, "employment_type")
	rec.SalaryMin = floatPtr(job, "salary_min")
	rec.SalaryMax = floatPtr(job, "salary_max")
	rec.SalaryPeriod = stringPtr(job, "salary_period")
	rec.Currency = stringPtr(job, "currency")

	if locs, ok := job["locations"].([]interface{}); ok {
		for _, l := range locs {
			switch v := l.(type) {
			case map[string]interface{}:
				rec.Locations = append(rec.Locations, v)
			case string:
				// Feeds may deliver bare location names.
				rec.Locations = append(rec.Locations, map[string]interface{}{"location": v})
			}
		}
	}

	return rec
}

func boolField(job Job, key string) bool {
	b, _ := job[key].(bool)
	return b
}

func stringPtr(job Job, key string) *string {
	if s, ok := job[key].(string); ok {
		return &s
	}
	return nil
}

func floatPtr(job Job, key string) *float64 {
	switch n := job[key].(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	}
	return nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// NowISO returns the current UTC time in the ISO-8601 form stored on records.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.999999") + "Z"
}
