package domain

// JobStatus represents the lifecycle status of a stored job listing.
type JobStatus string

const (
	JobStatusActive JobStatus = "ACTIVE"
	JobStatusClosed JobStatus = "CLOSED"
)

// JobSource identifies where a listing originated.
const (
	SourceJobFeed        = "JOB_FEED"
	SourceCompanyWebsite = "COMPANY_WEBSITE"
)

// Job is a canonical job listing: a mapping restricted to the target schema's
// field names, plus (after enrichment) ai_-prefixed attributes. Feed decoders
// produce arbitrarily-shaped maps; the schema transformer narrows them into
// this shape.
type Job map[string]interface{}

// Clone returns a shallow copy of the job.
func (j Job) Clone() Job {
	out := make(Job, len(j))
	for k, v := range j {
		out[k] = v
	}
	return out
}

// String returns the string value of a field, or "" when absent or not a string.
func (j Job) String(key string) string {
	s, _ := j[key].(string)
	return s
}

// Title returns the best available display title for logging.
func (j Job) Title() string {
	if t := j.String("ai_title"); t != "" {
		return t
	}
	if t := j.String("title"); t != "" {
		return t
	}
	return "N/A"
}

// ConfidenceScore returns the enrichment confidence score when present and
// numeric. Absence is reported through ok=false and routes to manual review.
func (j Job) ConfidenceScore() (score float64, ok bool) {
	v, present := j["ai_confidence_score"]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// PipelineResult accumulates counts and non-fatal errors for one feed run.
// Created at run start, mutated throughout, immutable once returned.
type PipelineResult struct {
	Success          bool     `json:"success"`
	InputPath        string   `json:"input_path"`
	JobsProcessed    int      `json:"jobs_processed"`
	JobsInserted     int      `json:"jobs_inserted"`
	JobsClosed       int      `json:"jobs_closed"`
	JobsAutoApproved int      `json:"jobs_auto_approved"`
	JobsManualReview int      `json:"jobs_manual_review"`
	Errors           []string `json:"errors"`
}

// NewPipelineResult creates an empty result for the given input.
func NewPipelineResult(inputPath string) *PipelineResult {
	return &PipelineResult{
		InputPath: inputPath,
		Errors:    []string{},
	}
}

// AddError appends a non-fatal error message to the result.
func (r *PipelineResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}
