package service

import (
	"context"
	"sync"
	"time"

	"github.com/openroles/jobfeed/internal/domain"
	"github.com/openroles/jobfeed/internal/logger"
	"github.com/openroles/jobfeed/internal/prompts"
)

// EnrichConfig holds enrichment orchestration settings.
type EnrichConfig struct {
	ClassifyTimeout    time.Duration
	AttributesTimeout  time.Duration
	BatchSize          int // soft limit for the classification batch
	DefaultConfidence  float64
	FallbackConfidence float64
}

// Enricher coordinates AI enrichment of inserted listings. The provider is
// the only component expected to suspend; every provider failure is recovered
// locally with fallback values, so enrichment can degrade a listing's fields
// but never fail a pipeline run.
type Enricher struct {
	provider ChatProvider
	cfg      *EnrichConfig
	log      *logger.Logger
}

// NewEnricher creates an enricher.
func NewEnricher(provider ChatProvider, cfg *EnrichConfig, log *logger.Logger) *Enricher {
	return &Enricher{provider: provider, cfg: cfg, log: log}
}

// fallbackClassification is applied when the provider fails or answers with
// something that is not a classification.
var fallbackClassification = map[string]interface{}{
	"sector":         "Unknown",
	"industry_group": "Unknown",
	"industry":       "Unknown",
	"industry_id":    999,
}

var classificationFields = []string{"sector", "industry_group", "industry", "industry_id"}

type classKey struct {
	title       string
	description string
}

// EnrichmentRun is the run-scoped orchestration state: the classification
// cache and pending batch live exactly as long as one feed run. The mutex
// guards the cache against concurrent read-modify-write should callers
// dispatch attribute generation concurrently.
type EnrichmentRun struct {
	e *Enricher

	mu    sync.Mutex
	cache map[classKey]map[string]interface{}
	batch []domain.Job
}

// NewRun creates a fresh enrichment run with an empty cache and batch.
func (e *Enricher) NewRun() *EnrichmentRun {
	return &EnrichmentRun{
		e:     e,
		cache: make(map[classKey]map[string]interface{}),
	}
}

func keyOf(job domain.Job) classKey {
	return classKey{title: job.String("title"), description: job.String("description")}
}

// AddForClassification registers a job for industry classification. Cache
// hits are populated immediately and excluded from the batch; everything else
// accumulates until ProcessBatch flushes it.
func (r *EnrichmentRun) AddForClassification(job domain.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[keyOf(job)]; ok {
		applyClassification(job, cached)
		return
	}
	r.batch = append(r.batch, job)
}

// PendingClassifications returns the current batch size.
func (r *EnrichmentRun) PendingClassifications() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batch)
}

// ProcessBatch classifies every batched job. Each job is sent individually so
// a slow response cannot time out the whole batch. On provider failure or a
// malformed response the fixed fallback classification is applied and cached
// under the job's key, so repeated failures for identical content do not
// re-trigger calls. The batch is cleared unconditionally afterwards.
func (r *EnrichmentRun) ProcessBatch(ctx context.Context) {
	r.mu.Lock()
	batch := r.batch
	r.batch = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	r.e.log.WithField("count", len(batch)).Info("Processing industry classification batch")

	for _, job := range batch {
		key := keyOf(job)

		r.mu.Lock()
		cached, hit := r.cache[key]
		r.mu.Unlock()
		if hit {
			applyClassification(job, cached)
			continue
		}

		classification := r.e.classify(ctx, job)
		applyClassification(job, classification)

		r.mu.Lock()
		r.cache[key] = classification
		r.mu.Unlock()
	}
}

// classify runs one classification call; failure yields the fallback.
func (e *Enricher) classify(ctx context.Context, job domain.Job) map[string]interface{} {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.ClassifyTimeout)
	defer cancel()

	text, err := e.provider.Complete(callCtx, prompts.IndustryClassification(job))
	if err != nil {
		e.log.WithError(err).WithField("title", job.String("title")).Warn("Industry classification failed, using fallback")
		return fallbackClassification
	}

	parsed, err := ParseProviderJSON(text)
	if err != nil {
		e.log.WithError(err).WithField("title", job.String("title")).Warn("Unparseable classification response, using fallback")
		return fallbackClassification
	}

	return parsed
}

func applyClassification(job domain.Job, classification map[string]interface{}) {
	for _, field := range classificationFields {
		if v, ok := classification[field]; ok {
			job[field] = v
		}
	}
}

// GenerateAttributes asks the provider for the full ai_-prefixed attribute
// set for one job and merges it in place. An absent or non-numeric confidence
// score is replaced with the configured default; any call failure applies the
// complete fallback attribute set. Never returns an error.
func (r *EnrichmentRun) GenerateAttributes(ctx context.Context, job domain.Job) domain.Job {
	e := r.e

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.AttributesTimeout)
	defer cancel()

	text, err := e.provider.Complete(callCtx, prompts.JobAttributes(job))
	if err != nil {
		e.log.WithError(err).WithField("title", job.String("title")).Warn("Attribute generation failed, using fallback")
		applyFallbackAttributes(job, e.cfg.FallbackConfidence)
		return job
	}

	attrs, err := ParseProviderJSON(text)
	if err != nil {
		e.log.WithError(err).WithField("title", job.String("title")).Warn("Unparseable attribute response, using fallback")
		applyFallbackAttributes(job, e.cfg.FallbackConfidence)
		return job
	}

	if !numericScore(attrs["ai_confidence_score"]) {
		attrs["ai_confidence_score"] = e.cfg.DefaultConfidence
	}

	for k, v := range attrs {
		job[k] = v
	}
	return job
}

func numericScore(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int64:
		return true
	default:
		return false
	}
}

func applyFallbackAttributes(job domain.Job, confidence float64) {
	title := job.String("title")
	if title == "" {
		title = "Unknown Position"
	}
	description := job.String("description")
	if description == "" {
		description = "No description available"
	}

	job["ai_title"] = title
	job["ai_description"] = prompts.Truncate(description, 200) + "..."
	job["ai_job_tasks"] = []interface{}{"Review job posting for details"}
	job["ai_search_terms"] = []interface{}{"general"}
	job["ai_top_tags"] = []interface{}{"General"}
	job["ai_job_function_id"] = 999
	job["ai_skills"] = []interface{}{"To be determined"}
	job["ai_confidence_score"] = confidence
}
