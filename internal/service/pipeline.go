package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/openroles/jobfeed/internal/domain"
	"github.com/openroles/jobfeed/internal/feed"
	"github.com/openroles/jobfeed/internal/fingerprint"
	"github.com/openroles/jobfeed/internal/logger"
	"github.com/openroles/jobfeed/internal/schema"
)

// JobStore is the persistent store collaborator: the single source of truth
// for listing existence and activity.
type JobStore interface {
	ExistingFingerprints(ctx context.Context) (map[string]struct{}, error)
	ActiveFingerprints(ctx context.Context) (map[string]int64, error)
	Insert(ctx context.Context, rec *domain.JobRecord) error
	CloseByFingerprints(ctx context.Context, fingerprints []string) (int64, error)
}

// admissionKeys gate entry into the pipeline: a transformed record must carry
// at least one of them to count as a job.
var admissionKeys = []string{"title", "company_name", "external_job_id"}

// PipelineConfig holds pipeline-level settings.
type PipelineConfig struct {
	FeedID int
}

// Pipeline sequences one feed-processing run: acquire, decode, transform,
// reconcile against the store, enrich, and route.
type Pipeline struct {
	feeds    *feed.Processor
	store    JobStore
	enricher *Enricher
	router   *Router
	cfg      *PipelineConfig
	log      *logger.Logger

	// One run at a time: closure and insertion read the store in two
	// separate queries, so overlapping runs could close and re-insert the
	// same listing.
	runMu sync.Mutex
}

// NewPipeline creates a pipeline.
func NewPipeline(
	feeds *feed.Processor,
	store JobStore,
	enricher *Enricher,
	router *Router,
	cfg *PipelineConfig,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		feeds:    feeds,
		store:    store,
		enricher: enricher,
		router:   router,
		cfg:      cfg,
		log:      log,
	}
}

// ProcessFeed processes a complete job feed and returns the run summary.
// Success=false with errors means the run produced no usable output; per-job
// errors alongside success=true indicate partial completion.
func (p *Pipeline) ProcessFeed(ctx context.Context, inputPath string) *domain.PipelineResult {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	result := domain.NewPipelineResult(inputPath)

	log := p.log.WithFields(logger.Fields{
		logger.FieldRunID: uuid.New().String(),
		logger.FieldFeed:  inputPath,
	})
	log.Info("Starting pipeline processing")

	workDir, err := os.MkdirTemp("", "jobfeed-*")
	if err != nil {
		result.AddError(fmt.Sprintf("failed to create work dir: %v", err))
		return result
	}
	defer os.RemoveAll(workDir)

	// Step 1: acquire and decode the input.
	parsed, err := p.feeds.ProcessInput(ctx, inputPath, workDir)
	if err != nil {
		result.AddError(err.Error())
		return result
	}
	if len(parsed) == 0 {
		result.AddError("No data could be parsed from input")
		return result
	}

	// Step 2: transform and admit jobs.
	jobs := p.collectJobs(parsed)
	result.JobsProcessed = len(jobs)
	log.WithField("count", len(jobs)).Info("Transformed jobs from feed")

	if len(jobs) == 0 {
		result.AddError("No valid jobs found after transformation")
		return result
	}

	// Step 3: close listings absent from this feed.
	result.JobsClosed = p.closeMissing(ctx, jobs, result)

	// Step 4: insert unique listings.
	inserted := p.insertUnique(ctx, jobs, result)
	result.JobsInserted = len(inserted)

	// Steps 5 and 6: enrich the inserted subset, then route.
	if len(inserted) > 0 {
		enriched := p.enrich(ctx, inserted)
		p.route(ctx, enriched, result)
	}

	result.Success = true
	log.WithFields(logger.Fields{
		"processed":     result.JobsProcessed,
		"inserted":      result.JobsInserted,
		"closed":        result.JobsClosed,
		"auto_approved": result.JobsAutoApproved,
		"manual_review": result.JobsManualReview,
	}).Info("Pipeline processing completed")

	return result
}

// collectJobs extracts candidate objects from every decoded document,
// transforms them, and keeps those passing the admission filter. Documents
// are visited in file-name order so multi-file archives produce the same job
// sequence on every run.
func (p *Pipeline) collectJobs(parsed map[string]interface{}) []domain.Job {
	names := make([]string, 0, len(parsed))
	for name := range parsed {
		names = append(names, name)
	}
	sort.Strings(names)

	var jobs []domain.Job
	for _, name := range names {
		for _, candidate := range feed.ExtractCandidates(parsed[name]) {
			job := schema.Transform(candidate, schema.FeedFieldMapping)
			if admitted(job) {
				jobs = append(jobs, job)
			}
		}
	}
	return jobs
}

func admitted(job domain.Job) bool {
	for _, key := range admissionKeys {
		if _, ok := job[key]; ok {
			return true
		}
	}
	return false
}

// closeMissing fingerprints the incoming feed and closes every active
// listing whose fingerprint is absent from it.
func (p *Pipeline) closeMissing(ctx context.Context, jobs []domain.Job, result *domain.PipelineResult) int {
	incoming := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		incoming[fingerprint.Fingerprint(job)] = struct{}{}
	}
	p.log.WithField("count", len(incoming)).Info("Unique fingerprints in incoming feed")

	active, err := p.store.ActiveFingerprints(ctx)
	if err != nil {
		p.log.WithError(err).Error("Failed to fetch active fingerprints, skipping closure")
		result.AddError(fmt.Sprintf("closure check failed: %v", err))
		return 0
	}

	var toClose []string
	for fp := range active {
		if _, present := incoming[fp]; !present {
			toClose = append(toClose, fp)
		}
	}
	if len(toClose) == 0 {
		p.log.Info("No jobs to close, all active listings present in feed")
		return 0
	}

	closed, err := p.store.CloseByFingerprints(ctx, toClose)
	if err != nil {
		p.log.WithError(err).Error("Failed to close jobs")
		result.AddError(fmt.Sprintf("job closure failed: %v", err))
		return 0
	}
	p.log.WithField("count", closed).Info("Closed stale listings")
	return int(closed)
}

// insertUnique persists every incoming job whose fingerprint is not already
// stored. The in-memory fingerprint set is updated after each successful
// insert, so two identical jobs in one feed insert exactly once. Validation
// and store failures are non-fatal per job.
func (p *Pipeline) insertUnique(ctx context.Context, jobs []domain.Job, result *domain.PipelineResult) []domain.Job {
	existing, err := p.store.ExistingFingerprints(ctx)
	if err != nil {
		p.log.WithError(err).Error("Failed to fetch existing fingerprints")
		result.AddError(fmt.Sprintf("duplicate check failed: %v", err))
		existing = make(map[string]struct{})
	}
	p.log.WithField("count", len(existing)).Info("Existing fingerprints in store")

	var inserted []domain.Job
	for _, job := range jobs {
		fp := fingerprint.Fingerprint(job)

		if _, dup := existing[fp]; dup {
			p.log.WithField("title", job.String("title")).Debug("Duplicate job, skipping")
			continue
		}

		stamped := p.stamp(job, fp)

		if ok, errs := schema.Validate(stamped); !ok {
			p.log.WithFields(logger.Fields{
				"title":  stamped.String("title"),
				"errors": errs,
			}).Error("Validation failed, skipping job")
			result.AddError(fmt.Sprintf("validation failed for '%s': %s", stamped.Title(), strings.Join(errs, "; ")))
			continue
		}

		if err := p.store.Insert(ctx, domain.RecordFromJob(stamped)); err != nil {
			p.log.WithError(err).WithField("title", stamped.String("title")).Error("Failed to insert job")
			result.AddError(fmt.Sprintf("insert failed for '%s': %v", stamped.Title(), err))
			continue
		}

		existing[fp] = struct{}{}
		inserted = append(inserted, stamped)
	}

	p.log.WithField("count", len(inserted)).Info("Inserted new jobs")
	return inserted
}

// stamp adds the fingerprint and persistence metadata to a fresh listing.
func (p *Pipeline) stamp(job domain.Job, fp string) domain.Job {
	now := domain.NowISO()

	stamped := job.Clone()
	stamped["job_hash"] = fp
	stamped["job_source"] = domain.SourceJobFeed
	stamped["feed_id"] = p.cfg.FeedID
	stamped["status"] = string(domain.JobStatusActive)
	stamped["created_at"] = now
	stamped["updated_at"] = now

	for _, flag := range []string{"is_remote", "is_multi_location", "is_international"} {
		if _, ok := stamped[flag]; !ok {
			stamped[flag] = false
		}
	}

	return stamped
}

// enrich runs the two-stage enrichment protocol over the inserted jobs:
// batched industry classification, then per-job attribute generation.
func (p *Pipeline) enrich(ctx context.Context, jobs []domain.Job) []domain.Job {
	p.log.WithField("count", len(jobs)).Info("Starting AI enrichment")

	run := p.enricher.NewRun()

	for _, job := range jobs {
		run.AddForClassification(job)
		if run.PendingClassifications() >= p.enricher.cfg.BatchSize {
			run.ProcessBatch(ctx)
		}
	}
	run.ProcessBatch(ctx)

	enriched := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		enriched = append(enriched, run.GenerateAttributes(ctx, job))
	}

	p.log.WithField("count", len(enriched)).Info("AI enrichment complete")
	return enriched
}

// route applies the confidence router to every enriched job, tallying the
// outcomes. Sink failures are recorded per job and do not halt the run.
func (p *Pipeline) route(ctx context.Context, jobs []domain.Job, result *domain.PipelineResult) {
	for _, job := range jobs {
		decision, err := p.router.Route(ctx, job)
		if err != nil {
			p.log.WithError(err).WithField("title", job.Title()).Error("Routing failed")
			result.AddError(fmt.Sprintf("routing error for '%s': %v", job.Title(), err))
			continue
		}
		switch decision {
		case RouteAutoApproved:
			result.JobsAutoApproved++
		case RouteManualReview:
			result.JobsManualReview++
		}
	}
}
