package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/openroles/jobfeed/internal/domain"
	"github.com/openroles/jobfeed/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Output: io.Discard})
}

// fakeProvider returns canned responses in order, or a fixed error.
type fakeProvider struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no canned response")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func testEnrichConfig() *EnrichConfig {
	return &EnrichConfig{
		ClassifyTimeout:    time.Second,
		AttributesTimeout:  time.Second,
		BatchSize:          5,
		DefaultConfidence:  0.85,
		FallbackConfidence: 0.3,
	}
}

func classifiableJob(title string) domain.Job {
	return domain.Job{
		"title":        title,
		"company_name": "Acme Corp",
		"description":  "Design and build services.",
	}
}

func TestEnrichmentRun_ClassificationCaching(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"sector": "Technology", "industry_group": "Software", "industry": "SaaS", "industry_id": 12}`,
	}}
	enricher := NewEnricher(provider, testEnrichConfig(), testLogger())
	run := enricher.NewRun()

	// Two jobs with identical title and description share one provider call.
	jobA := classifiableJob("Backend Engineer")
	jobB := classifiableJob("Backend Engineer")

	run.AddForClassification(jobA)
	run.AddForClassification(jobB)
	if got := run.PendingClassifications(); got != 2 {
		t.Fatalf("expected 2 pending, got %d", got)
	}

	run.ProcessBatch(context.Background())

	if provider.calls != 1 {
		t.Errorf("expected 1 provider call for identical content, got %d", provider.calls)
	}
	for _, job := range []domain.Job{jobA, jobB} {
		if job["sector"] != "Technology" || job["industry_id"] != float64(12) {
			t.Errorf("classification not applied: %v", job)
		}
	}

	// A later identical job is served from the cache without batching.
	jobC := classifiableJob("Backend Engineer")
	run.AddForClassification(jobC)
	if got := run.PendingClassifications(); got != 0 {
		t.Errorf("cache hit should not batch, pending = %d", got)
	}
	if jobC["sector"] != "Technology" {
		t.Errorf("cache hit not applied: %v", jobC)
	}
	if provider.calls != 1 {
		t.Errorf("cache hit triggered a provider call")
	}
}

func TestEnrichmentRun_ClassificationFallback(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	enricher := NewEnricher(provider, testEnrichConfig(), testLogger())
	run := enricher.NewRun()

	job := classifiableJob("Backend Engineer")
	run.AddForClassification(job)
	run.ProcessBatch(context.Background())

	if job["sector"] != "Unknown" || job["industry_id"] != 999 {
		t.Errorf("expected fallback classification, got %v", job)
	}
	if got := run.PendingClassifications(); got != 0 {
		t.Errorf("batch not cleared after failure, pending = %d", got)
	}

	// The fallback is cached: an identical job does not re-call the provider.
	calls := provider.calls
	again := classifiableJob("Backend Engineer")
	run.AddForClassification(again)
	if provider.calls != calls {
		t.Error("failed classification not cached")
	}
	if again["sector"] != "Unknown" {
		t.Errorf("cached fallback not applied: %v", again)
	}
}

func TestEnrichmentRun_UnparseableClassification(t *testing.T) {
	provider := &fakeProvider{responses: []string{"I cannot help with that."}}
	enricher := NewEnricher(provider, testEnrichConfig(), testLogger())
	run := enricher.NewRun()

	job := classifiableJob("Backend Engineer")
	run.AddForClassification(job)
	run.ProcessBatch(context.Background())

	if job["sector"] != "Unknown" {
		t.Errorf("expected fallback for unparseable response, got %v", job)
	}
}

func TestGenerateAttributes_Success(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"ai_title": "Backend Engineer (Go)", "ai_skills": ["Go", "SQL"], "ai_confidence_score": 0.92}`,
	}}
	enricher := NewEnricher(provider, testEnrichConfig(), testLogger())
	run := enricher.NewRun()

	job := run.GenerateAttributes(context.Background(), classifiableJob("Backend Engineer"))

	if job["ai_title"] != "Backend Engineer (Go)" {
		t.Errorf("attributes not merged: %v", job)
	}
	if job["ai_confidence_score"] != 0.92 {
		t.Errorf("expected confidence 0.92, got %v", job["ai_confidence_score"])
	}
}

func TestGenerateAttributes_NonNumericConfidence(t *testing.T) {
	provider := &fakeProvider{responses: []string{
		`{"ai_title": "Backend Engineer", "ai_confidence_score": "high"}`,
	}}
	cfg := testEnrichConfig()
	enricher := NewEnricher(provider, cfg, testLogger())
	run := enricher.NewRun()

	job := run.GenerateAttributes(context.Background(), classifiableJob("Backend Engineer"))

	if job["ai_confidence_score"] != cfg.DefaultConfidence {
		t.Errorf("expected default confidence %v, got %v", cfg.DefaultConfidence, job["ai_confidence_score"])
	}
}

func TestGenerateAttributes_Fallback(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	cfg := testEnrichConfig()
	enricher := NewEnricher(provider, cfg, testLogger())
	run := enricher.NewRun()

	job := classifiableJob("Backend Engineer")
	job["description"] = strings.Repeat("long description ", 50)
	got := run.GenerateAttributes(context.Background(), job)

	if got["ai_title"] != "Backend Engineer" {
		t.Errorf("expected original title as ai_title, got %v", got["ai_title"])
	}
	if got["ai_confidence_score"] != cfg.FallbackConfidence {
		t.Errorf("expected fallback confidence %v, got %v", cfg.FallbackConfidence, got["ai_confidence_score"])
	}
	desc, _ := got["ai_description"].(string)
	if !strings.HasSuffix(desc, "...") {
		t.Errorf("expected truncated description with ellipsis, got %q", desc)
	}
	if got["ai_job_function_id"] != 999 {
		t.Errorf("expected placeholder function id, got %v", got["ai_job_function_id"])
	}
}

func TestGenerateAttributes_FallbackWithEmptyJob(t *testing.T) {
	provider := &fakeProvider{err: errors.New("provider down")}
	enricher := NewEnricher(provider, testEnrichConfig(), testLogger())
	run := enricher.NewRun()

	got := run.GenerateAttributes(context.Background(), domain.Job{})

	if got["ai_title"] != "Unknown Position" {
		t.Errorf("expected placeholder title, got %v", got["ai_title"])
	}
	if desc, _ := got["ai_description"].(string); !strings.HasPrefix(desc, "No description available") {
		t.Errorf("expected placeholder description, got %v", got["ai_description"])
	}
}

func TestProcessBatch_Empty(t *testing.T) {
	provider := &fakeProvider{}
	enricher := NewEnricher(provider, testEnrichConfig(), testLogger())
	run := enricher.NewRun()

	run.ProcessBatch(context.Background())
	if provider.calls != 0 {
		t.Errorf("empty batch triggered %d provider calls", provider.calls)
	}
}
