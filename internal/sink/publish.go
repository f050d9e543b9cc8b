// Package sink holds clients for downstream destinations of enriched
// listings.
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/openroles/jobfeed/internal/domain"
)

// PublishClient pushes auto-approved listings to the downstream publication
// platform.
type PublishClient struct {
	client   *resty.Client
	endpoint string
}

// PublishConfig holds configuration for the publication platform.
type PublishConfig struct {
	APIURL string
	APIKey string
}

// NewPublishClient creates a publication client.
func NewPublishClient(cfg *PublishConfig) *PublishClient {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	return &PublishClient{
		client:   client,
		endpoint: cfg.APIURL + "/job_platform",
	}
}

type publishResponse struct {
	ID interface{} `json:"id"`
}

// Publish sends an enriched job to the platform. The internal confidence
// field is stripped before transmission; it never leaves the pipeline.
func (p *PublishClient) Publish(ctx context.Context, job domain.Job) error {
	payload := job.Clone()
	delete(payload, "ai_confidence_score")

	var resp publishResponse
	httpResp, err := p.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&resp).
		Post(p.endpoint)
	if err != nil {
		return fmt.Errorf("failed to call publish API: %w", err)
	}

	if httpResp.StatusCode() != 200 && httpResp.StatusCode() != 201 {
		return fmt.Errorf("publish API returned HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}

	return nil
}
