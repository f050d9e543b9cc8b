// Package feed acquires and decodes raw job-feed files: download or local
// read, archive extraction, and per-format decoding into generic documents.
package feed

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/openroles/jobfeed/internal/logger"
)

// Processor turns an input locator into decoded feed documents.
type Processor struct {
	client *resty.Client
	log    *logger.Logger
}

// NewProcessor creates a feed processor.
func NewProcessor(log *logger.Logger) *Processor {
	client := resty.New()
	client.SetTimeout(2 * time.Minute)
	return &Processor{client: client, log: log}
}

// ProcessInput fetches the input (URL or local path), extracts archives into
// workDir, and decodes every supported file found. The result maps file names
// to their decoded documents. An empty result with nil error means the input
// contained no decodable files.
func (p *Processor) ProcessInput(ctx context.Context, inputPath, workDir string) (map[string]interface{}, error) {
	localPath, err := p.acquire(ctx, inputPath, workDir)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]interface{})

	extractedDir, err := extractIfArchive(localPath, workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to extract archive: %w", err)
	}

	if extractedDir != "" {
		walkErr := filepath.Walk(extractedDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			doc, decErr := DecodeFile(path)
			if decErr != nil {
				p.log.WithError(decErr).WithField("file", filepath.Base(path)).Warn("Skipping undecodable file")
				return nil
			}
			if doc != nil {
				parsed[filepath.Base(path)] = doc
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("failed to walk extracted archive: %w", walkErr)
		}
		return parsed, nil
	}

	doc, err := DecodeFile(localPath)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		parsed[filepath.Base(localPath)] = doc
	}
	return parsed, nil
}

// acquire downloads a URL into workDir or verifies a local path exists.
func (p *Processor) acquire(ctx context.Context, inputPath, workDir string) (string, error) {
	if strings.HasPrefix(inputPath, "http://") || strings.HasPrefix(inputPath, "https://") {
		return p.download(ctx, inputPath, workDir)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input path not readable: %w", err)
	}
	return inputPath, nil
}

func (p *Processor) download(ctx context.Context, feedURL, workDir string) (string, error) {
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return "", fmt.Errorf("invalid feed URL: %w", err)
	}

	filename := filepath.Base(parsed.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "downloaded_feed"
	}
	target := filepath.Join(workDir, filename)

	p.log.WithField("url", feedURL).Info("Downloading feed")

	resp, err := p.client.R().
		SetContext(ctx).
		SetOutput(target).
		Get(feedURL)
	if err != nil {
		return "", fmt.Errorf("failed to download feed: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("feed download returned HTTP %d", resp.StatusCode())
	}

	return target, nil
}
