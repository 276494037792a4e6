// Package fetch implements the single-artifact fetcher: it classifies a
// GitHub URL, drives the extraction service under the retry policy and, for
// pull requests, retrieves the raw unified diff from the diff host.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/llm-tools/ghctx/internal/artifact"
	"github.com/llm-tools/ghctx/internal/firecrawl"
	"github.com/llm-tools/ghctx/internal/logging"
	"github.com/llm-tools/ghctx/internal/retry"
)

// DefaultDiffHost serves raw pull-request diffs under
// https://{host}/{owner}/{repo}/pull/{number}.diff.
const DefaultDiffHost = "github.com"

// Extractor is the structured-extraction collaborator contract.
type Extractor interface {
	Extract(ctx context.Context, url, prompt string, schema any, out any) error
}

// DiffError is a classified failure to retrieve a raw diff. It is distinct
// from an extraction failure and is never retried.
type DiffError struct {
	// URL is the derived diff URL.
	URL string
	// Status is the non-success HTTP status, when one was received.
	Status int
	// Err is the underlying transport error, when no status was received.
	Err error
}

// Error implements the error interface.
func (e *DiffError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch diff %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch diff %s: status %d", e.URL, e.Status)
}

// Unwrap exposes the transport error for errors.Is checks.
func (e *DiffError) Unwrap() error { return e.Err }

// Service fetches and normalizes one artifact per call. It keeps no state
// between calls.
type Service struct {
	logger    *slog.Logger
	extractor Extractor
	httpc     *http.Client
	diffHost  string
	policy    retry.Policy
}

// NewService constructs a Service around the given extractor.
func NewService(logger *slog.Logger, extractor Extractor, diffHost string, policy retry.Policy) *Service {
	if strings.TrimSpace(diffHost) == "" {
		diffHost = DefaultDiffHost
	}
	return &Service{
		logger:    logger,
		extractor: extractor,
		httpc:     &http.Client{Timeout: 60 * time.Second},
		diffHost:  diffHost,
		policy:    policy,
	}
}

// Fetch retrieves the structured record for a GitHub issue or PR URL.
// Extraction calls are retried per the policy when the classified error is
// transient; invalid URLs and diff failures are never retried.
func (s *Service) Fetch(ctx context.Context, url string) (*artifact.Record, error) {
	target, err := ParseURL(url)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fetching artifact", "kind", target.Kind, "url", target.URL)

	record := &artifact.Record{}
	extractErr := s.policy.Do(ctx, s.logger, retryableExtraction, func() error {
		return s.extractor.Extract(ctx, target.URL, extractionPrompt(target.Kind), extractionSchema(target.Kind), record)
	})
	if extractErr != nil {
		return nil, fmt.Errorf("extract %s: %w", target.URL, extractErr)
	}

	// The extraction fills content fields; identity comes from the URL.
	record.Kind = target.Kind
	if record.Number == 0 {
		record.Number = target.Number
	}

	if target.Kind == artifact.KindPullRequest {
		diff, err := s.fetchDiff(ctx, target)
		if err != nil {
			return nil, err
		}
		record.RawDiff = diff
	}

	return record, nil
}

// fetchDiff GETs the derived raw-diff URL for a pull request.
func (s *Service) fetchDiff(ctx context.Context, target Target) (string, error) {
	diffURL := DiffURL(s.diffHost, target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, diffURL, nil)
	if err != nil {
		return "", &DiffError{URL: diffURL, Err: err}
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", &DiffError{URL: diffURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &DiffError{URL: diffURL, Status: resp.StatusCode}
	}

	var buf strings.Builder
	counter := logging.NewCountingWriter(s.logger, "diff")
	if _, err := io.Copy(io.MultiWriter(&buf, counter), resp.Body); err != nil {
		return "", &DiffError{URL: diffURL, Err: err}
	}
	counter.LogTotal()

	return buf.String(), nil
}

// retryableExtraction reports whether an extraction error is transient.
func retryableExtraction(err error) bool {
	var fcErr *firecrawl.Error
	if errors.As(err, &fcErr) {
		return fcErr.Retryable()
	}
	return false
}
