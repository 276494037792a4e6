// Package firecrawl provides a minimal HTTP client for the Firecrawl
// structured-extraction API, used to turn a GitHub page into a typed record.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL is the hosted Firecrawl endpoint used when no override is
// configured.
const DefaultAPIURL = "https://api.firecrawl.dev"

// Client calls the Firecrawl extract endpoint.
type Client struct {
	logger  *slog.Logger
	httpc   *http.Client
	apiURL  string
	apiKey  string
}

// NewClient constructs a Client. apiURL falls back to DefaultAPIURL when
// empty; apiKey must be set.
func NewClient(logger *slog.Logger, apiURL, apiKey string, timeout time.Duration) (*Client, error) {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("firecrawl API key is empty")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		logger: logger,
		httpc:  &http.Client{Timeout: timeout},
		apiURL: apiURL,
		apiKey: apiKey,
	}, nil
}

type extractRequest struct {
	URLs   []string `json:"urls"`
	Prompt string   `json:"prompt"`
	Schema any      `json:"schema,omitempty"`
}

type extractResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// Extract asks the service to extract structured data for url according to
// schema, decoding the result into out. Failures are returned as *Error with
// a classified kind.
func (c *Client) Extract(ctx context.Context, url, prompt string, schema any, out any) error {
	payload, err := json.Marshal(extractRequest{
		URLs:   []string{url},
		Prompt: prompt,
		Schema: schema,
	})
	if err != nil {
		return fmt.Errorf("encode extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v1/extract", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	if c.logger != nil {
		c.logger.Debug("firecrawl extract request", "url", url)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Kind: ServiceError, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: ServiceError, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, string(body))
	}

	var decoded extractResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return &Error{Kind: ServiceError, Status: resp.StatusCode, Message: fmt.Sprintf("decode extract response: %v", err)}
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = "extraction reported failure without detail"
		}
		return &Error{Kind: ServiceError, Status: resp.StatusCode, Message: msg}
	}
	if len(decoded.Data) == 0 {
		return &Error{Kind: ServiceError, Status: resp.StatusCode, Message: "extraction returned no data"}
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return &Error{Kind: ServiceError, Status: resp.StatusCode, Message: fmt.Sprintf("decode extracted data: %v", err)}
	}
	return nil
}

func classifyStatus(status int, body string) *Error {
	msg := strings.TrimSpace(body)
	if len(msg) > 300 {
		msg = msg[:300]
	}
	switch {
	case status == http.StatusTooManyRequests:
		return &Error{Kind: RateLimited, Status: status, Message: msg}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: PermissionDenied, Status: status, Message: msg}
	case status == http.StatusNotFound:
		return &Error{Kind: NotFound, Status: status, Message: msg}
	default:
		return &Error{Kind: ServiceError, Status: status, Message: msg}
	}
}
