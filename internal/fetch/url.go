package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/llm-tools/ghctx/internal/artifact"
)

// ErrInvalidURL is returned when a URL is not a recognized GitHub issue or
// pull request URL. It always fails before any network call.
var ErrInvalidURL = errors.New("URL must be a GitHub issue or pull request URL")

// Target is a parsed GitHub issue or PR locator.
type Target struct {
	// Kind is KindIssue or KindPullRequest.
	Kind artifact.Kind
	// Owner is the repository owner.
	Owner string
	// Repo is the repository name.
	Repo string
	// Number is the issue or PR number.
	Number int
	// URL is the original input URL.
	URL string
}

// ParseURL classifies and decomposes a GitHub issue/PR URL. A path containing
// a pull segment is a pull request, an issues segment is an issue; any other
// shape fails with ErrInvalidURL.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Host != "github.com" && parsed.Host != "www.github.com" {
		return Target{}, fmt.Errorf("%w: unsupported host %q", ErrInvalidURL, parsed.Host)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 4 {
		return Target{}, fmt.Errorf("%w: path %q", ErrInvalidURL, parsed.Path)
	}

	var kind artifact.Kind
	switch segments[2] {
	case "pull", "pulls":
		kind = artifact.KindPullRequest
	case "issues":
		kind = artifact.KindIssue
	default:
		return Target{}, fmt.Errorf("%w: path %q", ErrInvalidURL, parsed.Path)
	}

	number, err := strconv.Atoi(segments[3])
	if err != nil || number <= 0 {
		return Target{}, fmt.Errorf("%w: invalid number %q", ErrInvalidURL, segments[3])
	}

	return Target{
		Kind:   kind,
		Owner:  segments[0],
		Repo:   segments[1],
		Number: number,
		URL:    raw,
	}, nil
}

// DiffURL derives the raw unified-diff URL for a pull request target. host
// may be a bare hostname or a full base URL with scheme.
func DiffURL(host string, t Target) string {
	host = strings.Trim(strings.TrimSpace(host), "/")
	if host == "" {
		host = DefaultDiffHost
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return fmt.Sprintf("%s/%s/%s/pull/%d.diff", host, t.Owner, t.Repo, t.Number)
}
