// Package artifact defines the normalized data model for GitHub issues and
// pull requests as returned by the structured-extraction service.
package artifact

// Kind classifies an artifact or a related-item reference.
type Kind string

const (
	// KindIssue marks a GitHub issue.
	KindIssue Kind = "issue"
	// KindPullRequest marks a GitHub pull request.
	KindPullRequest Kind = "pull_request"
	// KindCommit marks a commit reference. Commits only appear as
	// references, never as fetched records.
	KindCommit Kind = "commit"
)

// ParseKind converts a textual kind (including the short "PR" form used on
// the command line) into a Kind. The second return value reports whether the
// input was recognized.
func ParseKind(value string) (Kind, bool) {
	switch value {
	case "issue", "issues":
		return KindIssue, true
	case "pull_request", "pr", "PR", "pull":
		return KindPullRequest, true
	case "commit", "commits":
		return KindCommit, true
	default:
		return "", false
	}
}

// Comment is a single issue or PR conversation comment.
type Comment struct {
	// Author is the GitHub login of the comment author.
	Author string `json:"author"`
	// Content is the markdown body of the comment.
	Content string `json:"content"`
	// CreatedAt is the timestamp of comment creation.
	CreatedAt string `json:"created_at"`
	// UpdatedAt is the timestamp of the last edit, when known.
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Commit is one commit belonging to a pull request.
type Commit struct {
	// SHA is the full commit hash.
	SHA string `json:"sha"`
	// Message is the commit message.
	Message string `json:"message"`
	// Author is the GitHub login of the commit author.
	Author string `json:"author"`
	// CreatedAt is the commit timestamp.
	CreatedAt string `json:"created_at"`
	// URL is the canonical URL of the commit.
	URL string `json:"url"`
}

// FileChange describes one changed file in a pull request.
type FileChange struct {
	// Filename is the repository-relative path of the file.
	Filename string `json:"filename"`
	// Status is the change status (added, modified, removed).
	Status string `json:"status"`
	// Additions is the number of added lines.
	Additions int `json:"additions"`
	// Deletions is the number of removed lines.
	Deletions int `json:"deletions"`
	// Changes is the total number of changed lines.
	Changes int `json:"changes"`
	// Patch is the per-file diff, when the extraction produced one.
	Patch string `json:"patch,omitempty"`
}

// Reference points at a related issue, pull request or commit without its
// content. URL is always present and is the only globally comparable
// identity; the traversal engine keys its visited set on it.
type Reference struct {
	// Kind classifies the referenced item.
	Kind Kind `json:"kind"`
	// Number is the issue or PR number; zero for commits.
	Number int `json:"number,omitempty"`
	// SHA is the commit hash; empty for issues and PRs.
	SHA string `json:"sha,omitempty"`
	// Title is the display title, when known.
	Title string `json:"title,omitempty"`
	// URL is the canonical locator of the item.
	URL string `json:"url"`
}

// Record is the normalized content of one issue or pull request. It is a
// tagged union: Kind selects which of the PR-only fields are meaningful.
// Records are created fresh per fetch and never persisted.
type Record struct {
	// Kind is KindIssue or KindPullRequest.
	Kind Kind `json:"kind"`
	// Title is the issue or PR title.
	Title string `json:"title"`
	// Number is the issue or PR number.
	Number int `json:"number"`
	// State is open, closed or merged.
	State string `json:"state"`
	// Author is the GitHub login of the creator.
	Author string `json:"author"`
	// CreatedAt is the creation timestamp.
	CreatedAt string `json:"created_at"`
	// UpdatedAt is the last-update timestamp.
	UpdatedAt string `json:"updated_at"`
	// Body is the issue or PR description.
	Body string `json:"body"`
	// Comments is the ordered conversation.
	Comments []Comment `json:"comments"`
	// Labels lists the attached label names.
	Labels []string `json:"labels"`
	// RelatedItems lists cross-referenced issues, PRs and commits in the
	// order they were found.
	RelatedItems []Reference `json:"related_items"`

	// MergedAt is the merge timestamp; pull requests only.
	MergedAt string `json:"merged_at,omitempty"`
	// Commits lists the PR commits; pull requests only.
	Commits []Commit `json:"commits,omitempty"`
	// FileChanges is the canonical structured diff; pull requests only.
	FileChanges []FileChange `json:"file_changes,omitempty"`
	// RawDiff is the unified diff fetched from the diff host. It backs
	// markdown rendering when FileChanges carries no per-file patches.
	RawDiff string `json:"raw_diff,omitempty"`
}

// IsPullRequest reports whether the record carries the PR-only payload.
func (r *Record) IsPullRequest() bool {
	return r.Kind == KindPullRequest
}
