// Package format converts a fetched artifact record into a flat,
// LLM-friendly document. It is pure: no I/O and no recursion into related
// items, which stay reference-only placeholders for the traversal engine.
package format

import (
	"fmt"
	"strconv"

	"github.com/llm-tools/ghctx/internal/artifact"
)

// FileChangeView is the rendered form of one changed file.
type FileChangeView struct {
	// Filename is the repository-relative path.
	Filename string `json:"filename"`
	// Status is the change status (added, modified, removed).
	Status string `json:"status"`
	// Changes is the "+{additions} -{deletions}" summary.
	Changes string `json:"changes"`
	// Patch is the per-file diff, preserved verbatim.
	Patch string `json:"patch,omitempty"`
}

// RelatedItem pairs a rendered reference line with the nested document the
// traversal attached to it. Content is nil when the reference was filtered,
// already visited, failed to fetch or out of depth.
type RelatedItem struct {
	// Reference is the rendered reference line, possibly annotated.
	Reference string `json:"reference"`
	// Content is the expanded document, when the traversal produced one.
	Content *Document `json:"content"`
}

// Document is the per-node traversal result: scalar metadata plus rendered
// conversation, commits and file changes, plus the ordered related items.
type Document struct {
	// Kind is "issue" or "pull_request".
	Kind string `json:"type"`
	// Title is the artifact title.
	Title string `json:"title"`
	// Number is the issue or PR number.
	Number int `json:"number"`
	// State is open, closed or merged.
	State string `json:"state"`
	// Author is the login of the creator.
	Author string `json:"author"`
	// CreatedAt is the creation timestamp.
	CreatedAt string `json:"created_at"`
	// MergedAt is the merge timestamp; pull requests only.
	MergedAt string `json:"merged_at,omitempty"`
	// Description is the issue or PR body.
	Description string `json:"description"`
	// Conversation holds one rendered string per comment, in order.
	Conversation []string `json:"conversation"`
	// Commits holds one rendered string per PR commit.
	Commits []string `json:"commits,omitempty"`
	// FileChanges holds the rendered PR file changes.
	FileChanges []FileChangeView `json:"file_changes,omitempty"`
	// RawDiff is the unified diff for markdown fallback rendering.
	RawDiff string `json:"raw_diff,omitempty"`
	// Labels lists the label names.
	Labels []string `json:"labels"`
	// RelatedItems preserves the record's reference order; entries are
	// never dropped, only their Content varies.
	RelatedItems []RelatedItem `json:"related_items"`
}

// Comment renders one conversation comment.
func Comment(c artifact.Comment) string {
	return fmt.Sprintf("**%s** (%s):\n%s", c.Author, c.CreatedAt, c.Content)
}

// Commit renders one PR commit using the 7-character short SHA.
func Commit(c artifact.Commit) string {
	sha := c.SHA
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return fmt.Sprintf("%s: %s (by %s on %s)", sha, c.Message, c.Author, c.CreatedAt)
}

// Changes renders the additions/deletions summary of a file change.
func Changes(fc artifact.FileChange) string {
	return fmt.Sprintf("+%d -%d", fc.Additions, fc.Deletions)
}

// Reference renders a related-item reference line.
func Reference(ref artifact.Reference) string {
	id := ref.SHA
	if ref.Number != 0 {
		id = strconv.Itoa(ref.Number)
	}
	return fmt.Sprintf("%s %s: %s (%s)", ref.Kind, id, ref.Title, ref.URL)
}

// New builds the document shell for a record. Related items are rendered as
// reference-only entries with nil Content, in the record's order.
func New(record *artifact.Record) *Document {
	doc := &Document{
		Kind:         string(record.Kind),
		Title:        record.Title,
		Number:       record.Number,
		State:        record.State,
		Author:       record.Author,
		CreatedAt:    record.CreatedAt,
		Description:  record.Body,
		Conversation: make([]string, 0, len(record.Comments)),
		Labels:       record.Labels,
		RelatedItems: make([]RelatedItem, 0, len(record.RelatedItems)),
	}

	for _, c := range record.Comments {
		doc.Conversation = append(doc.Conversation, Comment(c))
	}

	if record.IsPullRequest() {
		doc.MergedAt = record.MergedAt
		doc.Commits = make([]string, 0, len(record.Commits))
		for _, c := range record.Commits {
			doc.Commits = append(doc.Commits, Commit(c))
		}
		doc.FileChanges = make([]FileChangeView, 0, len(record.FileChanges))
		for _, fc := range record.FileChanges {
			doc.FileChanges = append(doc.FileChanges, FileChangeView{
				Filename: fc.Filename,
				Status:   fc.Status,
				Changes:  Changes(fc),
				Patch:    fc.Patch,
			})
		}
		doc.RawDiff = record.RawDiff
	}

	for _, ref := range record.RelatedItems {
		doc.RelatedItems = append(doc.RelatedItems, RelatedItem{
			Reference: Reference(ref),
			Content:   nil,
		})
	}

	return doc
}
