package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-tools/ghctx/internal/artifact"
)

func TestCommentRendering(t *testing.T) {
	got := Comment(artifact.Comment{
		Author:    "octocat",
		Content:   "looks good\nwith two lines",
		CreatedAt: "2024-05-01T10:00:00Z",
	})
	assert.Equal(t, "**octocat** (2024-05-01T10:00:00Z):\nlooks good\nwith two lines", got)
}

func TestCommitRenderingShortensSHA(t *testing.T) {
	got := Commit(artifact.Commit{
		SHA:       "0123456789abcdef",
		Message:   "fix flaky test",
		Author:    "alice",
		CreatedAt: "2024-05-02T09:00:00Z",
	})
	assert.Equal(t, "0123456: fix flaky test (by alice on 2024-05-02T09:00:00Z)", got)
}

func TestCommitRenderingKeepsShortSHA(t *testing.T) {
	got := Commit(artifact.Commit{SHA: "abc", Message: "m", Author: "a", CreatedAt: "t"})
	assert.Equal(t, "abc: m (by a on t)", got)
}

func TestChangesRendering(t *testing.T) {
	got := Changes(artifact.FileChange{Additions: 12, Deletions: 3})
	assert.Equal(t, "+12 -3", got)
}

func TestReferenceRendering(t *testing.T) {
	issue := Reference(artifact.Reference{
		Kind:   artifact.KindIssue,
		Number: 42,
		Title:  "Crash on startup",
		URL:    "https://github.com/o/r/issues/42",
	})
	assert.Equal(t, "issue 42: Crash on startup (https://github.com/o/r/issues/42)", issue)

	commit := Reference(artifact.Reference{
		Kind: artifact.KindCommit,
		SHA:  "deadbeef",
		URL:  "https://github.com/o/r/commit/deadbeef",
	})
	assert.Equal(t, "commit deadbeef:  (https://github.com/o/r/commit/deadbeef)", commit)
}

func prRecord() *artifact.Record {
	return &artifact.Record{
		Kind:      artifact.KindPullRequest,
		Title:     "Add retry",
		Number:    7,
		State:     "merged",
		Author:    "bob",
		CreatedAt: "2024-04-01T00:00:00Z",
		UpdatedAt: "2024-04-02T00:00:00Z",
		MergedAt:  "2024-04-03T00:00:00Z",
		Body:      "adds retries",
		Comments: []artifact.Comment{
			{Author: "carol", Content: "nice", CreatedAt: "2024-04-01T12:00:00Z"},
		},
		Labels: []string{"enhancement"},
		Commits: []artifact.Commit{
			{SHA: "abcdef0123456789", Message: "add retry", Author: "bob", CreatedAt: "2024-04-01T01:00:00Z"},
		},
		FileChanges: []artifact.FileChange{
			{Filename: "retry.go", Status: "added", Additions: 100, Deletions: 0, Changes: 100, Patch: "+func Do() {}"},
		},
		RelatedItems: []artifact.Reference{
			{Kind: artifact.KindIssue, Number: 6, Title: "Flaky fetch", URL: "https://github.com/o/r/issues/6"},
		},
	}
}

func TestNewBuildsPullRequestShell(t *testing.T) {
	doc := New(prRecord())

	assert.Equal(t, "pull_request", doc.Kind)
	assert.Equal(t, 7, doc.Number)
	assert.Equal(t, "2024-04-03T00:00:00Z", doc.MergedAt)
	assert.Equal(t, []string{"**carol** (2024-04-01T12:00:00Z):\nnice"}, doc.Conversation)
	assert.Equal(t, []string{"abcdef0: add retry (by bob on 2024-04-01T01:00:00Z)"}, doc.Commits)

	require.Len(t, doc.FileChanges, 1)
	assert.Equal(t, "+100 -0", doc.FileChanges[0].Changes)
	assert.Equal(t, "+func Do() {}", doc.FileChanges[0].Patch)

	require.Len(t, doc.RelatedItems, 1)
	assert.Equal(t, "issue 6: Flaky fetch (https://github.com/o/r/issues/6)", doc.RelatedItems[0].Reference)
	assert.Nil(t, doc.RelatedItems[0].Content, "the formatter never expands related items")
}

func TestNewIssueOmitsPullRequestFields(t *testing.T) {
	doc := New(&artifact.Record{
		Kind:   artifact.KindIssue,
		Number: 1,
		Title:  "bug",
	})

	assert.Equal(t, "issue", doc.Kind)
	assert.Empty(t, doc.MergedAt)
	assert.Nil(t, doc.Commits)
	assert.Nil(t, doc.FileChanges)
}

func TestNewIsIdempotent(t *testing.T) {
	record := prRecord()
	first := New(record)
	second := New(record)
	assert.Equal(t, first, second, "formatting the same record twice must be byte-identical")
}
