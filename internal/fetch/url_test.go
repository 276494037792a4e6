package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-tools/ghctx/internal/artifact"
)

func TestParseURLClassifiesPullRequest(t *testing.T) {
	target, err := ParseURL("https://github.com/golang/go/pull/12345")
	require.NoError(t, err)

	assert.Equal(t, artifact.KindPullRequest, target.Kind)
	assert.Equal(t, "golang", target.Owner)
	assert.Equal(t, "go", target.Repo)
	assert.Equal(t, 12345, target.Number)
}

func TestParseURLClassifiesIssue(t *testing.T) {
	target, err := ParseURL("https://github.com/huggingface/transformers/issues/36564")
	require.NoError(t, err)

	assert.Equal(t, artifact.KindIssue, target.Kind)
	assert.Equal(t, "huggingface", target.Owner)
	assert.Equal(t, "transformers", target.Repo)
	assert.Equal(t, 36564, target.Number)
}

func TestParseURLRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"wrong host", "https://gitlab.com/o/r/issues/1"},
		{"not an artifact path", "https://github.com/golang/go"},
		{"discussion", "https://github.com/o/r/discussions/9"},
		{"non-numeric number", "https://github.com/o/r/pull/abc"},
		{"zero number", "https://github.com/o/r/issues/0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseURL(tc.url)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidURL), "error must classify as invalid URL")
		})
	}
}

func TestDiffURL(t *testing.T) {
	target := Target{Owner: "golang", Repo: "go", Number: 7}

	assert.Equal(t, "https://github.com/golang/go/pull/7.diff", DiffURL("", target))
	assert.Equal(t, "https://patch-diff.githubusercontent.com/raw/golang/go/pull/7.diff",
		DiffURL("patch-diff.githubusercontent.com/raw", target))
	assert.Equal(t, "http://127.0.0.1:9999/golang/go/pull/7.diff",
		DiffURL("http://127.0.0.1:9999", target))
}
