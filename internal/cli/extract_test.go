package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-tools/ghctx/internal/artifact"
)

func TestParseKindsEmptyMeansAll(t *testing.T) {
	kinds, err := parseKinds(nil)
	require.NoError(t, err)
	assert.Nil(t, kinds)
	assert.True(t, kinds.Admits(artifact.KindCommit))
}

func TestParseKindsAcceptsShortForms(t *testing.T) {
	kinds, err := parseKinds([]string{"issue", "PR"})
	require.NoError(t, err)

	assert.True(t, kinds.Admits(artifact.KindIssue))
	assert.True(t, kinds.Admits(artifact.KindPullRequest))
	assert.False(t, kinds.Admits(artifact.KindCommit))
}

func TestParseKindsRejectsUnknown(t *testing.T) {
	_, err := parseKinds([]string{"discussion"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discussion")
}
