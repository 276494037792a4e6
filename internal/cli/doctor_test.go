package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-tools/ghctx/internal/config"
	"github.com/llm-tools/ghctx/internal/logging"
)

func TestRunDoctorChecksPassesWithKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.Extraction.APIKey = "secret"

	err := runDoctorChecks(logging.NewLogger(io.Discard, logging.LevelError), cfg)
	require.NoError(t, err)
}

func TestRunDoctorChecksFailsWithoutKey(t *testing.T) {
	err := runDoctorChecks(logging.NewLogger(io.Discard, logging.LevelError), &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api-key")
}

func TestRunDoctorChecksRejectsBadAPIURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Extraction.APIKey = "secret"
	cfg.Extraction.APIURL = "not a url"

	err := runDoctorChecks(logging.NewLogger(io.Discard, logging.LevelError), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api-url")
}

func TestRunDoctorChecksAcceptsDiffHostForms(t *testing.T) {
	for _, host := range []string{"", "github.com", "patch-diff.githubusercontent.com/raw", "https://diff.internal"} {
		cfg := &config.Config{DiffHost: host}
		cfg.Extraction.APIKey = "secret"
		assert.NoError(t, runDoctorChecks(logging.NewLogger(io.Discard, logging.LevelError), cfg), "host %q", host)
	}
}
