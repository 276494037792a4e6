package cli

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llm-tools/ghctx/internal/config"
	"github.com/llm-tools/ghctx/internal/firecrawl"
)

// newDoctorCommand creates the "doctor" subcommand that runs configuration preflight checks.
func newDoctorCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run configuration preflight checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			logger.Info("doctor check ok", "check", "config", "path", opts.ConfigPath)

			if err := runDoctorChecks(logger, cfg); err != nil {
				return err
			}

			logger.Info("doctor checks completed successfully")
			return nil
		},
	}
}

// runDoctorChecks validates that the loaded configuration is usable for an
// extraction run.
func runDoctorChecks(logger *slog.Logger, cfg *config.Config) error {
	if logger == nil {
		logger = slog.Default()
	}

	var failures []string

	if strings.TrimSpace(cfg.Extraction.APIKey) == "" {
		logger.Error("doctor check failed: extraction API key is not set", "check", "api-key", "hint", "set FIRECRAWL_API_KEY")
		failures = append(failures, "api-key")
	} else {
		logger.Info("doctor check ok", "check", "api-key")
	}

	apiURL := cfg.Extraction.APIURL
	if apiURL == "" {
		apiURL = firecrawl.DefaultAPIURL
	}
	if parsed, err := url.Parse(apiURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		logger.Error("doctor check failed: extraction API URL is not a valid URL", "check", "api-url", "url", apiURL)
		failures = append(failures, "api-url")
	} else {
		logger.Info("doctor check ok", "check", "api-url", "url", apiURL)
	}

	if host := strings.TrimSpace(cfg.DiffHost); host == "" {
		logger.Info("doctor check ok", "check", "diff-host", "host", "github.com (default)")
	} else if strings.ContainsAny(host, " \t") {
		logger.Error("doctor check failed: diff host must be a hostname or base URL", "check", "diff-host", "host", host)
		failures = append(failures, "diff-host")
	} else {
		logger.Info("doctor check ok", "check", "diff-host", "host", host)
	}

	if len(failures) > 0 {
		return fmt.Errorf("doctor checks failed: %s", strings.Join(failures, ", "))
	}
	return nil
}
