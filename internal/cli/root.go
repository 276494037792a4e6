// Package cli defines the command-line interface for ghctx.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/llm-tools/ghctx/internal/config"
	"github.com/llm-tools/ghctx/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: config.DefaultConfigPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
// The root command itself performs the extraction: `ghctx <url>`.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "ghctx <url>",
		Short: "ghctx extracts GitHub issue and PR content for LLM consumption",
		Long: "ghctx fetches structured content (title, body, comments, commits, file diffs, labels) " +
			"for a GitHub issue or pull request, optionally traversing related items up to a bounded " +
			"depth, and renders the result as JSON or Markdown.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, flags, args[0])
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", config.DefaultConfigPath, "Path to ghctx.yaml configuration file")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (if not specified, prints to stdout)")
	cmd.Flags().BoolVarP(&flags.raw, "raw", "r", false, "Output raw extracted data without LLM formatting")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: json or markdown (default json)")
	cmd.Flags().IntVarP(&flags.depth, "depth", "d", 0, "Maximum depth for recursive extraction of related items (0 = no recursion)")
	cmd.Flags().StringSliceVarP(&flags.types, "types", "t", nil, "Reference kinds to expand: issue, pull_request, commit (default all)")

	cmd.AddCommand(
		newDoctorCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
