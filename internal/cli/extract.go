package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llm-tools/ghctx/internal/artifact"
	"github.com/llm-tools/ghctx/internal/config"
	"github.com/llm-tools/ghctx/internal/fetch"
	"github.com/llm-tools/ghctx/internal/firecrawl"
	"github.com/llm-tools/ghctx/internal/format"
	"github.com/llm-tools/ghctx/internal/ghoutput"
	"github.com/llm-tools/ghctx/internal/render"
	"github.com/llm-tools/ghctx/internal/traverse"
)

// extractFlags holds the flag values of the root extraction command.
type extractFlags struct {
	output string
	raw    bool
	format string
	depth  int
	types  []string
}

// runExtract performs the extraction flow: load config, build the fetcher,
// traverse from the root URL and write the rendered document.
func runExtract(cmd *cobra.Command, opts *Options, flags extractFlags, url string) error {
	logger := LoggerFromContext(cmd.Context())

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("depth") && cfg.Defaults.Depth > 0 {
		flags.depth = cfg.Defaults.Depth
	}
	if flags.format == "" {
		flags.format = cfg.Defaults.Format
	}
	if flags.format == "" {
		flags.format = "json"
	}
	if flags.format != "json" && flags.format != "markdown" {
		return fmt.Errorf("unsupported output format %q (expected json or markdown)", flags.format)
	}
	if len(flags.types) == 0 {
		flags.types = cfg.Defaults.Types
	}

	kinds, err := parseKinds(flags.types)
	if err != nil {
		return err
	}

	client, err := firecrawl.NewClient(logger, cfg.Extraction.APIURL, cfg.Extraction.APIKey, cfg.Extraction.Timeout.Std())
	if err != nil {
		return fmt.Errorf("configure extraction client (set FIRECRAWL_API_KEY): %w", err)
	}
	service := fetch.NewService(logger, client, cfg.DiffHost, cfg.Retry.Policy())

	if flags.raw && flags.depth > 0 {
		logger.Warn("--raw is ignored when --depth > 0; emitting the formatted document")
		flags.raw = false
	}
	if flags.raw && flags.format == "markdown" {
		return fmt.Errorf("--raw output is only available as JSON")
	}

	var (
		doc    *format.Document
		output string
		kind   string
		number int
	)

	if flags.raw {
		logger.Info("extracting content", "url", url)
		record, err := service.Fetch(cmd.Context(), url)
		if err != nil {
			return err
		}
		output, err = render.JSON(record)
		if err != nil {
			return err
		}
		kind, number = string(record.Kind), record.Number
	} else {
		logger.Info("extracting content", "url", url, "depth", flags.depth)
		traverser := traverse.New(logger, service)
		doc, err = traverser.Traverse(cmd.Context(), url, flags.depth, kinds, traverse.NewVisited())
		if err != nil {
			return err
		}
		kind, number = doc.Kind, doc.Number

		if flags.format == "markdown" {
			output = render.Markdown(doc)
		} else {
			output, err = render.JSON(doc)
			if err != nil {
				return err
			}
		}
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(output), 0o644); err != nil {
			return fmt.Errorf("write output to %q: %w", flags.output, err)
		}
		logger.Info("output written", "path", flags.output)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	}

	if err := ghoutput.WriteResult(ghoutput.Result{
		Kind:       kind,
		Number:     number,
		URL:        url,
		OutputPath: flags.output,
	}); err != nil {
		logger.Warn("failed to write GITHUB_OUTPUT results", "error", err)
	}

	return nil
}

// parseKinds converts the --types values into a traverse.KindSet. Empty
// input means "expand all kinds".
func parseKinds(values []string) (traverse.KindSet, error) {
	if len(values) == 0 {
		return nil, nil
	}
	kinds := make([]artifact.Kind, 0, len(values))
	for _, value := range values {
		kind, ok := artifact.ParseKind(strings.TrimSpace(value))
		if !ok {
			return nil, fmt.Errorf("unknown reference kind %q (expected issue, pull_request or commit)", value)
		}
		kinds = append(kinds, kind)
	}
	return traverse.NewKindSet(kinds...), nil
}
