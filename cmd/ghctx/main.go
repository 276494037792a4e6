package main

import (
	"errors"
	"os"

	"github.com/llm-tools/ghctx/internal/cli"
	"github.com/llm-tools/ghctx/internal/fetch"
	"github.com/llm-tools/ghctx/internal/firecrawl"
	"github.com/llm-tools/ghctx/internal/logging"
)

// Exit codes distinguish bad input from upstream service trouble so that
// automation can react to each differently.
const (
	exitInvalidURL = 1
	exitExtraction = 2
	exitUnexpected = 3
)

// main is the entry point for the ghctx CLI binary.
func main() {
	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps classified error kinds to process exit codes.
func exitCode(err error) int {
	var extractionErr *firecrawl.Error
	var diffErr *fetch.DiffError
	switch {
	case errors.Is(err, fetch.ErrInvalidURL):
		return exitInvalidURL
	case errors.As(err, &extractionErr):
		return exitExtraction
	case errors.As(err, &diffErr):
		return exitExtraction
	default:
		return exitUnexpected
	}
}
