// Package ghoutput exposes extraction results to GitHub Actions via the
// GITHUB_OUTPUT file, so CI workflows can chain the produced document.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Result describes one completed extraction for CI consumers.
type Result struct {
	// Kind is the root artifact kind (issue or pull_request).
	Kind string
	// Number is the root issue or PR number.
	Number int
	// URL is the root URL that was fetched.
	URL string
	// OutputPath is the file the document was written to; empty for stdout.
	OutputPath string
}

// WriteResult appends the extraction result as outputs when running inside
// GitHub Actions. Outside Actions (no GITHUB_OUTPUT) it is a no-op.
func WriteResult(res Result) error {
	return write(map[string]string{
		"kind":        res.Kind,
		"number":      strconv.Itoa(res.Number),
		"url":         res.URL,
		"output_path": res.OutputPath,
	})
}

func write(values map[string]string) error {
	path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT"))
	if path == "" {
		return nil
	}
	if len(values) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := sanitize(values[key])
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}

func sanitize(value string) string {
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
