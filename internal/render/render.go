// Package render serializes traversal documents to JSON or Markdown for
// output.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/llm-tools/ghctx/internal/format"
)

// JSON renders any value as two-space-indented JSON.
func JSON(v any) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode JSON output: %w", err)
	}
	return string(out), nil
}

// Markdown renders a document, including any nested related-item documents,
// as a human-readable narrative.
func Markdown(doc *format.Document) string {
	var sb strings.Builder
	writeDocument(&sb, doc, 1)
	return sb.String()
}

// heading returns a markdown heading prefix for the given level, capped at
// h6 for deeply nested documents.
func heading(level int) string {
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level)
}

func writeDocument(sb *strings.Builder, doc *format.Document, level int) {
	if doc.Kind == "pull_request" {
		fmt.Fprintf(sb, "%s Pull Request #%d: %s\n\n", heading(level), doc.Number, doc.Title)
	} else {
		fmt.Fprintf(sb, "%s Issue #%d: %s\n\n", heading(level), doc.Number, doc.Title)
	}

	fmt.Fprintf(sb, "**State:** %s  \n", doc.State)
	fmt.Fprintf(sb, "**Author:** %s  \n", doc.Author)
	fmt.Fprintf(sb, "**Created:** %s  \n", doc.CreatedAt)
	if doc.MergedAt != "" {
		fmt.Fprintf(sb, "**Merged:** %s  \n", doc.MergedAt)
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "%s Description\n\n%s\n\n", heading(level+1), doc.Description)

	if len(doc.Labels) > 0 {
		fmt.Fprintf(sb, "%s Labels\n\n", heading(level+1))
		quoted := make([]string, 0, len(doc.Labels))
		for _, label := range doc.Labels {
			quoted = append(quoted, "`"+label+"`")
		}
		sb.WriteString(strings.Join(quoted, ", ") + "\n\n")
	}

	fmt.Fprintf(sb, "%s Conversation\n\n", heading(level+1))
	for _, comment := range doc.Conversation {
		fmt.Fprintf(sb, "%s\n\n---\n\n", comment)
	}

	if doc.Kind == "pull_request" {
		fmt.Fprintf(sb, "%s Commits\n\n", heading(level+1))
		for _, commit := range doc.Commits {
			fmt.Fprintf(sb, "* %s\n", commit)
		}
		sb.WriteString("\n")

		writeFileChanges(sb, doc, level)
	}

	if len(doc.RelatedItems) > 0 {
		fmt.Fprintf(sb, "%s Related Items\n\n", heading(level+1))
		for _, item := range doc.RelatedItems {
			fmt.Fprintf(sb, "* %s\n", item.Reference)
		}
		sb.WriteString("\n")
		for _, item := range doc.RelatedItems {
			if item.Content != nil {
				writeDocument(sb, item.Content, level+2)
			}
		}
	}
}

// writeFileChanges renders the per-file structured diff, falling back to one
// fenced block of the raw unified diff when no per-file patches exist.
func writeFileChanges(sb *strings.Builder, doc *format.Document, level int) {
	fmt.Fprintf(sb, "%s File Changes\n\n", heading(level+1))

	havePatches := false
	for _, change := range doc.FileChanges {
		fmt.Fprintf(sb, "%s %s (%s, %s)\n\n", heading(level+2), change.Filename, change.Status, change.Changes)
		if change.Patch != "" {
			havePatches = true
			fmt.Fprintf(sb, "```diff\n%s\n```\n\n", change.Patch)
		}
	}

	if !havePatches && doc.RawDiff != "" {
		fmt.Fprintf(sb, "```diff\n%s\n```\n\n", doc.RawDiff)
	}
}
