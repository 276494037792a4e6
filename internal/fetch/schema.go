package fetch

import "github.com/llm-tools/ghctx/internal/artifact"

// Extraction prompts sent alongside the schema.
const (
	issuePrompt = "Extract GitHub issue information based on the schema provided."
	prPrompt    = "Extract GitHub pull request information including comments, commits, and file changes based on the schema provided."
)

func str() map[string]any            { return map[string]any{"type": "string"} }
func integer() map[string]any        { return map[string]any{"type": "integer"} }
func arr(items any) map[string]any   { return map[string]any{"type": "array", "items": items} }
func obj(props map[string]any) map[string]any {
	return map[string]any{"type": "object", "properties": props}
}

func commentSchema() map[string]any {
	return obj(map[string]any{
		"author":     str(),
		"content":    str(),
		"created_at": str(),
		"updated_at": str(),
	})
}

func relatedItemSchema() map[string]any {
	return obj(map[string]any{
		"kind":   str(),
		"number": integer(),
		"sha":    str(),
		"title":  str(),
		"url":    str(),
	})
}

// extractionSchema builds the JSON schema handed to the extraction service
// for the given artifact kind.
func extractionSchema(kind artifact.Kind) map[string]any {
	props := map[string]any{
		"title":         str(),
		"number":        integer(),
		"state":         str(),
		"author":        str(),
		"created_at":    str(),
		"updated_at":    str(),
		"body":          str(),
		"comments":      arr(commentSchema()),
		"labels":        arr(str()),
		"related_items": arr(relatedItemSchema()),
	}

	if kind == artifact.KindPullRequest {
		props["merged_at"] = str()
		props["commits"] = arr(obj(map[string]any{
			"sha":        str(),
			"message":    str(),
			"author":     str(),
			"created_at": str(),
			"url":        str(),
		}))
		props["file_changes"] = arr(obj(map[string]any{
			"filename":  str(),
			"status":    str(),
			"additions": integer(),
			"deletions": integer(),
			"changes":   integer(),
			"patch":     str(),
		}))
	}

	return obj(props)
}

// extractionPrompt selects the extraction prompt for the given kind.
func extractionPrompt(kind artifact.Kind) string {
	if kind == artifact.KindPullRequest {
		return prPrompt
	}
	return issuePrompt
}
