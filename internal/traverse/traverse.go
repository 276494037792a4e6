// Package traverse implements the recursive related-item traversal engine:
// depth-bounded, cycle-avoiding expansion of the cross-reference graph
// between issues, pull requests and commits.
package traverse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/llm-tools/ghctx/internal/artifact"
	"github.com/llm-tools/ghctx/internal/format"
)

// Fetcher retrieves the structured record behind one URL. The fetch may be
// retried transparently underneath; callers only observe final success or
// final failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*artifact.Record, error)
}

// KindSet restricts which reference kinds the traversal expands. A nil set
// admits every kind.
type KindSet map[artifact.Kind]struct{}

// NewKindSet builds a KindSet from the given kinds; with no arguments it
// returns nil, meaning "expand everything".
func NewKindSet(kinds ...artifact.Kind) KindSet {
	if len(kinds) == 0 {
		return nil
	}
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Admits reports whether the set allows expanding the given kind.
func (s KindSet) Admits(kind artifact.Kind) bool {
	if s == nil {
		return true
	}
	_, ok := s[kind]
	return ok
}

// Visited records every URL entered during one top-level traversal. It is
// owned by the top-level call and passed by reference down the call tree;
// it must never be shared across independent invocations.
type Visited map[string]struct{}

// NewVisited returns an empty visited set.
func NewVisited() Visited { return make(Visited) }

func (v Visited) has(url string) bool {
	_, ok := v[url]
	return ok
}

// Traverser walks the related-item graph depth-first. Traversal is
// synchronous and single-threaded per call tree, so the visited set needs
// no locking.
type Traverser struct {
	logger  *slog.Logger
	fetcher Fetcher
}

// New constructs a Traverser around the given fetcher.
func New(logger *slog.Logger, fetcher Fetcher) *Traverser {
	return &Traverser{logger: logger, fetcher: fetcher}
}

// Traverse fetches url and expands its related items up to depth edges below
// it. It returns (nil, nil) when url was already visited. A fetch failure
// propagates to the caller; for non-root calls the parent contains it and
// annotates the reference instead of aborting sibling branches.
//
// The URL is inserted into visited before the fetch so that a self-reference
// on the very first node is already caught by the cycle check.
func (t *Traverser) Traverse(ctx context.Context, url string, depth int, kinds KindSet, visited Visited) (*format.Document, error) {
	if visited.has(url) {
		return nil, nil
	}
	visited[url] = struct{}{}

	record, err := t.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc := format.New(record)
	if depth <= 0 {
		return doc, nil
	}

	for i, ref := range record.RelatedItems {
		item := &doc.RelatedItems[i]

		if !kinds.Admits(ref.Kind) {
			// Filtered references do not enter visited, so the same
			// URL stays expandable when reached on another path.
			item.Reference += " [not expanded: kind filtered]"
			t.logger.Debug("skipping related item", "url", ref.URL, "kind", ref.Kind, "reason", "filtered")
			continue
		}
		if visited.has(ref.URL) {
			item.Reference += " [already visited]"
			t.logger.Debug("skipping related item", "url", ref.URL, "reason", "already visited")
			continue
		}

		child, err := t.Traverse(ctx, ref.URL, depth-1, kinds, visited)
		if err != nil {
			// One failing branch never aborts its siblings.
			item.Reference += fmt.Sprintf(" [fetch failed: %v]", err)
			t.logger.Warn("related item fetch failed", "url", ref.URL, "error", err)
			continue
		}
		if child == nil {
			item.Reference += " [already visited]"
			continue
		}
		item.Content = child
	}

	return doc, nil
}
