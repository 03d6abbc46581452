// Package completion defines the external completion-engine collaborator:
// something that turns a prompt into at most N candidate completions, with
// its own retries and heuristic checks. It is treated as an interface
// only; this package also ships one minimal concrete adapter so the repo
// is runnable end-to-end.
package completion

import (
	"context"
	"fmt"
)

// Query is one request for candidate completions of a prompt.
type Query struct {
	Prompt   string
	NumComps int
	Retries  int
	Fallback bool

	// Whitelist names CheckProblem tags the engine should tolerate rather
	// than discard a candidate for (comment-only diffs are tolerated
	// because weaving happens next).
	Whitelist []string
}

// Candidate is one proposed completion for a Query.
type Candidate struct {
	Code string
}

// RateLimitError signals the engine was throttled. Partial holds any
// candidates the engine had already produced before being cut off; the
// pipeline's retry policy logs this count without treating it as data loss.
type RateLimitError struct {
	Partial []Candidate
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("completion engine rate-limited after %d partial candidates", len(e.Partial))
}

// Engine turns a Query into candidates. Implementations own their own
// internal retry/fallback behavior, independent of the pipeline's
// retryQueryUntilOK wrapper.
type Engine interface {
	Complete(ctx context.Context, q Query) ([]Candidate, error)
}
