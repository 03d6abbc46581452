// Package hparams carries the frozen configuration knobs that flow through
// the completion pipeline. Values are set once at construction and never
// mutated afterward, so a HyperParams can be shared across goroutines
// without synchronization.
package hparams

// TypeCategory tags a class of annotation slot a HyperParams run should
// (or should not) fill in.
type TypeCategory string

const (
	// CategoryParameter covers function/method parameter annotations.
	CategoryParameter TypeCategory = "parameter"
	// CategoryReturn covers function/method return annotations.
	CategoryReturn TypeCategory = "return"
	// CategoryVariable covers local and global variable annotations.
	CategoryVariable TypeCategory = "variable"
	// CategoryField covers struct/class field annotations.
	CategoryField TypeCategory = "field"
)

// HyperParams is the immutable configuration threaded through
// CompletionLevels, from construction through disassembly.
type HyperParams struct {
	// Retries is the retry count passed to the completion engine with each
	// query, and is part of the cache key. retryQueryUntilOK does not read
	// it: its own attempt ceiling is fixed at six.
	Retries int

	// NumComps is the number of candidates requested per completion query.
	NumComps int

	// Fallback allows the completion engine to fall back to an "any" type
	// when it cannot produce a confident annotation.
	Fallback bool

	// Usages enables computation of sibling usage snippets during prepare.
	Usages bool

	// Stub enables stubbing of nested blocks in every prompt before it is
	// holed, at every level, shrinking nested bodies to signatures only.
	Stub bool

	// StopAt is the per-node upper bound on candidates retained after
	// child-merging, before the completion query is issued.
	StopAt int

	// Types is the set of annotation categories this run should fill in.
	Types map[TypeCategory]bool
}

// HasCategory reports whether cat is enabled for this run. A nil or empty
// Types set means no categories are selected.
func (h HyperParams) HasCategory(cat TypeCategory) bool {
	return h.Types[cat]
}

// Default returns a conservative HyperParams: a handful of retries, a
// single requested candidate per query, and every annotation category
// enabled.
func Default() HyperParams {
	return HyperParams{
		Retries:  5,
		NumComps: 1,
		Fallback: true,
		Usages:   true,
		Stub:     true,
		StopAt:   4,
		Types: map[TypeCategory]bool{
			CategoryParameter: true,
			CategoryReturn:    true,
			CategoryVariable:  true,
			CategoryField:     true,
		},
	}
}
