package langserver

import "github.com/oxhq/holeweave/tree"

// Facade abstracts an out-of-process, language-specific analyzer. A single
// Facade owns one spawned process and serializes concurrent callers
// internally, so it is safe to share across goroutines.
type Facade interface {
	// PrettyPrint rewrites code so that every annotation slot in the given
	// categories is either present or replaced by holeToken.
	PrettyPrint(code, holeToken string, categories []string) (string, error)

	// ToTree produces the hierarchical decomposition of code.
	ToTree(code string) (tree.CodeBlockTree, error)

	// Stub replaces the bodies of first-level nested constructs with
	// stubs that preserve their signatures.
	Stub(code string) (string, error)

	// CheckComplete compares completed against original, reporting any
	// CheckProblems plus an integer score in [0, 65535].
	CheckComplete(original, completed string) ([]CheckProblem, uint16, error)

	// Weave transplants type annotations from nettle into original.
	// level indicates where nettle sits relative to original: 0 at the
	// tree root, 1 everywhere else. Weave must be safe to call repeatedly
	// on already-woven code.
	Weave(original, nettle string, level uint) (string, error)

	// Usages extracts the call/reference sites of innerBlock inside
	// outerBlock, formatted as a comment-prefixed snippet.
	Usages(outerBlock, innerBlock string) (snippet string, count uint, err error)

	// ObjectInfo returns structural info for identifiers in code.
	ObjectInfo(code string) (ObjectInfoMap, error)

	// TypeCheck reports whether code currently type-checks.
	TypeCheck(code string) (bool, error)

	// AnyType returns the literal spelling of this language's "any" type,
	// used when HyperParams.Fallback permits giving up on precision.
	AnyType() string

	// Close releases the underlying process and transport.
	Close() error
}
