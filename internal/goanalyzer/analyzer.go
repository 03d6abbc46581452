// Package goanalyzer is a reference Go-language backend for the langserver
// wire protocol, built on go-tree-sitter. It is the analyzer a holeweave
// client talks to through langserver.ProcessTransport when the target
// language is Go.
package goanalyzer

import (
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/holeweave/langserver"
)

var _ langserver.Facade = (*Analyzer)(nil)

// Analyzer implements the eight langserver commands directly against
// Go source, in-process. cmd/holeweave-goanalyzer wraps it with the wire
// framing; tests can call it directly without spawning a subprocess.
type Analyzer struct {
	lang  *sitter.Language
	cache *astCache
}

// New constructs an Analyzer with a parse cache whose entries expire
// after 5 minutes.
func New() *Analyzer {
	return &Analyzer{
		lang:  golang.GetLanguage(),
		cache: newASTCache(5 * time.Minute),
	}
}

func (a *Analyzer) parse(source string) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(a.lang)
	return a.cache.getOrParse(parser, []byte(source))
}

// AnyType returns Go's universal fallback type.
func (a *Analyzer) AnyType() string { return "any" }

// Close is a no-op: Analyzer owns no subprocess or socket of its own.
func (a *Analyzer) Close() error { return nil }

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}
