package goanalyzer

import (
	"fmt"
	"strings"
)

// Usages extracts, from outerBlock, every line that mentions innerBlock's
// declared name, formatted as a comment-prefixed snippet. count is the
// number of matching lines found.
func (a *Analyzer) Usages(outerBlock, innerBlock string) (string, uint, error) {
	name := a.identifierFor(innerBlock)
	if name == "" {
		return "", 0, nil
	}

	var matches []string
	for _, line := range strings.Split(outerBlock, "\n") {
		if strings.Contains(line, name) && !strings.Contains(line, innerBlock) {
			matches = append(matches, strings.TrimSpace(line))
		}
	}
	if len(matches) == 0 {
		return "", 0, nil
	}

	var b strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&b, "// %s\n", m)
	}
	return b.String(), uint(len(matches)), nil
}

// identifierFor extracts innerBlock's declared name via the same parse
// used elsewhere, falling back to an empty string for blocks that don't
// look like a named declaration (e.g. a bare func literal).
func (a *Analyzer) identifierFor(innerBlock string) string {
	parsed, err := a.parse(innerBlock)
	if err != nil {
		return ""
	}
	root := parsed.RootNode()
	for i := range int(root.ChildCount()) {
		child := root.Child(i)
		if topLevelKinds[child.Type()] {
			return declName(child, []byte(innerBlock))
		}
	}
	return ""
}
