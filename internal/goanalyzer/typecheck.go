package goanalyzer

// TypeCheck reports whether code currently parses cleanly, i.e. contains
// no tree-sitter ERROR or MISSING nodes. This is a syntactic check, not a
// semantic one: full Go type-checking needs package-level import
// resolution that a single code-block snippet can't provide.
func (a *Analyzer) TypeCheck(code string) (bool, error) {
	parsed, err := a.parse(code)
	if err != nil {
		return false, err
	}
	return !parsed.RootNode().HasError(), nil
}
