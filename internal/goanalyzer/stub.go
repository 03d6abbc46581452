package goanalyzer

import "sort"

const stubBody = "{\n\tpanic(\"unimplemented\")\n}"

// Stub replaces the body of every first-level nested function or method
// declaration with a signature-preserving stub, leaving parameter lists,
// return types, and receivers untouched.
func (a *Analyzer) Stub(code string) (string, error) {
	src := []byte(code)
	parsed, err := a.parse(code)
	if err != nil {
		return "", err
	}

	var ranges []byteRange
	root := parsed.RootNode()
	for i := range int(root.ChildCount()) {
		child := root.Child(i)
		if child.Type() != "function_declaration" && child.Type() != "method_declaration" {
			continue
		}
		body := child.ChildByFieldName("body")
		if body == nil {
			continue
		}
		ranges = append(ranges, byteRange{body.StartByte(), body.EndByte()})
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start > ranges[j].start })

	out := append([]byte(nil), src...)
	for _, r := range ranges {
		rebuilt := make([]byte, 0, len(out))
		rebuilt = append(rebuilt, out[:r.start]...)
		rebuilt = append(rebuilt, []byte(stubBody)...)
		rebuilt = append(rebuilt, out[r.end:]...)
		out = rebuilt
	}
	return string(out), nil
}
