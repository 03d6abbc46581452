package goanalyzer

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

type byteRange struct {
	start, end uint32
}

// PrettyPrint replaces every annotation slot in one of categories with
// holeToken. Slots are found by a single recursive walk of the parse
// tree; edits are applied back to front so earlier byte offsets stay
// valid as later ones are spliced.
func (a *Analyzer) PrettyPrint(code, holeToken string, categories []string) (string, error) {
	src := []byte(code)
	parsed, err := a.parse(code)
	if err != nil {
		return "", err
	}

	enabled := make(map[string]bool, len(categories))
	for _, c := range categories {
		enabled[c] = true
	}

	var ranges []byteRange
	collectHoleSlots(parsed.RootNode(), enabled, &ranges)

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start > ranges[j].start })

	out := append([]byte(nil), src...)
	for _, r := range ranges {
		if r.start > r.end || int(r.end) > len(out) {
			continue
		}
		rebuilt := make([]byte, 0, len(out)-int(r.end-r.start)+len(holeToken))
		rebuilt = append(rebuilt, out[:r.start]...)
		rebuilt = append(rebuilt, []byte(holeToken)...)
		rebuilt = append(rebuilt, out[r.end:]...)
		out = rebuilt
	}
	return string(out), nil
}

func collectHoleSlots(n *sitter.Node, enabled map[string]bool, out *[]byteRange) {
	switch n.Type() {
	case "parameter_declaration", "variadic_parameter_declaration":
		if enabled["parameter"] {
			if t := n.ChildByFieldName("type"); t != nil {
				*out = append(*out, byteRange{t.StartByte(), t.EndByte()})
			}
		}
	case "function_declaration", "method_declaration":
		if enabled["return"] {
			if t := n.ChildByFieldName("result"); t != nil {
				*out = append(*out, byteRange{t.StartByte(), t.EndByte()})
			}
		}
	case "var_spec":
		if enabled["variable"] {
			if t := n.ChildByFieldName("type"); t != nil {
				*out = append(*out, byteRange{t.StartByte(), t.EndByte()})
			}
		}
	case "field_declaration":
		if enabled["field"] {
			if t := n.ChildByFieldName("type"); t != nil {
				*out = append(*out, byteRange{t.StartByte(), t.EndByte()})
			}
		}
	}

	for i := range int(n.ChildCount()) {
		collectHoleSlots(n.Child(i), enabled, out)
	}
}
