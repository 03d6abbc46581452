package goanalyzer

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Weave transplants type annotations from nettle into original. Slots are
// matched by a structural key, not by byte position: a parameter by its
// enclosing function or method name plus its own name, a return type by
// its function or method name, and a variable or struct field by its own
// name alone (so same-named variables or fields in different scopes share
// one key, and the last one seen in nettle wins). This tolerates nettle's
// body text having
// diverged from original's (e.g. because nettle was produced from a
// stubbed prompt). Unmatched slots in original are left as-is; unmatched
// slots in nettle are ignored. level is accepted for interface
// conformance but unused: the keying strategy already works the same way
// at the tree root as anywhere else.
func (a *Analyzer) Weave(original, nettle string, level uint) (string, error) {
	nettleTree, err := a.parse(nettle)
	if err != nil {
		return "", err
	}
	nettleSrc := []byte(nettle)
	replacements := map[string]string{}
	collectAnnotations(nettleTree.RootNode(), nettleSrc, "", replacements)

	originalTree, err := a.parse(original)
	if err != nil {
		return "", err
	}
	originalSrc := []byte(original)

	var edits []byteRange
	var values []string
	collectWeaveTargets(originalTree.RootNode(), originalSrc, "", replacements, &edits, &values)

	// Pair edits with their replacement values before sorting, so the two
	// slices can't drift out of alignment.
	type pair struct {
		r byteRange
		v string
	}
	pairs := make([]pair, len(edits))
	for i := range edits {
		pairs[i] = pair{edits[i], values[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].r.start > pairs[j].r.start })

	out := append([]byte(nil), originalSrc...)
	for _, p := range pairs {
		rebuilt := make([]byte, 0, len(out))
		rebuilt = append(rebuilt, out[:p.r.start]...)
		rebuilt = append(rebuilt, []byte(p.v)...)
		rebuilt = append(rebuilt, out[p.r.end:]...)
		out = rebuilt
	}
	return string(out), nil
}

// collectAnnotations records, for every annotation slot in n, the mapping
// from a structural key to that slot's current type text.
func collectAnnotations(n *sitter.Node, src []byte, scope string, out map[string]string) {
	switch n.Type() {
	case "function_declaration", "method_declaration":
		scope = declName(n, src)
		if t := n.ChildByFieldName("result"); t != nil {
			out["return:"+scope] = nodeText(t, src)
		}
	case "parameter_declaration", "variadic_parameter_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			if t := n.ChildByFieldName("type"); t != nil {
				out["param:"+scope+":"+nodeText(name, src)] = nodeText(t, src)
			}
		}
	case "var_spec":
		if name := n.ChildByFieldName("name"); name != nil {
			if t := n.ChildByFieldName("type"); t != nil {
				out["var:"+nodeText(name, src)] = nodeText(t, src)
			}
		}
	case "field_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			if t := n.ChildByFieldName("type"); t != nil {
				out["field:"+nodeText(name, src)] = nodeText(t, src)
			}
		}
	}

	for i := range int(n.ChildCount()) {
		collectAnnotations(n.Child(i), src, scope, out)
	}
}

// collectWeaveTargets mirrors collectAnnotations' keying over original,
// emitting an edit (and its replacement value) for every slot with a
// matching entry in replacements.
func collectWeaveTargets(n *sitter.Node, src []byte, scope string, replacements map[string]string, edits *[]byteRange, values *[]string) {
	switch n.Type() {
	case "function_declaration", "method_declaration":
		scope = declName(n, src)
		if t := n.ChildByFieldName("result"); t != nil {
			if v, ok := replacements["return:"+scope]; ok {
				*edits = append(*edits, byteRange{t.StartByte(), t.EndByte()})
				*values = append(*values, v)
			}
		}
	case "parameter_declaration", "variadic_parameter_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			if t := n.ChildByFieldName("type"); t != nil {
				if v, ok := replacements["param:"+scope+":"+nodeText(name, src)]; ok {
					*edits = append(*edits, byteRange{t.StartByte(), t.EndByte()})
					*values = append(*values, v)
				}
			}
		}
	case "var_spec":
		if name := n.ChildByFieldName("name"); name != nil {
			if t := n.ChildByFieldName("type"); t != nil {
				if v, ok := replacements["var:"+nodeText(name, src)]; ok {
					*edits = append(*edits, byteRange{t.StartByte(), t.EndByte()})
					*values = append(*values, v)
				}
			}
		}
	case "field_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			if t := n.ChildByFieldName("type"); t != nil {
				if v, ok := replacements["field:"+nodeText(name, src)]; ok {
					*edits = append(*edits, byteRange{t.StartByte(), t.EndByte()})
					*values = append(*values, v)
				}
			}
		}
	}

	for i := range int(n.ChildCount()) {
		collectWeaveTargets(n.Child(i), src, scope, replacements, edits, values)
	}
}
