package goanalyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/holeweave/langserver"
)

// ObjectInfo returns structural info for every top-level declaration in
// code, keyed by its declared name.
func (a *Analyzer) ObjectInfo(code string) (langserver.ObjectInfoMap, error) {
	src := []byte(code)
	parsed, err := a.parse(code)
	if err != nil {
		return nil, err
	}

	out := langserver.ObjectInfoMap{}
	root := parsed.RootNode()
	for i := range int(root.ChildCount()) {
		child := root.Child(i)
		if !topLevelKinds[child.Type()] {
			continue
		}
		name := declName(child, src)
		out[name] = objectInfoFor(child, src)
	}
	return out, nil
}

func objectInfoFor(n *sitter.Node, src []byte) langserver.ObjectInfo {
	switch n.Type() {
	case "function_declaration", "method_declaration":
		sig := nodeText(n, src)
		if body := n.ChildByFieldName("body"); body != nil {
			sig = string(src[n.StartByte():body.StartByte()])
		}
		return langserver.ObjectInfo{Kind: "func", Signature: sig}
	case "type_declaration":
		return langserver.ObjectInfo{Kind: "type", Members: structFieldNames(n, src)}
	case "var_declaration":
		return langserver.ObjectInfo{Kind: "var"}
	case "const_declaration":
		return langserver.ObjectInfo{Kind: "const"}
	default:
		return langserver.ObjectInfo{Kind: n.Type()}
	}
}

func structFieldNames(n *sitter.Node, src []byte) []string {
	var members []string
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "field_declaration" {
			if name := n.ChildByFieldName("name"); name != nil {
				members = append(members, nodeText(name, src))
			}
		}
		for i := range int(n.ChildCount()) {
			walk(n.Child(i))
		}
	}
	walk(n)
	return members
}
