package goanalyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/holeweave/tree"
)

var topLevelKinds = map[string]bool{
	"function_declaration": true,
	"method_declaration":   true,
	"type_declaration":     true,
	"var_declaration":      true,
	"const_declaration":    true,
}

// ToTree decomposes source into a CodeBlockTree: the root is the whole
// file, its children are each top-level declaration, and a declaration's
// own children are any function literals nested directly inside it.
func (a *Analyzer) ToTree(source string) (tree.CodeBlockTree, error) {
	src := []byte(source)
	parsed, err := a.parse(source)
	if err != nil {
		return tree.CodeBlockTree{}, err
	}

	root := parsed.RootNode()
	children := make([]tree.CodeBlockTree, 0, int(root.ChildCount()))
	for i := range int(root.ChildCount()) {
		child := root.Child(i)
		if !topLevelKinds[child.Type()] {
			continue
		}
		children = append(children, buildNode(child, src))
	}

	return tree.CodeBlockTree{
		Name:     tree.TopNodePrefix,
		Code:     source,
		Children: children,
	}, nil
}

func buildNode(n *sitter.Node, src []byte) tree.CodeBlockTree {
	name := declName(n, src)
	var children []tree.CodeBlockTree
	collectFuncLiterals(n, src, &children)
	return tree.CodeBlockTree{
		Name:     name,
		Code:     nodeText(n, src),
		Children: children,
	}
}

func declName(n *sitter.Node, src []byte) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return nodeText(name, src)
	}
	// type, var and const declarations carry their name on a spec child.
	for i := range int(n.NamedChildCount()) {
		if name := n.NamedChild(i).ChildByFieldName("name"); name != nil {
			return nodeText(name, src)
		}
	}
	return n.Type()
}

// collectFuncLiterals walks n looking for nested func literals, without
// descending into one it has already recorded.
func collectFuncLiterals(n *sitter.Node, src []byte, out *[]tree.CodeBlockTree) {
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if child.Type() == "func_literal" {
			*out = append(*out, tree.CodeBlockTree{
				Name: "funclit",
				Code: nodeText(child, src),
			})
			continue
		}
		collectFuncLiterals(child, src, out)
	}
}
