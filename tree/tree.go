// Package tree defines the hierarchical decomposition of a source file into
// nested code blocks, as produced by a langserver.Facade and consumed by
// the engine package's level builder.
package tree

// TopNodePrefix marks a synthetic node name as a tree root: usage
// extraction is suppressed for any node whose name carries this prefix.
const TopNodePrefix = "topnode"

// CodeBlockTree is a node in the hierarchical decomposition of a source
// file. The tree is finite and acyclic; a Facade may truncate depth,
// silently discarding children beyond its configured limit.
type CodeBlockTree struct {
	// Name is a synthetic identifier for this block. Names beginning with
	// TopNodePrefix designate root-level nodes.
	Name string

	// Code is the original source text of this block.
	Code string

	// Children is the ordered list of nested blocks.
	Children []CodeBlockTree
}

// IsTopNode reports whether n is a root-level sentinel node, i.e. usage
// extraction should be suppressed for it.
func (n CodeBlockTree) IsTopNode() bool {
	return len(n.Name) >= len(TopNodePrefix) && n.Name[:len(TopNodePrefix)] == TopNodePrefix
}

// Depth returns the number of levels below n, i.e. 0 for a leaf.
func (n CodeBlockTree) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Truncate returns a copy of n with any descendant deeper than limit
// levels below n discarded. Truncate(0) keeps n itself but drops all
// children.
func (n CodeBlockTree) Truncate(limit int) CodeBlockTree {
	if limit <= 0 {
		return CodeBlockTree{Name: n.Name, Code: n.Code}
	}
	children := make([]CodeBlockTree, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.Truncate(limit - 1)
	}
	return CodeBlockTree{Name: n.Name, Code: n.Code, Children: children}
}
