package engine

// CompNode is the per-node record used inside a CompLevel's node array.
type CompNode struct {
	// Name is copied from the source CodeBlockTree node.
	Name string

	// Code is the original code block, unmodified.
	Code string

	// Stubbed is Code pretty-printed with type holes, with nested blocks
	// first replaced by signature-preserving stubs when HyperParams.Stub is
	// set; it is the prompt base sent to the completion engine. Empty until
	// Prepare has run.
	Stubbed string

	// ChildrenIdxs indexes into the next deeper level's node array.
	ChildrenIdxs []int

	// Completed holds this node's candidate strings. Empty until the
	// level containing this node has been completed.
	Completed []string

	// Usages is a precomputed snippet showing how this block is used by
	// its parent. Empty for root-prefixed nodes or when usages are
	// disabled.
	Usages string
}

// CompLevel is an ordered list of CompNodes. Level 0 is the root level;
// deeper levels have larger indices.
type CompLevel struct {
	Nodes []CompNode
}
