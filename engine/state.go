package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/oxhq/holeweave/cache"
	"github.com/oxhq/holeweave/completion"
	"github.com/oxhq/holeweave/hparams"
	"github.com/oxhq/holeweave/internal/logx"
	"github.com/oxhq/holeweave/langserver"
	"github.com/oxhq/holeweave/tree"
)

// New wraps a freshly parsed tree, before any Facade call has touched it.
// Its only valid transition is Prepare.
type New struct {
	tree tree.CodeBlockTree
}

// NewPipeline starts a completion run from a parsed CodeBlockTree.
func NewPipeline(t tree.CodeBlockTree) New {
	return New{tree: t}
}

// Prepared holds the flattened, stubbed level array, ready to be walked by
// TreeComplete. Its only valid transition is TreeComplete.
type Prepared struct {
	levels []CompLevel
	hp     hparams.HyperParams
	stats  *Stats
}

// Completed holds the fully woven level array after TreeComplete has run
// to the top. Its only operation is Disassemble.
type Completed struct {
	levels []CompLevel
	final  string
}

// Prepare flattens n's tree breadth-first into levels, computes each
// node's stubbed prompt base via facade, and records sibling usage
// snippets when hp.Usages is set. Root is level 0; deeper levels have
// larger indices.
func (n New) Prepare(facade langserver.Facade, hp hparams.HyperParams, stats *Stats) (Prepared, error) {
	levels := flatten(n.tree)

	categories := enabledCategories(hp)
	for li := range levels {
		level := &levels[li]
		for ni := range level.Nodes {
			node := &level.Nodes[ni]
			stats.AddNode()

			stubbed := node.Code
			if hp.Stub {
				s, err := facade.Stub(stubbed)
				if err != nil {
					return Prepared{}, fmt.Errorf("engine: stub %s: %w", node.Name, err)
				}
				stubbed = s
			}
			holed, err := facade.PrettyPrint(stubbed, langserver.HoleToken, categories)
			if err != nil {
				return Prepared{}, fmt.Errorf("engine: pretty-print %s: %w", node.Name, err)
			}
			node.Stubbed = holed
		}

		if !hp.Usages || li+1 >= len(levels) {
			continue
		}
		next := &levels[li+1]
		for ni := range level.Nodes {
			node := &level.Nodes[ni]
			for _, childIdx := range node.ChildrenIdxs {
				child := &next.Nodes[childIdx]
				if strings.HasPrefix(child.Name, tree.TopNodePrefix) {
					continue
				}
				snippet, count, err := facade.Usages(node.Code, child.Code)
				if err != nil {
					return Prepared{}, fmt.Errorf("engine: usages %s/%s: %w", node.Name, child.Name, err)
				}
				child.Usages = snippet
				stats.AddUsages(child.Name, int(count))
			}
		}
	}

	return Prepared{levels: levels, hp: hp, stats: stats}, nil
}

// flatten performs a breadth-first walk of root, producing one CompLevel
// per tree depth. ChildrenIdxs index into the next level's node array.
func flatten(root tree.CodeBlockTree) []CompLevel {
	levels := []CompLevel{}
	frontier := []tree.CodeBlockTree{root}

	for len(frontier) > 0 {
		nodes := make([]CompNode, 0, len(frontier))
		var next []tree.CodeBlockTree
		for _, orig := range frontier {
			start := len(next)
			childIdxs := make([]int, len(orig.Children))
			for i := range orig.Children {
				childIdxs[i] = start + i
			}
			nodes = append(nodes, CompNode{
				Name:         orig.Name,
				Code:         orig.Code,
				ChildrenIdxs: childIdxs,
			})
			next = append(next, orig.Children...)
		}
		levels = append(levels, CompLevel{Nodes: nodes})
		frontier = next
	}
	return levels
}

func enabledCategories(hp hparams.HyperParams) []string {
	all := []hparams.TypeCategory{
		hparams.CategoryParameter,
		hparams.CategoryReturn,
		hparams.CategoryVariable,
		hparams.CategoryField,
	}
	out := make([]string, 0, len(all))
	for _, cat := range all {
		if hp.HasCategory(cat) {
			out = append(out, string(cat))
		}
	}
	return out
}

// TreeComplete walks p's levels deepest-first. Each level's nodes are
// completed concurrently, one goroutine per node, with a WaitGroup
// barrier between levels so every child is fully completed before its
// parent starts; the just-finished level is then read as an immutable
// snapshot while the next one up runs.
func (p Prepared) TreeComplete(ctx context.Context, eng completion.Engine, qcache cache.Cache, facade langserver.Facade, log *logx.Logger) (Completed, error) {
	levels := p.levels

	for li := len(levels) - 1; li >= 0; li-- {
		level := &levels[li]
		var childLevel *CompLevel
		if li+1 < len(levels) {
			childLevel = &levels[li+1]
		}

		isRoot := li == 0

		var wg sync.WaitGroup
		errs := make([]error, len(level.Nodes))
		for ni := range level.Nodes {
			wg.Add(1)
			go func(ni int) {
				defer wg.Done()
				weaveLevel := uint(1)
				if isRoot {
					weaveLevel = 0
				}
				errs[ni] = p.completeNode(ctx, level, ni, childLevel, weaveLevel, isRoot, eng, qcache, facade, log)
			}(ni)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return Completed{}, err
			}
		}
	}

	final := ""
	if len(levels) > 0 && len(levels[0].Nodes) > 0 {
		candidates := levels[0].Nodes[0].Completed
		if len(candidates) > 0 {
			final = candidates[0]
		} else {
			final = levels[0].Nodes[0].Code
		}
	}
	return Completed{levels: levels, final: final}, nil
}

// completeNode implements one node's completion step: merge each child's
// already-completed candidates into this node's original code, using a
// per-child share of an effective stop-at budget as the merge's upper
// bound, then — unless this is the root node, which returns its merged
// prompts untouched — stub and hole each surviving variant, query the
// completion engine (through the cache) for the holes, and weave the
// query results back over the variant they came from.
func (p Prepared) completeNode(ctx context.Context, level *CompLevel, ni int, childLevel *CompLevel, weaveLevel uint, isRoot bool, eng completion.Engine, qcache cache.Cache, facade langserver.Facade, log *logx.Logger) error {
	node := &level.Nodes[ni]

	variants := []string{node.Code}
	if childLevel != nil {
		rng := rand.New(rand.NewPCG(uint64(ni)+1, uint64(len(level.Nodes))+1))

		numChildren := len(node.ChildrenIdxs)
		stopAtEffective := p.hp.StopAt
		if numChildren > stopAtEffective {
			stopAtEffective = numChildren
		}
		shares := DistributeStopAt(stopAtEffective, numChildren)

		for ci, childIdx := range node.ChildrenIdxs {
			child := &childLevel.Nodes[childIdx]
			if len(child.Completed) == 0 {
				continue
			}
			merged, err := MergeChild(facade, variants, child.Completed, weaveLevel, shares[ci], rng)
			if err != nil {
				return fmt.Errorf("engine: merge child %s into %s: %w", child.Name, node.Name, err)
			}
			variants = merged
		}
	}
	if p.hp.StopAt > 0 && len(variants) > p.hp.StopAt {
		variants = variants[:p.hp.StopAt]
	}

	if isRoot {
		node.Completed = variants
		p.stats.AddComps(node.Name, len(variants))
		return nil
	}

	categories := enabledCategories(p.hp)
	woven := make([]string, 0, len(variants))
	for vi, variant := range variants {
		// On the deepest level the only variant is the node's own
		// original code, already stubbed and holed by Prepare; every
		// other level recomputes, since merging may have changed the
		// text Prepare saw.
		holed := node.Stubbed
		if childLevel != nil || vi > 0 {
			prompt := variant
			if p.hp.Stub {
				stubbed, err := facade.Stub(prompt)
				if err != nil {
					return fmt.Errorf("engine: stub %s: %w", node.Name, err)
				}
				prompt = stubbed
			}
			h, err := facade.PrettyPrint(prompt, langserver.HoleToken, categories)
			if err != nil {
				return fmt.Errorf("engine: pretty-print %s: %w", node.Name, err)
			}
			holed = h
		}

		key := cache.Key{QueryText: holed, NumComps: p.hp.NumComps, Retries: p.hp.Retries, StopAt: p.hp.StopAt}
		results, ok, err := qcache.Retrieve(key)
		if err != nil || !ok {
			candidates, qerr := retryQueryUntilOK(ctx, eng, completion.Query{
				Prompt:    holed,
				NumComps:  p.hp.NumComps,
				Retries:   p.hp.Retries,
				Fallback:  p.hp.Fallback,
				Whitelist: []string{string(langserver.ProblemChangedComments)},
			}, log)
			if qerr != nil {
				log.Debugf("node %s: %v", node.Name, qerr)
				continue
			}
			results = results[:0]
			for _, c := range candidates {
				results = append(results, c.Code)
			}
			if err := qcache.Store(key, results); err != nil {
				log.Debugf("cache store failed for node %s: %v", node.Name, err)
			}
		}

		for _, r := range results {
			// Reintegrating a returned candidate always weaves at level 0;
			// weaveLevel here is reserved for the child-merge step above.
			// A failed weave keeps the raw candidate text.
			w, err := facade.Weave(variant, r, 0)
			if err != nil {
				log.Debugf("node %s: weave failed, keeping raw candidate: %v", node.Name, err)
				w = r
			}
			woven = append(woven, w)
		}
	}

	if len(woven) == 0 {
		woven = []string{node.Code}
	}
	p.stats.AddComps(node.Name, len(woven))
	node.Completed = woven
	return nil
}

// Disassemble returns the fully woven top-level source text.
func (c Completed) Disassemble() string {
	return c.final
}
