package engine

import (
	"context"
	"testing"

	"github.com/oxhq/holeweave/cache"
	"github.com/oxhq/holeweave/completion"
	"github.com/oxhq/holeweave/hparams"
	"github.com/oxhq/holeweave/internal/logx"
	"github.com/oxhq/holeweave/langserver"
	"github.com/oxhq/holeweave/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identityFacade struct{}

func (identityFacade) PrettyPrint(code, holeToken string, categories []string) (string, error) {
	return code, nil
}
func (identityFacade) ToTree(code string) (tree.CodeBlockTree, error) {
	return tree.CodeBlockTree{Name: "topnode", Code: code}, nil
}
func (identityFacade) Stub(code string) (string, error) { return code, nil }
func (identityFacade) CheckComplete(original, completed string) ([]langserver.CheckProblem, uint16, error) {
	return nil, 65535, nil
}
func (identityFacade) Weave(original, nettle string, level uint) (string, error) {
	return original + "/" + nettle, nil
}
func (identityFacade) Usages(outerBlock, innerBlock string) (string, uint, error) {
	return "used once", 1, nil
}
func (identityFacade) ObjectInfo(code string) (langserver.ObjectInfoMap, error) {
	return langserver.ObjectInfoMap{}, nil
}
func (identityFacade) TypeCheck(code string) (bool, error) { return true, nil }
func (identityFacade) AnyType() string                     { return "any" }
func (identityFacade) Close() error                        { return nil }

type constEngine struct{ calls int }

func (e *constEngine) Complete(ctx context.Context, q completion.Query) ([]completion.Candidate, error) {
	e.calls++
	return []completion.Candidate{{Code: "FILLED"}}, nil
}

func TestPrepareFlattensBreadthFirst(t *testing.T) {
	root := tree.CodeBlockTree{
		Name: "topnode",
		Code: "rootCode",
		Children: []tree.CodeBlockTree{
			{Name: "leaf", Code: "leafCode"},
		},
	}

	stats := NewStats()
	prepared, err := NewPipeline(root).Prepare(identityFacade{}, hparams.Default(), stats)
	require.NoError(t, err)

	require.Len(t, prepared.levels, 2)
	assert.Equal(t, "rootCode", prepared.levels[0].Nodes[0].Stubbed)
	assert.Equal(t, "used once", prepared.levels[1].Nodes[0].Usages)

	numNodes, usages, _ := stats.Snapshot()
	assert.Equal(t, 2, numNodes)
	assert.Equal(t, 1, usages["leaf"])
}

func TestTreeCompleteWeavesChildIntoParent(t *testing.T) {
	root := tree.CodeBlockTree{
		Name: "topnode",
		Code: "rootCode",
		Children: []tree.CodeBlockTree{
			{Name: "leaf", Code: "leafCode"},
		},
	}

	hp := hparams.Default()
	stats := NewStats()
	prepared, err := NewPipeline(root).Prepare(identityFacade{}, hp, stats)
	require.NoError(t, err)

	eng := &constEngine{}
	qcache := cache.NewMemCache()
	completed, err := prepared.TreeComplete(context.Background(), eng, qcache, identityFacade{}, logx.New(false, nil))
	require.NoError(t, err)

	final := completed.Disassemble()
	assert.Contains(t, final, "rootCode")
	assert.Contains(t, final, "leafCode")
	assert.Contains(t, final, "FILLED")
	assert.Greater(t, eng.calls, 0)
}

func TestTreeCompleteSingleNodeNoChildren(t *testing.T) {
	root := tree.CodeBlockTree{Name: "topnode", Code: "justRoot"}

	stats := NewStats()
	prepared, err := NewPipeline(root).Prepare(identityFacade{}, hparams.Default(), stats)
	require.NoError(t, err)

	eng := &constEngine{}
	completed, err := prepared.TreeComplete(context.Background(), eng, cache.NewMemCache(), identityFacade{}, logx.New(false, nil))
	require.NoError(t, err)
	// The root level never calls the completion engine: it returns its
	// merged prompts as-is.
	assert.Equal(t, "justRoot", completed.Disassemble())
	assert.Equal(t, 0, eng.calls)
}
