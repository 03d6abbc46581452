package engine

import (
	"math"
	"math/rand/v2"

	"github.com/oxhq/holeweave/langserver"
)

// DefaultMergeUpper is the combination-count threshold below which a merge
// step enumerates every (variant, candidate) pair exhaustively, and above
// which it falls back to biased random sampling.
const DefaultMergeUpper = 40

// mergePoissonLambda is the mean of the Poisson distribution from which a
// sampled merge step draws the index of the next pair to take from the
// remaining (variant, candidate) list.
const mergePoissonLambda = 0.7

// MergeChild folds one child's candidate list into the parent's current
// variant set. When the predicted combination count is at most upper, it
// weaves every (variant, candidate) pairing exhaustively, deduplicating the
// results. Otherwise it enumerates up to upper*5 pairs in insertion order
// and draws from them via sampledMerge until upper results have been woven.
//
// The combination count that gates exhaustive-vs-sampled is computed by
// CountAllPossibleCombs(len(variants), len(childCompleted)), which grows
// exponentially; the actual number of pairs available is the much smaller
// product len(variants)*len(childCompleted). A node can therefore fall
// into the sampled branch long before it has enough real pairs to need it.
func MergeChild(facade langserver.Facade, variants []string, childCompleted []string, level uint, upper int, rng *rand.Rand) ([]string, error) {
	if len(variants) == 0 || len(childCompleted) == 0 {
		return variants, nil
	}
	if upper <= 0 {
		upper = DefaultMergeUpper
	}

	combs := CountAllPossibleCombs(len(variants), len(childCompleted))
	if combs <= uint64(upper) {
		pairs := allPairs(len(variants), len(childCompleted))
		seen := make(map[string]struct{}, len(pairs))
		result := make([]string, 0, len(pairs))
		for _, p := range pairs {
			woven, err := facade.Weave(variants[p[0]], childCompleted[p[1]], level)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[woven]; ok {
				continue
			}
			seen[woven] = struct{}{}
			result = append(result, woven)
		}
		return result, nil
	}

	return sampledMerge(facade, variants, childCompleted, level, upper, rng)
}

func allPairs(numVariants, numCandidates int) [][2]int {
	pairs := make([][2]int, 0, numVariants*numCandidates)
	for i := range numVariants {
		for j := range numCandidates {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// sampledMerge enumerates up to upper*5 (variant, candidate) pairs in
// insertion order, then repeatedly draws a Poisson(lambda) index into the
// remaining list (clamped to the last valid index), removes that pair, and
// weaves it, until upper results have been produced or the list is
// exhausted.
func sampledMerge(facade langserver.Facade, variants, childCompleted []string, level uint, upper int, rng *rand.Rand) ([]string, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	pairs := allPairs(len(variants), len(childCompleted))
	if limit := upper * 5; len(pairs) > limit {
		pairs = pairs[:limit]
	}

	result := make([]string, 0, upper)
	for len(pairs) > 0 && len(result) < upper {
		idx := poissonVariate(mergePoissonLambda, rng)
		if idx >= len(pairs) {
			idx = len(pairs) - 1
		}
		p := pairs[idx]
		pairs = append(pairs[:idx], pairs[idx+1:]...)

		woven, err := facade.Weave(variants[p[0]], childCompleted[p[1]], level)
		if err != nil {
			return nil, err
		}
		result = append(result, woven)
	}
	return result, nil
}

// poissonVariate draws from a Poisson(lambda) distribution using Knuth's
// product-of-uniforms algorithm.
func poissonVariate(lambda float64, rng *rand.Rand) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= rng.Float64()
		if p <= l {
			return k - 1
		}
	}
}
