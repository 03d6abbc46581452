package engine

import "math"

// CountAllPossibleCombs returns promptsLen raised to the power of
// childCompletedLen, saturating to math.MaxInt64 instead of overflowing.
//
// TODO: this computes growth as promptsLen^childCompletedLen (every prompt
// paired with a child candidate, once per prompt). A more literal reading
// of "multiply child.completed.len() by itself curr_prompts times" would
// swap base and exponent; kept as exponentiation either way per the
// saturating-combinatorics contract, flagged here for anyone revisiting
// the merge-strategy threshold.
func CountAllPossibleCombs(promptsLen, childCompletedLen int) uint64 {
	if promptsLen <= 0 || childCompletedLen < 0 {
		return 0
	}
	if childCompletedLen == 0 {
		return 1
	}

	var result uint64 = 1
	base := uint64(promptsLen)
	for range childCompletedLen {
		next := result * base
		if base != 0 && next/base != result {
			return math.MaxInt64
		}
		result = next
	}
	return result
}
