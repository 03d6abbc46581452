package goanalyzer

import (
	"strings"

	"github.com/oxhq/holeweave/langserver"
)

// CheckComplete reports whether completed still contains unresolved hole
// tokens (ProblemNotComplete), or has altered code outside the annotation
// slots (ProblemChangedCode) relative to original. This implementation
// never reports ProblemChangedComments: comments are compared like any
// other code, so a comment-only difference is reported as
// ProblemChangedCode. The score is the length of the common prefix of
// original and completed, both with every annotation slot blanked, as a
// fraction of the blanked original's length, scaled to [0, 65535].
func (a *Analyzer) CheckComplete(original, completed string) ([]langserver.CheckProblem, uint16, error) {
	var problems []langserver.CheckProblem

	if strings.Contains(completed, langserver.HoleToken) {
		problems = append(problems, langserver.ProblemNotComplete)
	}

	allCategories := []string{"parameter", "return", "variable", "field"}
	strippedOriginal, err := a.PrettyPrint(original, "", allCategories)
	if err != nil {
		return nil, 0, err
	}
	strippedCompleted, err := a.PrettyPrint(completed, "", allCategories)
	if err != nil {
		return nil, 0, err
	}
	if strippedOriginal != strippedCompleted {
		problems = append(problems, langserver.ProblemChangedCode)
	}

	score := uint16(0)
	if len(strippedOriginal) > 0 {
		common := commonPrefixLen(strippedOriginal, strippedCompleted)
		score = uint16(common * 65535 / len(strippedOriginal))
	}

	return problems, score, nil
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
