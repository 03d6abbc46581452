package engine

import (
	"context"
	"errors"

	"github.com/oxhq/holeweave/completion"
	"github.com/oxhq/holeweave/internal/logx"
)

// maxQueryAttempts is the hard ceiling on a single prompt's attempts: one
// initial try plus five retries.
const maxQueryAttempts = 6

// ErrPromptSkipped is returned by retryQueryUntilOK when every attempt for
// a prompt was exhausted. It is not a hard failure: callers should drop
// the prompt's contribution and continue with the rest of the level.
var ErrPromptSkipped = errors.New("engine: prompt exhausted retries, skipping")

// retryQueryUntilOK calls eng.Complete up to maxQueryAttempts times. A
// rate-limit error counts as a used attempt and is logged along with how
// many partial candidates it carried, then retried; any other error is
// retried the same way. Exhausting every attempt yields ErrPromptSkipped
// rather than propagating the last error.
func retryQueryUntilOK(ctx context.Context, eng completion.Engine, q completion.Query, log *logx.Logger) ([]completion.Candidate, error) {
	var lastErr error
	for attempt := 1; attempt <= maxQueryAttempts; attempt++ {
		candidates, err := eng.Complete(ctx, q)
		if err == nil {
			return candidates, nil
		}
		lastErr = err

		var rateLimit *completion.RateLimitError
		if errors.As(err, &rateLimit) {
			log.Debugf("rate limited on attempt %d/%d, %d partial candidates", attempt, maxQueryAttempts, len(rateLimit.Partial))
			continue
		}
		log.Debugf("query attempt %d/%d failed: %v", attempt, maxQueryAttempts, err)
	}
	log.Debugf("exhausted all %d attempts, skipping prompt: %v", maxQueryAttempts, lastErr)
	return nil, ErrPromptSkipped
}
