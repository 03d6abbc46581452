package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/oxhq/holeweave/completion"
	"github.com/oxhq/holeweave/internal/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	attempts int
	errs     []error
	result   []completion.Candidate
}

func (s *stubEngine) Complete(ctx context.Context, q completion.Query) ([]completion.Candidate, error) {
	s.attempts++
	if s.attempts <= len(s.errs) {
		return nil, s.errs[s.attempts-1]
	}
	return s.result, nil
}

func TestRetryQueryUntilOKSucceedsFirstTry(t *testing.T) {
	eng := &stubEngine{result: []completion.Candidate{{Code: "ok"}}}
	got, err := retryQueryUntilOK(context.Background(), eng, completion.Query{}, logx.New(false, nil))
	require.NoError(t, err)
	assert.Equal(t, eng.result, got)
	assert.Equal(t, 1, eng.attempts)
}

func TestRetryQueryUntilOKRetriesRateLimit(t *testing.T) {
	eng := &stubEngine{
		errs:   []error{&completion.RateLimitError{Partial: []completion.Candidate{{Code: "p"}}}, &completion.RateLimitError{}},
		result: []completion.Candidate{{Code: "ok"}},
	}
	got, err := retryQueryUntilOK(context.Background(), eng, completion.Query{}, logx.New(false, nil))
	require.NoError(t, err)
	assert.Equal(t, eng.result, got)
	assert.Equal(t, 3, eng.attempts)
}

func TestRetryQueryUntilOKExhaustsToSkip(t *testing.T) {
	persistent := errors.New("boom")
	eng := &stubEngine{errs: []error{persistent, persistent, persistent, persistent, persistent, persistent}}
	got, err := retryQueryUntilOK(context.Background(), eng, completion.Query{}, logx.New(false, nil))
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrPromptSkipped)
	assert.Equal(t, maxQueryAttempts, eng.attempts)
}
