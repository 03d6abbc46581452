package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPEngine is a minimal concrete Engine adapter that POSTs a prompt to a
// configurable endpoint and expects back a JSON array of candidate code
// strings. It deliberately has no retry/backoff logic of its own beyond a
// request timeout: the pipeline's retryQueryUntilOK already supplies
// retries at a higher level, and the engine itself is an external
// collaborator this repo only needs one swappable example of.
type HTTPEngine struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPEngine builds an HTTPEngine against endpoint with a sane default
// client timeout.
func NewHTTPEngine(endpoint string) *HTTPEngine {
	return &HTTPEngine{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type httpRequestBody struct {
	Prompt   string `json:"prompt"`
	NumComps int    `json:"num_comps"`
	Fallback bool   `json:"fallback"`
}

func (e *HTTPEngine) Complete(ctx context.Context, q Query) ([]Candidate, error) {
	body, err := json.Marshal(httpRequestBody{
		Prompt:   q.Prompt,
		NumComps: q.NumComps,
		Fallback: q.Fallback,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion engine returned status %d", resp.StatusCode)
	}

	var texts []string
	if err := json.NewDecoder(resp.Body).Decode(&texts); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}

	candidates := make([]Candidate, len(texts))
	for i, t := range texts {
		candidates[i] = Candidate{Code: t}
	}
	return candidates, nil
}
