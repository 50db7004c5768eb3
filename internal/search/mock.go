package search

import "context"

// MockClient is an offline provider for development and tests. It
// performs no network calls and returns the configured results for
// every query.
type MockClient struct {
	Results []Result
}

func (m *MockClient) Search(_ context.Context, _ string, numResults int) ([]Result, error) {
	if numResults <= 0 || numResults > len(m.Results) {
		numResults = len(m.Results)
	}
	out := make([]Result, numResults)
	copy(out, m.Results[:numResults])
	return out, nil
}
