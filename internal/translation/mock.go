package translation

import (
	"context"
	"sync"
)

// MockTranslator for testing
type MockTranslator struct {
	Response *Response
	Error    error
	// Block, when set, holds Translate until it is closed.
	Block chan struct{}

	mu    sync.Mutex
	calls []string
}

func (m *MockTranslator) Translate(ctx context.Context, text string) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.Response, m.Error
}

// Calls returns the inputs Translate has received so far.
func (m *MockTranslator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ Translator = (*MockTranslator)(nil)
