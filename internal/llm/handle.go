package llm

import "sync"

// Handle is a shared, swappable reference to the judgment-service client.
// The orchestrator's execution context owns one Handle; stages read the
// current client through it and never reach into ambient state. When the
// credential changes, Reconfigure swaps the client atomically so pipeline
// instances already holding the old client finish with it while new runs
// pick up the replacement.
type Handle struct {
	mu     sync.RWMutex
	client Client
}

// NewHandle wraps a client in a handle.
func NewHandle(client Client) *Handle {
	return &Handle{client: client}
}

// Client returns the current client.
func (h *Handle) Client() Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.client
}

// Reconfigure swaps in a new client and returns the previous one so the
// caller can close it once in-flight runs have drained.
func (h *Handle) Reconfigure(client Client) Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.client
	h.client = client
	return old
}
