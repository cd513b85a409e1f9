package broadcast

import (
	"fmt"
	"net/http"
	"sync"
)

// Sink is a one-way push channel to a single connected viewer. Send reports a
// failed write as an error so the broadcaster can prune the subscriber; the
// transport layer, not the registry, owns the underlying connection.
type Sink interface {
	Send(data []byte) error
}

// SSESink frames events for a long-lived event-stream response. Each payload
// is written as "data: <JSON>\n\n" and flushed immediately.
//
// Send and Comment may be called from different goroutines (broadcast fan-out
// vs. the handler's keepalive ticker), so writes are serialized by a mutex.
type SSESink struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSESink wraps a response writer. It returns an error if the writer does
// not support flushing, since unflushed events would sit in a buffer until the
// connection closes.
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	return &SSESink{w: w, flusher: flusher}, nil
}

// Send writes one event frame and flushes it to the client.
func (s *SSESink) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("event stream write failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// Comment writes an SSE comment frame. Clients ignore it; it exists so idle
// connections fail fast when the viewer is gone.
func (s *SSESink) Comment(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return fmt.Errorf("event stream write failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}
