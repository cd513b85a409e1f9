package broadcast

import (
	"encoding/json"
	"log/slog"

	"github.com/getSono/OpenPOS-sub000/internal/metrics"
)

// Broadcaster fans state snapshots out to every sink in its registry.
// Publish is invoked synchronously from inside each store's mutation path, so
// subscribers observe broadcasts in mutation order.
type Broadcaster struct {
	stream   string
	registry *Registry
}

// NewBroadcaster creates a broadcaster for one stream. The stream name labels
// log lines and metrics only.
func NewBroadcaster(stream string, registry *Registry) *Broadcaster {
	return &Broadcaster{stream: stream, registry: registry}
}

// Registry returns the subscriber registry this broadcaster fans out to.
func (b *Broadcaster) Registry() *Registry {
	return b.registry
}

// Publish serializes state once and writes it to every registered sink.
// Sinks whose write fails are collected during the pass and removed
// afterwards; their failure is never surfaced to the mutation caller.
// A serialization failure aborts only this broadcast pass.
func (b *Broadcaster) Publish(state any) {
	data, err := json.Marshal(state)
	if err != nil {
		slog.Error("Failed to marshal broadcast state", "stream", b.stream, "error", err)
		metrics.BroadcastMarshalFailuresTotal.WithLabelValues(b.stream).Inc()
		return
	}

	var dead []Handle
	for _, e := range b.registry.snapshot() {
		if err := e.sink.Send(data); err != nil {
			dead = append(dead, e.handle)
			continue
		}
		metrics.BroadcastMessagesTotal.WithLabelValues(b.stream).Inc()
	}

	for _, h := range dead {
		b.registry.Remove(h)
		metrics.BroadcastPrunedTotal.WithLabelValues(b.stream).Inc()
		slog.Debug("Pruned dead subscriber", "stream", b.stream, "handle", uint64(h))
	}
	if len(dead) > 0 {
		metrics.BroadcastSubscribers.WithLabelValues(b.stream).Set(float64(b.registry.Len()))
	}
}
