package broadcast

import "sync"

// Handle identifies a registered sink for later removal.
type Handle uint64

// Registry tracks the live set of push sinks for one shared-state store.
// It holds no connection resources; removing a handle only makes the sink
// ineligible for future broadcasts.
type Registry struct {
	mu    sync.Mutex
	next  Handle
	sinks map[Handle]Sink
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sinks: make(map[Handle]Sink)}
}

// Add registers a sink and returns its handle. The caller is responsible for
// sending the current snapshot to the sink before or immediately after
// registration, so no broadcast is missed between snapshot-read and Add.
func (r *Registry) Add(s Sink) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	r.sinks[h] = s
	return h
}

// Remove unregisters a sink. Removing an unknown or already-removed handle is
// a no-op: an explicit disconnect and a failed-push prune may race on the
// same handle.
func (r *Registry) Remove(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sinks, h)
}

// Len returns the number of registered sinks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sinks)
}

// entry pairs a sink with its handle for a fan-out pass.
type entry struct {
	handle Handle
	sink   Sink
}

// snapshot copies the current sink set so a fan-out pass never iterates the
// live map while registrations and prunes mutate it.
func (r *Registry) snapshot() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]entry, 0, len(r.sinks))
	for h, s := range r.sinks {
		entries = append(entries, entry{handle: h, sink: s})
	}
	return entries
}
