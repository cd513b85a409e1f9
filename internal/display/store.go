// Package display holds the customer-facing display state, replaced wholesale
// by the register on every update.
package display

import (
	"sync"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
)

// Store is the single customer-display payload holder. Set replaces the whole
// payload and broadcasts it; no history is retained. The store trusts its
// caller: validation happens at the handler boundary.
//
// The display store and the cart store lock independently; no ordering is
// guaranteed between the two streams.
type Store struct {
	mu          sync.Mutex
	payload     domain.DisplayPayload
	broadcaster *broadcast.Broadcaster
}

// NewStore creates a display store wired to the given broadcaster.
func NewStore(b *broadcast.Broadcaster) *Store {
	return &Store{
		payload:     domain.DisplayPayload{Cart: []domain.DisplayLine{}},
		broadcaster: b,
	}
}

// Set replaces the payload wholesale and broadcasts the new state.
func (s *Store) Set(p domain.DisplayPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Cart == nil {
		p.Cart = []domain.DisplayLine{}
	}
	s.payload = p
	s.broadcaster.Publish(s.payload)
}

// Get returns the current payload snapshot.
func (s *Store) Get() domain.DisplayPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload
}
