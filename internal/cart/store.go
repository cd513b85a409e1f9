// Package cart holds the process-wide active cart: the shared mutable state
// behind the register, the handheld scanner, and the cart stream.
package cart

import (
	"sync"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
)

// Store is the single in-process cart. It mirrors the active in-person
// transaction only: created empty at startup, cleared at checkout, never
// persisted across restarts.
//
// One mutex covers each read-modify-write-broadcast sequence, so no reader or
// subscriber ever observes a half-applied mutation, and broadcasts reach
// subscribers in mutation order.
type Store struct {
	mu          sync.Mutex
	items       []domain.CartItem
	broadcaster *broadcast.Broadcaster
}

// NewStore creates an empty cart wired to the given broadcaster.
func NewStore(b *broadcast.Broadcaster) *Store {
	return &Store{broadcaster: b}
}

// AddItem adds quantity to an existing line or appends a new one, preserving
// insertion order. The snapshot is cached on new lines only.
//
// A non-positive quantity against an existing line is applied as a delta and
// can drive the stored quantity to zero or below without deleting the line;
// UpdateItem is the operation with remove-on-non-positive semantics.
func (s *Store) AddItem(productID string, quantity int, snapshot *domain.ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity += quantity
			s.publishLocked()
			return
		}
	}

	s.items = append(s.items, domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		Product:   snapshot,
	})
	s.publishLocked()
}

// UpdateItem overwrites the stored quantity for productID. A quantity of zero
// or less removes the line. Unknown productIDs are a no-op; the update still
// broadcasts either way.
func (s *Store) UpdateItem(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
	} else {
		for i := range s.items {
			if s.items[i].ProductID == productID {
				s.items[i].Quantity = quantity
				break
			}
		}
	}
	s.publishLocked()
}

// RemoveItem deletes the line if present. Idempotent; always broadcasts.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	s.publishLocked()
}

// Clear empties the cart and broadcasts the empty state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.publishLocked()
}

// Items returns a snapshot copy of the current cart.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Snapshot returns the wire payload for the current cart, as sent to a newly
// connected subscriber.
func (s *Store) Snapshot() domain.CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartUpdate{Type: domain.CartUpdateType, Cart: s.copyLocked()}
}

// Checkout hands the current lines to persist and clears the cart, all under
// the store's lock so no mutation interleaves between snapshot and clear.
// A persist failure leaves the cart intact. The clear broadcasts as usual.
func (s *Store) Checkout(persist func(items []domain.CartItem) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return domain.ErrCartEmpty
	}
	if err := persist(s.copyLocked()); err != nil {
		return err
	}

	s.items = nil
	s.publishLocked()
	return nil
}

func (s *Store) removeLocked(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) copyLocked() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) publishLocked() {
	s.broadcaster.Publish(domain.CartUpdate{Type: domain.CartUpdateType, Cart: s.copyLocked()})
}
