package cart

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
)

type recordingSink struct {
	messages [][]byte
}

func (s *recordingSink) Send(data []byte) error {
	msg := make([]byte, len(data))
	copy(msg, data)
	s.messages = append(s.messages, msg)
	return nil
}

func (s *recordingSink) updates(t *testing.T) []domain.CartUpdate {
	t.Helper()
	out := make([]domain.CartUpdate, 0, len(s.messages))
	for _, msg := range s.messages {
		var u domain.CartUpdate
		require.NoError(t, json.Unmarshal(msg, &u))
		out = append(out, u)
	}
	return out
}

func newTestStore() (*Store, *broadcast.Registry) {
	registry := broadcast.NewRegistry()
	return NewStore(broadcast.NewBroadcaster("cart", registry)), registry
}

func TestAddItem_UniquenessInvariant(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem("p1", 2, &domain.ProductSnapshot{Name: "Cola", Price: 1.5})
	store.AddItem("p2", 1, nil)
	store.AddItem("p1", 3, nil)
	store.AddItem("p1", 1, nil)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 6, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)

	// Snapshot cached at add-time survives later increments.
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Cola", items[0].Product.Name)
}

func TestAddItem_NegativeDeltaOnExistingLine(t *testing.T) {
	// Increments accept any delta; only UpdateItem removes on non-positive.
	store, _ := newTestStore()

	store.AddItem("p1", 3, nil)
	store.AddItem("p1", -3, nil)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Quantity)
}

func TestUpdateItem_OverwritesQuantity(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem("p1", 2, nil)
	store.UpdateItem("p1", 7)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateItem_NonPositiveRemoves(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		store, _ := newTestStore()
		store.AddItem("p1", 2, nil)

		store.UpdateItem("p1", quantity)
		assert.Empty(t, store.Items())
	}
}

func TestUpdateItem_AbsentProductStillBroadcasts(t *testing.T) {
	store, registry := newTestStore()
	sink := &recordingSink{}
	registry.Add(sink)

	store.UpdateItem("ghost", 0)

	assert.Empty(t, store.Items())
	require.Len(t, sink.messages, 1)
	assert.JSONEq(t, `{"type":"cart-update","cart":[]}`, string(sink.messages[0]))
}

func TestRemoveItem_Idempotent(t *testing.T) {
	store, registry := newTestStore()
	sink := &recordingSink{}
	registry.Add(sink)

	store.AddItem("p1", 1, nil)
	store.RemoveItem("p1")
	afterFirst := store.Items()
	store.RemoveItem("p1")

	assert.Equal(t, afterFirst, store.Items())
	// Every removal broadcasts, even when nothing changed.
	assert.Len(t, sink.messages, 3)
}

func TestClear_EmptiesRegardlessOfPriorState(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem("p1", 2, nil)
	store.AddItem("p2", 5, nil)
	store.Clear()

	assert.Empty(t, store.Items())
}

func TestStore_SubscriberReceivesMutationSequence(t *testing.T) {
	store, registry := newTestStore()

	// Connect lifecycle: snapshot first, then registration.
	sink := &recordingSink{}
	snapshot, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)
	require.NoError(t, sink.Send(snapshot))
	registry.Add(sink)

	store.AddItem("p1", 2, &domain.ProductSnapshot{Name: "Cola", Price: 1.5})
	store.AddItem("p1", 1, nil)

	updates := sink.updates(t)
	require.Len(t, updates, 3)

	assert.Empty(t, updates[0].Cart)

	require.Len(t, updates[1].Cart, 1)
	assert.Equal(t, 2, updates[1].Cart[0].Quantity)

	require.Len(t, updates[2].Cart, 1)
	assert.Equal(t, "p1", updates[2].Cart[0].ProductID)
	assert.Equal(t, 3, updates[2].Cart[0].Quantity)
	require.NotNil(t, updates[2].Cart[0].Product)
	assert.Equal(t, "Cola", updates[2].Cart[0].Product.Name)
	assert.InDelta(t, 1.5, updates[2].Cart[0].Product.Price, 0.0001)

	// Removing via non-positive update pushes an empty cart.
	store.UpdateItem("p1", 0)
	updates = sink.updates(t)
	require.Len(t, updates, 4)
	assert.Empty(t, updates[3].Cart)
}

func TestCheckout_PersistFailureLeavesCartIntact(t *testing.T) {
	store, _ := newTestStore()
	store.AddItem("p1", 2, nil)

	err := store.Checkout(func([]domain.CartItem) error {
		return errors.New("db down")
	})
	require.Error(t, err)
	assert.Len(t, store.Items(), 1)
}

func TestCheckout_ClearsAndBroadcasts(t *testing.T) {
	store, registry := newTestStore()
	sink := &recordingSink{}

	store.AddItem("p1", 2, nil)
	registry.Add(sink)

	var persisted []domain.CartItem
	err := store.Checkout(func(items []domain.CartItem) error {
		persisted = items
		return nil
	})
	require.NoError(t, err)

	require.Len(t, persisted, 1)
	assert.Equal(t, "p1", persisted[0].ProductID)
	assert.Empty(t, store.Items())

	require.Len(t, sink.messages, 1)
	assert.JSONEq(t, `{"type":"cart-update","cart":[]}`, string(sink.messages[0]))
}

func TestCheckout_EmptyCart(t *testing.T) {
	store, _ := newTestStore()
	err := store.Checkout(func([]domain.CartItem) error { return nil })
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}
