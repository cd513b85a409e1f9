package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
)

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Send(data []byte) error {
	s.messages = append(s.messages, string(data))
	return nil
}

func newTestStore() (*Store, *broadcast.Registry) {
	registry := broadcast.NewRegistry()
	return NewStore(broadcast.NewBroadcaster("display", registry)), registry
}

func TestSet_ReplacesWholesale(t *testing.T) {
	store, _ := newTestStore()

	store.Set(domain.DisplayPayload{
		Cart: []domain.DisplayLine{
			{Product: domain.DisplayProduct{ID: "p1", Name: "Cola", Price: 1.5}, Quantity: 2},
		},
		Total:       3.0,
		ItemCount:   2,
		CurrentItem: &domain.CurrentItem{Name: "Cola", Price: 1.5},
	})
	store.Set(domain.DisplayPayload{Total: 0, ItemCount: 0})

	got := store.Get()
	assert.Empty(t, got.Cart)
	assert.Zero(t, got.Total)
	// CurrentItem is not carried over from the previous payload.
	assert.Nil(t, got.CurrentItem)
}

func TestSet_BroadcastsBarePayload(t *testing.T) {
	store, registry := newTestStore()
	sink := &recordingSink{}
	registry.Add(sink)

	store.Set(domain.DisplayPayload{
		Cart: []domain.DisplayLine{
			{Product: domain.DisplayProduct{ID: "p1", Name: "Cola", Price: 1.5}, Quantity: 2},
		},
		Total:     3.0,
		ItemCount: 2,
	})

	require.Len(t, sink.messages, 1)
	assert.JSONEq(t,
		`{"cart":[{"product":{"id":"p1","name":"Cola","price":1.5},"quantity":2}],"total":3,"itemCount":2}`,
		sink.messages[0])
}

func TestSet_ItemCountKeptAsSupplied(t *testing.T) {
	// itemCount is a caller-computed convenience field and is not
	// cross-checked against the cart lines.
	store, _ := newTestStore()

	store.Set(domain.DisplayPayload{
		Cart: []domain.DisplayLine{
			{Product: domain.DisplayProduct{ID: "p1", Name: "Cola", Price: 1.5}, Quantity: 2},
		},
		Total:     3.0,
		ItemCount: 99,
	})

	assert.Equal(t, 99, store.Get().ItemCount)
}

func TestGet_EmptyStoreHasEmptyCartArray(t *testing.T) {
	store, _ := newTestStore()
	assert.NotNil(t, store.Get().Cart)
	assert.Empty(t, store.Get().Cart)
}
