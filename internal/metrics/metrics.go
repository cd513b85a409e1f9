// Package metrics defines the Prometheus collectors used across the backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcast metrics
var (
	// BroadcastSubscribers tracks currently registered push subscribers per stream
	BroadcastSubscribers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "broadcast_subscribers_current",
			Help: "Currently registered push subscribers by stream",
		},
		[]string{"stream"},
	)

	// BroadcastMessagesTotal tracks messages delivered to subscribers per stream
	BroadcastMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_messages_total",
			Help: "Messages delivered to push subscribers by stream",
		},
		[]string{"stream"},
	)

	// BroadcastPrunedTotal tracks subscribers dropped after a failed write
	BroadcastPrunedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_pruned_subscribers_total",
			Help: "Subscribers dropped after a failed push write, by stream",
		},
		[]string{"stream"},
	)

	// BroadcastMarshalFailuresTotal tracks state serialization failures
	BroadcastMarshalFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_marshal_failures_total",
			Help: "State serialization failures before fan-out, by stream",
		},
		[]string{"stream"},
	)
)

// Kitchen hub metrics
var (
	// KitchenConnectedBoards tracks connected kitchen dashboard sockets
	KitchenConnectedBoards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kitchen_connected_boards_current",
			Help: "Currently connected kitchen dashboard WebSocket clients",
		},
	)

	// KitchenSlowClientsEvicted tracks boards evicted for not draining their send buffer
	KitchenSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kitchen_slow_clients_evicted_total",
			Help: "Kitchen dashboard clients evicted because their send buffer was full",
		},
	)
)

// Catalog cache metrics
var (
	// ProductCacheMemoryHits tracks in-memory product cache hits
	ProductCacheMemoryHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_memory_hits_total",
			Help: "Product lookups served from the in-memory cache",
		},
	)

	// ProductCacheRedisHits tracks Redis product cache hits
	ProductCacheRedisHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_redis_hits_total",
			Help: "Product lookups served from the Redis cache",
		},
	)

	// ProductCachePostgresHits tracks lookups that fell through to PostgreSQL
	ProductCachePostgresHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "product_cache_postgres_hits_total",
			Help: "Product lookups that fell through to PostgreSQL",
		},
	)
)

// Order metrics
var (
	// OrdersPlacedTotal tracks checkouts
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders created at checkout",
		},
	)

	// OrderStatusChangesTotal tracks kitchen status transitions
	OrderStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "Order status transitions by new status",
		},
		[]string{"status"},
	)
)
