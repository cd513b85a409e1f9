// Package domain holds the core types and service interfaces of the POS
// backend: cart and customer-display state, catalog records, orders, and the
// repository contracts implemented by the database and cache adapters.
package domain
