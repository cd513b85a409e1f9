// Package server implements the HTTP layer using the Echo framework.
//
// Routes: auth (badge sign-in), cart and customer-display state plus their
// event streams, catalog CRUD, checkout and kitchen order progression with a
// WebSocket board feed, and health probes.
// Handlers split by domain: handlers_cart.go, handlers_display.go,
// handlers_catalog.go, handlers_orders.go, handlers_auth.go.
package server
