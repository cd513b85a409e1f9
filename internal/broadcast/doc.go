// Package broadcast implements the shared-state fan-out used by the cart and
// customer-display streams.
//
// A Broadcaster serializes state once per mutation and pushes it synchronously
// to every sink in its Registry, pruning sinks whose write fails. A single
// broken subscriber never prevents delivery to the others, and a failed push
// is never retried: the viewer reconnects and receives a fresh snapshot.
package broadcast
