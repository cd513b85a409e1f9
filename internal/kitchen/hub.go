// Package kitchen pushes order status updates to the worker dashboards over
// WebSocket.
//
// The Hub is a single goroutine owning all connection state; registration,
// removal, and broadcast arrive as commands on a channel, so no mutexes guard
// the client set. Each connection gets its own writer goroutine with a
// bounded send buffer; boards that stop draining are evicted.
package kitchen

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/getSono/OpenPOS-sub000/internal/domain"
	"github.com/getSono/OpenPOS-sub000/internal/metrics"
)

const (
	writeDeadline     = 5 * time.Second
	messageBufferSize = 16
	cmdBufferSize     = 64
)

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn *websocket.Conn
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, messageBufferSize),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			_ = cw.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	_ = cw.conn.Close()
}

// --- Hub ---

// OrderEvent is the message pushed to every kitchen board when an order is
// placed or changes status.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order domain.Order `json:"order"`
}

// Event types carried by OrderEvent.
const (
	EventOrderPlaced  = "order-placed"
	EventOrderUpdated = "order-updated"
)

type Hub struct {
	cmdCh   chan hubCmd
	clients map[*websocket.Conn]*clientWriter
	done    chan struct{}
}

// NewHub creates and starts the hub goroutine.
func NewHub() *Hub {
	h := &Hub{
		cmdCh:   make(chan hubCmd, cmdBufferSize),
		clients: make(map[*websocket.Conn]*clientWriter),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

// Register adds a dashboard connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.cmdCh <- cmdRegister{conn: conn}
}

// Unregister removes a connection. Safe to call for connections already
// evicted by a failed or slow write.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// Broadcast pushes an order event to every connected board. Marshal failures
// drop the event; a slow board never blocks the caller.
func (h *Hub) Broadcast(eventType string, order domain.Order) {
	data, err := json.Marshal(OrderEvent{Type: eventType, Order: order})
	if err != nil {
		slog.Error("Failed to marshal order event", "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{data: data}
}

// ClientCount returns the number of connected boards.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop closes all board connections and exits the hub goroutine.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
	<-h.done
}

func (h *Hub) run() {
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c.conn)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(conn *websocket.Conn) {
	h.clients[conn] = newClientWriter(conn)
	metrics.KitchenConnectedBoards.Set(float64(len(h.clients)))
	slog.Debug("Kitchen board connected", "total_boards", len(h.clients))
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}
	cw.stop()
	delete(h.clients, conn)
	metrics.KitchenConnectedBoards.Set(float64(len(h.clients)))
	slog.Debug("Kitchen board disconnected", "remaining_boards", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Evicting slow kitchen board")
		metrics.KitchenSlowClientsEvicted.Inc()
		h.handleUnregister(conn)
	}
}

func (h *Hub) handleStop() {
	slog.Info("Kitchen hub shutting down", "boards", len(h.clients))
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
	}
	metrics.KitchenConnectedBoards.Set(0)
}
