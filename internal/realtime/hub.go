// Package realtime pushes inventory events to connected dashboards
// over websockets.
package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/aims-retail/aims-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

// Event types pushed to dashboard clients.
const (
	EventStockChanged       = "stock_changed"
	EventNotification       = "notification"
	EventReplenishment      = "replenishment"
	EventOptimizationResult = "optimization"
)

// Event is the wire envelope for a dashboard push.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	writeWait      = 10 * time.Second
	clientBuffer   = 16
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin is already vetted by the CORS middleware upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans events out to every connected client. Slow clients are
// dropped rather than allowed to block the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// ServeHTTP upgrades the connection and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log := logger.WithComponent("realtime")
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	go h.readLoop(c)
}

// Broadcast serializes the event once and queues it to every client.
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	raw, err := json.Marshal(Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		log := logger.WithComponent("realtime")
		log.Error().Err(err).
			Str("event", eventType).Msg("could not encode event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			// Client buffer full; drop it on the next read/write error.
			go h.drop(c)
		}
	}
}

// ClientCount reports connected dashboards, used by the health endpoint.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	h.mu.Unlock()

	close(c.send)
	_ = c.conn.Close()
}

// readLoop discards inbound frames; the protocol is push-only. It keeps
// the connection alive and detects disconnects.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writeLoop() {
	for raw := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
