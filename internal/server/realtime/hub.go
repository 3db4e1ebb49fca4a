// Package realtime fans inbox events out to a user's open websocket
// connections.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/snackswap/snackswap/internal/logging"
)

// Client is one websocket connection owned by a user. Writes go through the
// send channel so only the write loop touches the conn.
type Client struct {
	conn   *websocket.Conn
	userID string
	send   chan []byte
}

// Hub tracks connections per user id.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*Client]struct{}
	logger  logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Attach registers the upgraded connection and runs its read and write
// loops. It blocks until the peer goes away.
func (h *Hub) Attach(conn *websocket.Conn, userID string) {
	c := &Client{
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 16),
	}
	h.register(c)
	go c.writeLoop()
	c.readLoop()
	h.unregister(c)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.userID]
	if set == nil {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	// Publish may have dropped a slow client already; close only once.
	if _, registered := set[c]; !registered {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
}

// Publish sends the event to every open connection of the user. A connection
// with a full send buffer is dropped rather than blocking the caller.
func (h *Hub) Publish(userID string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error(context.Background(), "error marshaling event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			close(c.send)
			delete(h.clients[userID], c)
		}
	}
}

// ConnCount reports how many connections the user currently holds.
func (h *Hub) ConnCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

func (c *Client) readLoop() {
	defer c.conn.Close()
	c.conn.SetReadLimit(64 * 1024)
	for {
		// Inbound frames are ignored; the channel is push only.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
