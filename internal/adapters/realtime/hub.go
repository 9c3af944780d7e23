package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Event is the payload pushed to connected clients
type Event struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type client struct {
	conn    *websocket.Conn
	userID  uint
	isAdmin bool
	send    chan []byte
}

// Hub tracks live websocket connections per user. Delivery is best
// effort, a missed push is still visible through the stored
// notification list.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	byUser  map[uint]map[*client]struct{}
}

// NewHub creates a new connection hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		byUser:  make(map[uint]map[*client]struct{}),
	}
}

// Handler returns the websocket handler. The auth middleware must have
// stored user_id and role in locals before the upgrade.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(uint)
		role, _ := conn.Locals("role").(string)
		if userID == 0 {
			conn.Close()
			return
		}

		c := &client{
			conn:    conn,
			userID:  userID,
			isAdmin: role == "Admin",
			send:    make(chan []byte, 16),
		}
		h.register(c)
		defer h.unregister(c)

		go c.writeLoop()

		// Read loop only drains control frames and detects close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}

func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if h.byUser[c.userID] == nil {
		h.byUser[c.userID] = make(map[*client]struct{})
	}
	h.byUser[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	delete(h.byUser[c.userID], c)
	if len(h.byUser[c.userID]) == 0 {
		delete(h.byUser, c.userID)
	}
	close(c.send)
}

// PushToUser delivers an event to every live connection of a user
func (h *Hub) PushToUser(userID uint, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.S().Warnw("failed to encode push event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.byUser[userID] {
		select {
		case c.send <- payload:
		default:
		}
	}
}

// PushToAdmins delivers an event to every connected admin
func (h *Hub) PushToAdmins(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		zap.S().Warnw("failed to encode push event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.isAdmin {
			continue
		}
		select {
		case c.send <- payload:
		default:
		}
	}
}

// ConnectedUsers reports how many distinct users are online
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser)
}
