package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans job-refresh events out to connected clients. A client may
// subscribe to a single term; clients with no term get every event.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{clients: make(map[*Client]struct{}), logger: logger}
}

func (h *Hub) Register(c *Client) {
	if h == nil || c == nil {
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS connected | term=%q total_clients=%d", c.term, total)
	}
}

func (h *Hub) Unregister(c *Client) {
	if h == nil || c == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS disconnected | total_clients=%d", total)
	}
}

// Broadcast delivers message to every client subscribed to term. Slow
// clients are dropped rather than blocking the fetch path.
func (h *Hub) Broadcast(term string, message []byte) {
	if h == nil {
		return
	}

	h.mu.RLock()
	stale := make([]*Client, 0)
	for c := range h.clients {
		if c.term != "" && c.term != term {
			continue
		}
		select {
		case c.send <- message:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.Unregister(c)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	term string
	send chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, term string) *Client {
	return &Client{hub: hub, conn: conn, term: term, send: make(chan []byte, 64)}
}

// Ack tells the client which term it is subscribed to ("" means all terms).
func (c *Client) Ack() {
	b, err := json.Marshal(SubscribedEvent{Type: "subscribed", Term: c.term})
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}

// ReadPump drains control frames until the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
