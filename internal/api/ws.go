package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dportela/procura/backend/pkg/logger"
)

// BadgeUpdate is the message pushed to badge subscribers after each
// alert refresh
type BadgeUpdate struct {
	Total int `json:"total"`
}

// Hub fans badge totals out to connected websocket clients. The sidebar
// badge subscribes here instead of polling /api/alerts/badge.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates a new badge hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The badge is same-origin internal tooling
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the connection and keeps it registered until the
// client goes away
// GET /ws/alerts
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	h.logger.WithField("clients", h.Count()).Debug("Badge subscriber connected")

	// Drain incoming frames; the read error is how we learn the client
	// disconnected.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast pushes a badge total to every subscriber
func (h *Hub) Broadcast(total int) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	update := BadgeUpdate{Total: total}
	for _, conn := range conns {
		if err := conn.WriteJSON(update); err != nil {
			h.remove(conn)
		}
	}
}

// Count returns the number of connected subscribers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}
