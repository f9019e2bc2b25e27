// Package ws pushes realtime chat events to connected browsers.
package ws

import (
	"context"
	"sync"

	"kariyer_backend/internal/logger"
)

type delivery struct {
	userIDs []string
	event   any
}

// Hub tracks websocket clients by user id. A user may hold several connections.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
	}
}

// Run owns the client map until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			h.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "connections", len(set))

		case client := <-h.unregister:
			h.remove(client)

		case d := <-h.deliver:
			h.fanOut(d)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

func (h *Hub) fanOut(d delivery) {
	var slow []*Client

	h.mu.RLock()
	for _, userID := range d.userIDs {
		for client := range h.clients[userID] {
			select {
			case client.send <- d.event:
			default:
				slow = append(slow, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		logger.Warn("ws client too slow, dropping connection", "user_id", c.UserID)
		h.remove(c)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for client := range set {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}

// SendToUsers queues event for every connection of the given users. It never blocks the caller.
func (h *Hub) SendToUsers(userIDs []string, event any) {
	if len(userIDs) == 0 {
		return
	}
	select {
	case h.deliver <- delivery{userIDs: userIDs, event: event}:
	default:
		logger.Warn("ws delivery queue full, event dropped", "users", len(userIDs))
	}
}

func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
