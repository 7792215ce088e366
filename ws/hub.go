// Package ws fans newly created messages and ephemeral events out to
// connected peers. The registry maps a user id to that user's live
// connections; delivery is at-most-once with no acks or replay. A
// peer that is offline simply misses the push and catches up over
// HTTP.
package ws

import (
	"encoding/json"
	"sort"
	"sync"

	"whisp/logger"
	"whisp/models"

	"github.com/google/uuid"
)

type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]bool

	broadcast chan []byte
	log       *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:   make(map[uuid.UUID]map[*Client]bool),
		broadcast: make(chan []byte, 16),
		log:       log,
	}
}

// Run consumes the broadcast channel and writes each frame to every
// connection. Start it once from main: `go hub.Run()`.
func (h *Hub) Run() {
	for frame := range h.broadcast {
		h.mu.RLock()
		var all []*Client
		for _, set := range h.clients {
			for c := range set {
				all = append(all, c)
			}
		}
		h.mu.RUnlock()

		for _, c := range all {
			if err := c.send(frame); err != nil {
				h.drop(c)
			}
		}
	}
}

// Register adds a connection to the registry and announces the new
// presence to everyone.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]bool)
		h.clients[c.userID] = set
	}
	set[c] = true
	h.mu.Unlock()

	h.broadcastOnline()
}

// Unregister removes a connection, closes it, and re-announces
// presence. Safe to call twice for the same client.
func (h *Hub) Unregister(c *Client) {
	if h.drop(c) {
		h.broadcastOnline()
	}
}

func (h *Hub) drop(c *Client) bool {
	h.mu.Lock()
	set, ok := h.clients[c.userID]
	if ok {
		if _, present := set[c]; !present {
			ok = false
		}
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()

	if ok {
		c.close()
	}
	return ok
}

// SendToUser pushes one event to every live connection of a single
// user, synchronously from the caller. Dead connections are dropped;
// an offline user is not an error.
func (h *Hub) SendToUser(userID uuid.UUID, ev models.Event) {
	frame, err := json.Marshal(ev)
	if err != nil {
		h.log.WithError(err).Error("marshaling event failed")
		return
	}

	h.mu.RLock()
	var targets []*Client
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(frame); err != nil {
			h.log.WithField("user_id", userID).WithError(err).Warn("push failed, dropping connection")
			h.drop(c)
		}
	}
}

func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// OnlineUserIDs returns the sorted ids of users with at least one
// live connection.
func (h *Hub) OnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return ids
}

// broadcastOnline queues a presence frame for the Run loop. Presence
// is best-effort: if the queue is full the frame is skipped and the
// next connect/disconnect refreshes it.
func (h *Hub) broadcastOnline() {
	ev, err := models.NewEvent(models.EventOnlineUsers, models.OnlineUsersPayload{UserIDs: h.OnlineUserIDs()})
	if err != nil {
		return
	}
	frame, err := json.Marshal(ev)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- frame:
	default:
	}
}
