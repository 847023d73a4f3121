package hub

import (
	"log/slog"
	"sync"

	"github.com/taxitalk/server/internal/domain"
)

// Hub owns all room and membership state. A single mutex serializes every
// mutation, which keeps the per-room ordering guarantees trivial: presence
// snapshots and floor notifications are enqueued under the same lock as the
// mutation that caused them, so each client's event channel observes them
// in mutation order. Critical sections are short and never touch I/O.
type Hub struct {
	log *slog.Logger

	mu      sync.Mutex
	rooms   map[string]*room
	clients map[string]*domain.Client
}

func New(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:     log,
		rooms:   make(map[string]*room),
		clients: make(map[string]*domain.Client),
	}
}

// Join moves the client into the named room, leaving its current room
// first if it has one. It serves both the initial join and a room switch.
// Joining the room the client is already in is a no-op.
func (h *Hub) Join(c *domain.Client, name string) {
	name = normalizeRoom(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	if c.Room == name {
		return
	}

	if c.Room != "" {
		h.leaveLocked(c)
	}
	h.clients[c.ID] = c

	r := h.ensureLocked(name)
	r.members[c.ID] = c
	c.Room = name

	c.EnqueueEvent(domain.SignalMessage{
		Type:     domain.TypeJoined,
		Room:     name,
		SenderID: c.ID,
		Payload: map[string]any{
			"id":           c.ID,
			"display_name": c.DisplayName(),
		},
	})
	h.publishLocked(r)

	h.log.Info("client joined room",
		slog.String("client", c.ID),
		slog.String("room", name),
	)
}

// Disconnect tears the client down: implicit floor release, membership
// removal, presence update, then the client id becomes unknown to the hub.
// It is terminal and idempotent; a second call is a no-op.
func (h *Hub) Disconnect(c *domain.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)

	if c.Room != "" {
		h.leaveLocked(c)
	}

	h.log.Info("client disconnected", slog.String("client", c.ID))
}

// leaveLocked removes the client from its current room: membership first,
// then the implicit floor release, then presence, so observers never see a
// stale holder next to updated membership. Emptied rooms are pruned; ensure
// recreates them lazily.
func (h *Hub) leaveLocked(c *domain.Client) {
	r, ok := h.rooms[c.Room]
	if !ok {
		c.Room = ""
		return
	}

	delete(r.members, c.ID)
	if r.floorHolder == c.ID {
		h.releaseFloorLocked(r)
	}
	c.Room = ""

	if len(r.members) == 0 {
		delete(h.rooms, r.name)
		return
	}
	h.publishLocked(r)
}
