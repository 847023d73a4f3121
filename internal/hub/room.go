package hub

import (
	"strings"

	"github.com/taxitalk/server/internal/domain"
)

// DefaultRoom is where clients land when they join without naming a room.
const DefaultRoom = "main"

// room state is guarded by the hub mutex; the struct itself carries no lock.
type room struct {
	name        string
	members     map[string]*domain.Client
	floorHolder string // client id, "" when the floor is free
}

func normalizeRoom(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultRoom
	}
	return name
}

// ensureLocked is the lazy get-or-create for rooms. Callers hold h.mu.
func (h *Hub) ensureLocked(name string) *room {
	if r, ok := h.rooms[name]; ok {
		return r
	}
	r := &room{
		name:    name,
		members: make(map[string]*domain.Client),
	}
	h.rooms[name] = r
	return r
}

// broadcastLocked enqueues msg to every member of r. Callers hold h.mu.
func (r *room) broadcastLocked(msg domain.SignalMessage) {
	for _, member := range r.members {
		member.EnqueueEvent(msg)
	}
}
