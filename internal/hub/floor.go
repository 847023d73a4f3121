package hub

import (
	"log/slog"

	"github.com/taxitalk/server/internal/domain"
)

// RequestFloor grants the room's floor to c if it is free and broadcasts
// the grant; otherwise the current holder keeps it and only c is told who
// holds the floor. A repeated request by the holder itself is denied too.
func (h *Hub) RequestFloor(c *domain.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.roomOfLocked(c)
	if !ok {
		return
	}

	if r.floorHolder != "" {
		c.EnqueueEvent(domain.SignalMessage{
			Type: domain.TypeFloorDenied,
			Room: r.name,
			Payload: map[string]any{
				"holder_id": r.floorHolder,
			},
		})
		return
	}

	r.floorHolder = c.ID
	r.broadcastLocked(domain.SignalMessage{
		Type: domain.TypeFloorGranted,
		Room: r.name,
		Payload: map[string]any{
			"holder_id":   c.ID,
			"holder_name": c.DisplayName(),
		},
	})

	h.log.Debug("floor granted",
		slog.String("room", r.name),
		slog.String("holder", c.ID),
	)
}

// ReleaseFloor frees the floor if c holds it. Releasing a floor held by
// someone else, or a free floor, is a silent no-op.
func (h *Hub) ReleaseFloor(c *domain.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.roomOfLocked(c)
	if !ok || r.floorHolder != c.ID {
		return
	}
	h.releaseFloorLocked(r)
}

// releaseFloorLocked transitions the room to free and broadcasts the
// release to its current members. Shared by the explicit release and the
// implicit one on leave/disconnect; by the time leave calls it the holder
// is already out of the member set, so only the remaining members hear it.
func (h *Hub) releaseFloorLocked(r *room) {
	holder := r.floorHolder
	r.floorHolder = ""
	r.broadcastLocked(domain.SignalMessage{
		Type: domain.TypeFloorReleased,
		Room: r.name,
	})

	h.log.Debug("floor released",
		slog.String("room", r.name),
		slog.String("holder", holder),
	)
}

// roomOfLocked resolves the client's current room. Callers hold h.mu.
func (h *Hub) roomOfLocked(c *domain.Client) (*room, bool) {
	if c.Room == "" {
		return nil, false
	}
	r, ok := h.rooms[c.Room]
	return r, ok
}
