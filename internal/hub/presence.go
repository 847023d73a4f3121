package hub

import (
	"github.com/taxitalk/server/internal/domain"
)

// Member is one entry of a room's presence list.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// RoomInfo is the summary served by the rooms listing endpoint.
type RoomInfo struct {
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	FloorHolder string `json:"floor_holder,omitempty"`
}

// publishLocked recomputes r's member list and delivers it to every
// member. Callers hold h.mu, so the snapshot is consistent with whatever
// mutation triggered it.
func (h *Hub) publishLocked(r *room) {
	members := r.memberList()
	r.broadcastLocked(domain.SignalMessage{
		Type: domain.TypePeers,
		Room: r.name,
		Payload: map[string]any{
			"peers": members,
		},
	})
}

func (r *room) memberList() []Member {
	members := make([]Member, 0, len(r.members))
	for _, c := range r.members {
		members = append(members, Member{ID: c.ID, DisplayName: c.DisplayName()})
	}
	return members
}

// Participants returns the current presence snapshot of a room, nil when
// the room does not exist.
func (h *Hub) Participants(name string) []Member {
	name = normalizeRoom(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[name]
	if !ok {
		return nil
	}
	return r.memberList()
}

// Rooms lists all live rooms.
func (h *Hub) Rooms() []RoomInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]RoomInfo, 0, len(h.rooms))
	for _, r := range h.rooms {
		out = append(out, RoomInfo{
			Name:        r.name,
			MemberCount: len(r.members),
			FloorHolder: r.floorHolder,
		})
	}
	return out
}
