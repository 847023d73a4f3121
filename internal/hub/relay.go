package hub

import (
	"log/slog"

	"github.com/taxitalk/server/internal/domain"
)

// Relay forwards an offer/answer/ice-candidate to exactly the addressed
// client, provided sender and target are in the same room right now. The
// check compares the two stored current-room fields directly. Anything
// else — unknown target, cross-room, sender not yet joined — is dropped
// without telling the sender: this is a best-effort channel and the
// negotiation layer above it tolerates loss.
func (h *Hub) Relay(from *domain.Client, msg domain.SignalMessage) {
	switch msg.Type {
	case domain.TypeOffer, domain.TypeAnswer, domain.TypeICECandidate:
	default:
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	target, ok := h.clients[msg.TargetID]
	if !ok || from.Room == "" || target.Room != from.Room {
		h.log.Debug("relay dropped",
			slog.String("type", msg.Type),
			slog.String("from", from.ID),
			slog.String("target", msg.TargetID),
		)
		return
	}

	forward := msg
	forward.Room = from.Room
	forward.SenderID = from.ID
	target.EnqueueEvent(forward)
}
