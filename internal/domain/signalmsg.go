package domain

import "github.com/pion/webrtc/v3"

// Client -> server message types.
const (
	TypeJoin         = "join"
	TypeRequestFloor = "request-floor"
	TypeReleaseFloor = "release-floor"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
)

// Server -> client message types.
const (
	TypeJoined        = "joined"
	TypePeers         = "peers"
	TypeFloorGranted  = "floor-granted"
	TypeFloorDenied   = "floor-denied"
	TypeFloorReleased = "floor-released"
)

// SignalMessage is the single envelope for everything crossing the
// signaling socket. SDP, Candidate and Payload are opaque to the hub:
// the relay forwards them untouched.
type SignalMessage struct {
	Type      string                     `json:"type"`
	Room      string                     `json:"room,omitempty"`
	SenderID  string                     `json:"sender_id,omitempty"`
	TargetID  string                     `json:"target_id,omitempty"`
	SDP       *webrtc.SessionDescription `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit   `json:"candidate,omitempty"`
	Payload   map[string]any             `json:"payload,omitempty"`
}
