package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const eventBuffer = 16

// Client is a live signaling connection. The transport layer owns the
// socket; the hub references clients by ID only. Room is the name of the
// room the client is currently in ("" before the initial join) and is
// mutated exclusively by the hub under its lock.
type Client struct {
	ID       string
	User     *User
	Room     string
	JoinedAt time.Time
	Socket   *websocket.Conn
	Events   chan SignalMessage
}

func NewClient(user *User) *Client {
	return &Client{
		ID:       uuid.New().String(),
		User:     user,
		JoinedAt: time.Now().UTC(),
		Events:   make(chan SignalMessage, eventBuffer),
	}
}

// DisplayName falls back to a placeholder when the identity is absent.
func (c *Client) DisplayName() string {
	if c.User == nil || c.User.Username == "" {
		return "anonymous"
	}
	return c.User.Username
}

// EnqueueEvent drops the event when the client's writer is not keeping up
// instead of blocking the hub.
func (c *Client) EnqueueEvent(event SignalMessage) {
	select {
	case c.Events <- event:
	default:
	}
}
