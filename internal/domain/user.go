package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a verified identity resolved by the auth component.
// The signaling core never mutates it after binding.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUser(username string, passHash []byte) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		PassHash:  passHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
