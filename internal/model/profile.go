package model

import "github.com/google/uuid"

// Profile is the canonical identity of a player account as known to the
// host's user cache
type Profile struct {
	ID   uuid.UUID
	Name string
}
