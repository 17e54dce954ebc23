package domain

import "time"

// Caller is the authenticated actor behind one request. It is derived from a
// verified credential and never persisted.
type Caller struct {
	ActorID   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
