package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a Google API bearer token plus the lease metadata tracked
// locally. The lease is deliberately shorter than Google's real token
// lifetime, so "expiring soon" warnings fire before the remote side would
// start rejecting the token.
type Credential struct {
	OwnerID        uuid.UUID
	Value          string
	IssuedAt       time.Time
	ExpiresAt      time.Time
	ScopesVerified bool
}
