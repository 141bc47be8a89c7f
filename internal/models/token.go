package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the application login refresh token.
// Not related to the Google API credential, see Credential for that.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time // nil if token not used
}

type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// Token pair issued on register, login or refresh
type TokenPair struct {
	Access  IssuedToken
	Refresh IssuedToken
}
