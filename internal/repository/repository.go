package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slideforge/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with username exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string, hashedPassword string) (models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Application refresh token repository interface
type RefreshTokenRepo interface {
	// Save token in repository
	Save(ctx context.Context, token models.RefreshToken) error

	// Get token by the token string itself
	// Has to return result even if it expired or used already
	Get(ctx context.Context, tokenString string) (models.RefreshToken, error)

	// Mark token as used
	// Must not overwrite 'usedAt' of already used token, has to return
	// apperrors.ErrRefreshTokenIsUsed instead
	MarkUsed(ctx context.Context, tokenString string) (usedAt time.Time, err error)
}

// Google API credential store, keyed by owner.
// At most one credential per owner is kept.
type CredentialRepo interface {
	// Get stored credential for the owner
	// If nothing is stored must return apperrors.ErrCredentialNotFound
	Get(ctx context.Context, ownerID uuid.UUID) (models.Credential, error)

	// Put stores the credential for its owner, replacing any previous one
	Put(ctx context.Context, cred models.Credential) error

	// Delete erases the owner's credential. Deleting an absent credential is not an error
	Delete(ctx context.Context, ownerID uuid.UUID) error
}

// Generation record history, keyed by owner.
type RecordRepo interface {
	// Append record to the owner's history
	Append(ctx context.Context, record models.GenerationRecord) error

	// List the owner's records, most recent last
	List(ctx context.Context, ownerID uuid.UUID) ([]models.GenerationRecord, error)

	// Remove the record with the given remote document id
	// If no such record exists must return apperrors.ErrRecordNotFound
	Remove(ctx context.Context, ownerID uuid.UUID, documentID string) error
}

// Storage combines all repositories backed by one connection
type Storage interface {
	User() UserRepo
	Refresh() RefreshTokenRepo
	Credential() CredentialRepo
	Record() RecordRepo

	// Run fn within a database transaction
	InTx(ctx context.Context, fn func(s Storage) error) error
}
