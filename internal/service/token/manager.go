package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"slideforge/internal/apperrors"
	"slideforge/internal/googleapi"
	"slideforge/internal/logger"
	"slideforge/internal/models"
	"slideforge/internal/repository"
)

const (
	// Google tokens live about an hour; the local lease is deliberately
	// shorter so warnings and re-validation fire before the remote side
	// starts rejecting the credential.
	defaultLease      = 50 * time.Minute
	defaultWarnWindow = 5 * time.Minute

	// Scope substring a usable token must carry
	requiredScope = "presentations"
)

// Introspector asks the provider whether a raw token is valid and which
// scopes were granted to it
type Introspector interface {
	TokenInfo(ctx context.Context, token string) (googleapi.TokenInfo, error)
}

// Manager with sensible defaults
type Config struct {
	// Lease and warning window
	// If not set then defaults are used
	Lease      time.Duration
	WarnWindow time.Duration

	// Clock override, used by tests. Defaults to time.Now
	Now func() time.Time

	Logger logger.Logger
}

// Manager owns the Google credential lifecycle for every owner: save, load,
// remote validation, expiry tracking and clearing. It is the only component
// that stores a credential across calls.
type Manager struct {
	lease      time.Duration
	warnWindow time.Duration

	creds        repository.CredentialRepo
	introspector Introspector
	logger       logger.Logger
	now          func() time.Time
}

func NewManager(cfg Config, creds repository.CredentialRepo, introspector Introspector) (*Manager, error) {
	if creds == nil {
		return nil, errors.New("credential repo must not be nil")
	}
	if introspector == nil {
		return nil, errors.New("introspector must not be nil")
	}

	if cfg.Lease == 0 {
		cfg.Lease = defaultLease
	}
	if cfg.WarnWindow == 0 {
		cfg.WarnWindow = defaultWarnWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}

	return &Manager{
		lease:        cfg.Lease,
		warnWindow:   cfg.WarnWindow,
		creds:        creds,
		introspector: introspector,
		logger:       cfg.Logger,
		now:          cfg.Now,
	}, nil
}

// Save stores the raw token for the owner on a fresh lease.
// Scope verification is a separate explicit step (Validate) because it
// needs a network round trip.
func (m *Manager) Save(ctx context.Context, ownerID uuid.UUID, rawValue string) (models.Credential, error) {
	if rawValue == "" {
		return models.Credential{}, fmt.Errorf("%w: token value must not be empty", apperrors.ErrValidation)
	}

	now := m.now()
	cred := models.Credential{
		OwnerID:        ownerID,
		Value:          rawValue,
		IssuedAt:       now,
		ExpiresAt:      now.Add(m.lease),
		ScopesVerified: false,
	}

	if err := m.creds.Put(ctx, cred); err != nil {
		return models.Credential{}, fmt.Errorf("error while saving credential. Err: %w", err)
	}

	return cred, nil
}

// Load restores the owner's credential. A credential that is already past
// its lease is cleared immediately and reported as expired instead of being
// handed back stale.
func (m *Manager) Load(ctx context.Context, ownerID uuid.UUID) (models.Credential, error) {
	cred, err := m.creds.Get(ctx, ownerID)
	if err != nil {
		return models.Credential{}, err
	}

	if !m.now().Before(cred.ExpiresAt) {
		if err := m.creds.Delete(ctx, ownerID); err != nil {
			return models.Credential{}, fmt.Errorf("error while clearing expired credential. Err: %w", err)
		}
		return models.Credential{}, fmt.Errorf("%w", apperrors.ErrCredentialExpired)
	}

	return cred, nil
}

// Validate checks the stored credential against the provider and returns it
// if it is usable. On any invalidity it discovers (absent, locally expired,
// rejected remotely, missing scope) the stored credential is cleared, so the
// caller must not assume token state survives a failed validation.
func (m *Manager) Validate(ctx context.Context, ownerID uuid.UUID) (models.Credential, error) {
	cred, err := m.creds.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCredentialNotFound) {
			return models.Credential{}, fmt.Errorf("%w: no stored credential", apperrors.ErrCredentialInvalid)
		}
		return models.Credential{}, err
	}

	if !m.now().Before(cred.ExpiresAt) {
		m.clear(ctx, ownerID)
		return models.Credential{}, fmt.Errorf("%w: %w", apperrors.ErrCredentialInvalid, apperrors.ErrCredentialExpired)
	}

	info, err := m.introspector.TokenInfo(ctx, cred.Value)
	if err != nil {
		m.logger.Warn("Token introspection rejected credential", "owner_id", ownerID, "error", err)
		m.clear(ctx, ownerID)
		return models.Credential{}, fmt.Errorf("%w: rejected by provider: %w", apperrors.ErrCredentialInvalid, err)
	}

	if !strings.Contains(info.Scope, requiredScope) {
		m.logger.Warn("Credential misses required scope", "owner_id", ownerID, "scope", info.Scope)
		m.clear(ctx, ownerID)
		return models.Credential{}, fmt.Errorf("%w: missing %q scope", apperrors.ErrCredentialInvalid, requiredScope)
	}

	// The only mutation a successful validation makes: remember the scopes
	// were verified. Lease timestamps stay untouched.
	if !cred.ScopesVerified {
		cred.ScopesVerified = true
		if err := m.creds.Put(ctx, cred); err != nil {
			return models.Credential{}, fmt.Errorf("error while marking credential verified. Err: %w", err)
		}
	}

	return cred, nil
}

// Clear erases the owner's credential unconditionally
func (m *Manager) Clear(ctx context.Context, ownerID uuid.UUID) error {
	return m.creds.Delete(ctx, ownerID)
}

// TimeRemaining reports whole minutes left on the lease, never negative
func (m *Manager) TimeRemaining(ctx context.Context, ownerID uuid.UUID) (int, error) {
	cred, err := m.creds.Get(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	remaining := cred.ExpiresAt.Sub(m.now())
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining / time.Minute), nil
}

// IsExpiringSoon reports whether the credential enters its warning window
func (m *Manager) IsExpiringSoon(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	cred, err := m.creds.Get(ctx, ownerID)
	if err != nil {
		return false, err
	}

	now := m.now()
	if !now.Before(cred.ExpiresAt) {
		return false, nil
	}
	return !cred.ExpiresAt.After(now.Add(m.warnWindow)), nil
}

// clear drops the credential; a delete failure is logged, not returned
func (m *Manager) clear(ctx context.Context, ownerID uuid.UUID) {
	if err := m.creds.Delete(ctx, ownerID); err != nil {
		m.logger.Error("Failed to clear credential", "owner_id", ownerID, "error", err)
	}
}
