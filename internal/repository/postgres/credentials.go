package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"slideforge/internal/apperrors"
	"slideforge/internal/models"
)

type CredentialRepo struct {
	DB DBTX
}

const getCredential = `-- name: GetCredential
SELECT owner_id, token, issued_at, expires_at, scopes_verified
FROM google_credentials
WHERE owner_id = $1
`

func (r *CredentialRepo) Get(ctx context.Context, ownerID uuid.UUID) (models.Credential, error) {
	rows, _ := r.DB.Query(ctx, getCredential, ownerID)
	cred, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (models.Credential, error) {
		var c models.Credential
		err := row.Scan(&c.OwnerID, &c.Value, &c.IssuedAt, &c.ExpiresAt, &c.ScopesVerified)
		return c, err
	})

	switch {
	case err == nil:
		return cred, nil
	case errors.Is(err, pgx.ErrNoRows):
		return cred, fmt.Errorf("repo error: %w", apperrors.ErrCredentialNotFound)
	default:
		return cred, fmt.Errorf("db error: %w", err)
	}
}

const putCredential = `-- name: PutCredential replacing any previous one
INSERT INTO google_credentials (owner_id, token, issued_at, expires_at, scopes_verified)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (owner_id) DO UPDATE
SET token = EXCLUDED.token,
    issued_at = EXCLUDED.issued_at,
    expires_at = EXCLUDED.expires_at,
    scopes_verified = EXCLUDED.scopes_verified
`

func (r *CredentialRepo) Put(ctx context.Context, cred models.Credential) error {
	_, err := r.DB.Exec(ctx, putCredential, cred.OwnerID, cred.Value, cred.IssuedAt, cred.ExpiresAt, cred.ScopesVerified)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const deleteCredential = `-- name: DeleteCredential
DELETE FROM google_credentials
WHERE owner_id = $1
`

// Delete is idempotent: deleting an absent credential is not an error
func (r *CredentialRepo) Delete(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.DB.Exec(ctx, deleteCredential, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
