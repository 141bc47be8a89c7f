package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"slideforge/internal/apperrors"
	"slideforge/internal/handlers/render"
	"slideforge/internal/handlers/userctx"
	"slideforge/internal/models"
)

type credentialManager interface {
	Save(ctx context.Context, ownerID uuid.UUID, rawValue string) (models.Credential, error)
	Load(ctx context.Context, ownerID uuid.UUID) (models.Credential, error)
	Validate(ctx context.Context, ownerID uuid.UUID) (models.Credential, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
	TimeRemaining(ctx context.Context, ownerID uuid.UUID) (int, error)
	IsExpiringSoon(ctx context.Context, ownerID uuid.UUID) (bool, error)
}

// CredentialHandler is the Google token settings surface: store the raw
// token, show its lease status, validate it remotely, clear it
type CredentialHandler struct {
	manager credentialManager
}

func NewCredential(manager credentialManager) *CredentialHandler {
	return &CredentialHandler{manager: manager}
}

func (h *CredentialHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /credential", h.save)
	mux.HandleFunc("GET /credential", h.status)
	mux.HandleFunc("DELETE /credential", h.clear)
	mux.HandleFunc("POST /credential/validate", h.validate)

	return mux
}

type CredentialStatusResponse struct {
	Present          bool       `json:"present"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	MinutesRemaining int        `json:"minutes_remaining"`
	ExpiringSoon     bool       `json:"expiring_soon"`
	ScopesVerified   bool       `json:"scopes_verified"`
}

func (h *CredentialHandler) save(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	type SaveRequest struct {
		Token string `json:"token" validate:"required"`
	}

	data, err := render.BindAndValidate[SaveRequest](w, r)
	if err != nil {
		return
	}

	cred, err := h.manager.Save(r.Context(), user.ID, data.Token)
	if err != nil {
		render.ServiceError(w, "Failed to save credential", http.StatusInternalServerError)
		return
	}

	render.JSON(w, CredentialStatusResponse{
		Present:          true,
		ExpiresAt:        &cred.ExpiresAt,
		MinutesRemaining: int(time.Until(cred.ExpiresAt) / time.Minute),
	})
}

func (h *CredentialHandler) status(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	cred, err := h.manager.Load(r.Context(), user.ID)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrCredentialNotFound), errors.Is(err, apperrors.ErrCredentialExpired):
		render.JSON(w, CredentialStatusResponse{Present: false})
		return
	default:
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	minutes, err := h.manager.TimeRemaining(r.Context(), user.ID)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	soon, err := h.manager.IsExpiringSoon(r.Context(), user.ID)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, CredentialStatusResponse{
		Present:          true,
		ExpiresAt:        &cred.ExpiresAt,
		MinutesRemaining: minutes,
		ExpiringSoon:     soon,
		ScopesVerified:   cred.ScopesVerified,
	})
}

func (h *CredentialHandler) validate(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	type ValidateResponse struct {
		Valid bool `json:"valid"`
	}

	_, err := h.manager.Validate(r.Context(), user.ID)
	switch {
	case err == nil:
		render.JSON(w, ValidateResponse{Valid: true})
	case errors.Is(err, apperrors.ErrCredentialInvalid):
		render.JSON(w, ValidateResponse{Valid: false})
	default:
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *CredentialHandler) clear(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.manager.Clear(r.Context(), user.ID); err != nil {
		render.ServiceError(w, "Failed to clear credential", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
