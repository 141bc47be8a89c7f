package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"slideforge/internal/apperrors"
	"slideforge/internal/handlers/userctx"
	"slideforge/internal/models"
)

// fakeCredentialManager serves canned credential state per call
type fakeCredentialManager struct {
	cred        models.Credential
	err         error
	minutes     int
	soon        bool
	saveCalls   int
	clearCalls  int
	validations int
}

func (f *fakeCredentialManager) Save(_ context.Context, ownerID uuid.UUID, rawValue string) (models.Credential, error) {
	f.saveCalls++
	if f.err != nil {
		return models.Credential{}, f.err
	}
	return models.Credential{OwnerID: ownerID, Value: rawValue, ExpiresAt: f.cred.ExpiresAt}, nil
}

func (f *fakeCredentialManager) Load(_ context.Context, _ uuid.UUID) (models.Credential, error) {
	return f.cred, f.err
}

func (f *fakeCredentialManager) Validate(_ context.Context, _ uuid.UUID) (models.Credential, error) {
	f.validations++
	return f.cred, f.err
}

func (f *fakeCredentialManager) Clear(_ context.Context, _ uuid.UUID) error {
	f.clearCalls++
	return nil
}

func (f *fakeCredentialManager) TimeRemaining(_ context.Context, _ uuid.UUID) (int, error) {
	return f.minutes, nil
}

func (f *fakeCredentialManager) IsExpiringSoon(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.soon, nil
}

// withUser injects an authenticated user the way AuthMiddleware does
func withUser(user models.User, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(userctx.New(r.Context(), user)))
	})
}

func doRequest(t *testing.T, method string, url string, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	return resp, string(respBody)
}

func Test_CredentialHandler(t *testing.T) {
	t.Parallel()

	user := models.User{ID: uuid.New(), Username: "test-user"}

	serve := func(t *testing.T, manager *fakeCredentialManager) string {
		t.Helper()

		srv := httptest.NewServer(withUser(user, NewCredential(manager).Handler()))
		t.Cleanup(srv.Close)
		return srv.URL
	}

	t.Run("save ok", func(t *testing.T) {
		expiresAt := time.Date(2026, 3, 14, 10, 50, 0, 0, time.UTC)
		manager := &fakeCredentialManager{cred: models.Credential{ExpiresAt: expiresAt}}
		url := serve(t, manager)

		resp, body := doRequest(t, http.MethodPut, url+"/credential", `{"token": "ya29.token"}`)

		require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
		require.Equal(t, 1, manager.saveCalls)
		require.Contains(t, body, `"present":true`)
	})

	t.Run("save without token fails", func(t *testing.T) {
		manager := &fakeCredentialManager{}
		url := serve(t, manager)

		resp, _ := doRequest(t, http.MethodPut, url+"/credential", `{}`)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, 0, manager.saveCalls, "invalid request must not reach the manager")
	})

	t.Run("status present", func(t *testing.T) {
		expiresAt := time.Date(2026, 3, 14, 10, 50, 0, 0, time.UTC)
		manager := &fakeCredentialManager{
			cred:    models.Credential{OwnerID: user.ID, Value: "ya29.token", ExpiresAt: expiresAt, ScopesVerified: true},
			minutes: 47,
			soon:    false,
		}
		url := serve(t, manager)

		resp, body := doRequest(t, http.MethodGet, url+"/credential", "")

		require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
		require.JSONEq(t, fmt.Sprintf(`{
			"present": true,
			"expires_at": %q,
			"minutes_remaining": 47,
			"expiring_soon": false,
			"scopes_verified": true
		}`, expiresAt.Format(time.RFC3339)), body)
	})

	t.Run("status absent", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
		}{
			{name: "never stored", err: apperrors.ErrCredentialNotFound},
			{name: "lease ran out", err: apperrors.ErrCredentialExpired},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				manager := &fakeCredentialManager{err: tt.err}
				url := serve(t, manager)

				resp, body := doRequest(t, http.MethodGet, url+"/credential", "")

				require.Equalf(t, http.StatusOK, resp.StatusCode, "absence is a state, not an error. Body: %s", body)
				require.JSONEq(t, `{
					"present": false,
					"minutes_remaining": 0,
					"expiring_soon": false,
					"scopes_verified": false
				}`, body)
			})
		}
	})

	t.Run("validate ok", func(t *testing.T) {
		manager := &fakeCredentialManager{cred: models.Credential{Value: "ya29.token", ScopesVerified: true}}
		url := serve(t, manager)

		resp, body := doRequest(t, http.MethodPost, url+"/credential/validate", "")

		require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
		require.JSONEq(t, `{"valid": true}`, body)
		require.Equal(t, 1, manager.validations)
	})

	t.Run("validate invalid credential", func(t *testing.T) {
		manager := &fakeCredentialManager{err: fmt.Errorf("%w: rejected by provider", apperrors.ErrCredentialInvalid)}
		url := serve(t, manager)

		resp, body := doRequest(t, http.MethodPost, url+"/credential/validate", "")

		require.Equalf(t, http.StatusOK, resp.StatusCode, "invalidity is an answer, not a failure. Body: %s", body)
		require.JSONEq(t, `{"valid": false}`, body)
	})

	t.Run("validate backend failure", func(t *testing.T) {
		manager := &fakeCredentialManager{err: errors.New("db gone")}
		url := serve(t, manager)

		resp, _ := doRequest(t, http.MethodPost, url+"/credential/validate", "")

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("clear ok", func(t *testing.T) {
		manager := &fakeCredentialManager{}
		url := serve(t, manager)

		resp, _ := doRequest(t, http.MethodDelete, url+"/credential", "")

		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Equal(t, 1, manager.clearCalls)
	})
}
