package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"slideforge/internal/apperrors"
	"slideforge/internal/models"
	"slideforge/internal/service/generation"
)

type fakeGenerator struct {
	result generation.Result
	err    error

	calls      int
	gotOwnerID uuid.UUID
	gotDoc     models.DocumentModel
	gotTplID   string
}

func (f *fakeGenerator) Generate(_ context.Context, ownerID uuid.UUID, doc models.DocumentModel, templateID string) (generation.Result, error) {
	f.calls++
	f.gotOwnerID = ownerID
	f.gotDoc = doc
	f.gotTplID = templateID
	return f.result, f.err
}

type fakeRecordStore struct {
	records    []models.GenerationRecord
	listErr    error
	removeErr  error
	removedDoc string
}

func (f *fakeRecordStore) List(_ context.Context, _ uuid.UUID) ([]models.GenerationRecord, error) {
	return f.records, f.listErr
}

func (f *fakeRecordStore) Remove(_ context.Context, _ uuid.UUID, documentID string) error {
	f.removedDoc = documentID
	return f.removeErr
}

func Test_PresentationHandler(t *testing.T) {
	t.Parallel()

	user := models.User{ID: uuid.New(), Username: "test-user"}

	serve := func(t *testing.T, generator *fakeGenerator, records *fakeRecordStore) string {
		t.Helper()

		h := NewPresentation(generator, records, "default-template")
		srv := httptest.NewServer(withUser(user, h.Handler()))
		t.Cleanup(srv.Close)
		return srv.URL
	}

	validBody := `{
		"title": "Demo Deck",
		"slides": [
			{"id": "s1", "title": "Intro", "content": "Welcome"}
		],
		"narration": [
			{"id": "n1", "slide_number": 1, "text": "Hello", "timestamp": "00:00"}
		]
	}`

	t.Run("generate ok", func(t *testing.T) {
		record := models.GenerationRecord{
			ID:         uuid.New(),
			OwnerID:    user.ID,
			DocumentID: "doc-123",
			Title:      "Demo Deck",
			ViewURL:    "https://docs.google.com/presentation/d/doc-123",
		}
		generator := &fakeGenerator{result: generation.Result{Record: record}}
		url := serve(t, generator, &fakeRecordStore{})

		resp, body := doRequest(t, http.MethodPost, url+"/presentations", validBody)

		require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)
		require.Equal(t, 1, generator.calls)
		require.Equal(t, user.ID, generator.gotOwnerID, "owner must come from the authenticated user")
		require.Equal(t, "Demo Deck", generator.gotDoc.Title)
		require.Len(t, generator.gotDoc.Slides, 1)
		require.Len(t, generator.gotDoc.Narration, 1)
		require.Equal(t, "default-template", generator.gotTplID, "default template used when the request names none")

		var got GenerateResponse
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		require.Equal(t, record.DocumentID, got.Record.DocumentID)
		require.Empty(t, got.Warning)
	})

	t.Run("generate with explicit template", func(t *testing.T) {
		generator := &fakeGenerator{}
		url := serve(t, generator, &fakeRecordStore{})

		body := `{"title": "Deck", "slides": [{"title": "One"}], "template_id": "my-template"}`
		resp, _ := doRequest(t, http.MethodPost, url+"/presentations", body)

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "my-template", generator.gotTplID)
	})

	t.Run("generate with warning", func(t *testing.T) {
		generator := &fakeGenerator{result: generation.Result{
			Record:  models.GenerationRecord{DocumentID: "doc-123"},
			Warning: "overflow slides could not be added: layout rejected",
		}}
		url := serve(t, generator, &fakeRecordStore{})

		resp, body := doRequest(t, http.MethodPost, url+"/presentations", validBody)

		require.Equal(t, http.StatusCreated, resp.StatusCode, "a degraded generation is still a created presentation")
		require.Contains(t, body, "layout rejected")
	})

	t.Run("generate error mapping", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{
				name:       "bad input",
				err:        fmt.Errorf("%w: presentation title must not be empty", apperrors.ErrValidation),
				wantStatus: http.StatusBadRequest,
			},
			{
				name:       "invalid credential",
				err:        fmt.Errorf("%w: no stored credential", apperrors.ErrCredentialInvalid),
				wantStatus: http.StatusUnauthorized,
			},
			{
				name:       "copy failed",
				err:        fmt.Errorf("%w: template not found", apperrors.ErrTemplateCopy),
				wantStatus: http.StatusBadGateway,
			},
			{
				name:       "content update failed",
				err:        fmt.Errorf("%w: document doc-123: boom", apperrors.ErrContentUpdate),
				wantStatus: http.StatusBadGateway,
			},
			{
				name:       "unknown failure",
				err:        errors.New("something else"),
				wantStatus: http.StatusInternalServerError,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				generator := &fakeGenerator{err: tt.err}
				url := serve(t, generator, &fakeRecordStore{})

				resp, body := doRequest(t, http.MethodPost, url+"/presentations", validBody)

				require.Equalf(t, tt.wantStatus, resp.StatusCode, "not expected code. Body: %s", body)
			})
		}
	})

	t.Run("generate invalid request body", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "no title", body: `{"slides": [{"title": "One"}]}`},
			{name: "no slides", body: `{"title": "Deck"}`},
			{name: "empty slides", body: `{"title": "Deck", "slides": []}`},
			{name: "slide without title", body: `{"title": "Deck", "slides": [{"content": "text"}]}`},
			{name: "not a json", body: `not-json`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				generator := &fakeGenerator{}
				url := serve(t, generator, &fakeRecordStore{})

				resp, _ := doRequest(t, http.MethodPost, url+"/presentations", tt.body)

				require.Equal(t, http.StatusBadRequest, resp.StatusCode)
				require.Equal(t, 0, generator.calls, "invalid request must not reach the generator")
			})
		}
	})

	t.Run("list ok", func(t *testing.T) {
		records := &fakeRecordStore{records: []models.GenerationRecord{
			{DocumentID: "doc-1"},
			{DocumentID: "doc-2"},
		}}
		url := serve(t, &fakeGenerator{}, records)

		resp, body := doRequest(t, http.MethodGet, url+"/presentations", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got []models.GenerationRecord
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		require.Len(t, got, 2)
		require.Equal(t, "doc-1", got[0].DocumentID)
	})

	t.Run("list empty history is an empty array", func(t *testing.T) {
		url := serve(t, &fakeGenerator{}, &fakeRecordStore{})

		resp, body := doRequest(t, http.MethodGet, url+"/presentations", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `[]`, body, "empty history must not render as null")
	})

	t.Run("remove ok", func(t *testing.T) {
		records := &fakeRecordStore{}
		url := serve(t, &fakeGenerator{}, records)

		resp, _ := doRequest(t, http.MethodDelete, url+"/presentations/doc-123", "")

		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		require.Equal(t, "doc-123", records.removedDoc)
	})

	t.Run("remove not existed record", func(t *testing.T) {
		records := &fakeRecordStore{removeErr: apperrors.ErrRecordNotFound}
		url := serve(t, &fakeGenerator{}, records)

		resp, _ := doRequest(t, http.MethodDelete, url+"/presentations/doc-123", "")

		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
