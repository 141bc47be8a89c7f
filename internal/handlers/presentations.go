package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"slideforge/internal/apperrors"
	"slideforge/internal/handlers/render"
	"slideforge/internal/handlers/userctx"
	"slideforge/internal/models"
	"slideforge/internal/service/generation"
)

type generationService interface {
	Generate(ctx context.Context, ownerID uuid.UUID, doc models.DocumentModel, templateID string) (generation.Result, error)
}

type recordStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.GenerationRecord, error)
	Remove(ctx context.Context, ownerID uuid.UUID, documentID string) error
}

type PresentationHandler struct {
	generator generationService
	records   recordStore

	// Template used when the request does not name one
	defaultTemplateID string
}

func NewPresentation(generator generationService, records recordStore, defaultTemplateID string) *PresentationHandler {
	return &PresentationHandler{
		generator:         generator,
		records:           records,
		defaultTemplateID: defaultTemplateID,
	}
}

func (h *PresentationHandler) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /presentations", h.generate)
	mux.HandleFunc("GET /presentations", h.list)
	mux.HandleFunc("DELETE /presentations/{documentID}", h.remove)

	return mux
}

type GenerateResponse struct {
	Record  models.GenerationRecord `json:"record"`
	Warning string                  `json:"warning,omitempty"`
}

func (h *PresentationHandler) generate(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	type SlideRequest struct {
		ID      string `json:"id"`
		Title   string `json:"title" validate:"required"`
		Content string `json:"content"`
	}
	type NarrationRequest struct {
		ID          string `json:"id"`
		SlideNumber int    `json:"slide_number" validate:"min=1"`
		Text        string `json:"text"`
		Timestamp   string `json:"timestamp"`
	}
	type GenerateRequest struct {
		Title      string             `json:"title" validate:"required"`
		Slides     []SlideRequest     `json:"slides" validate:"required,min=1,dive"`
		Narration  []NarrationRequest `json:"narration,omitempty" validate:"omitempty,dive"`
		TemplateID string             `json:"template_id"`
	}

	data, err := render.BindAndValidate[GenerateRequest](w, r)
	if err != nil {
		return
	}

	doc := models.DocumentModel{Title: data.Title}
	for _, s := range data.Slides {
		doc.Slides = append(doc.Slides, models.Slide{ID: s.ID, Title: s.Title, Content: s.Content})
	}
	for _, n := range data.Narration {
		doc.Narration = append(doc.Narration, models.NarrationEntry{
			ID: n.ID, SlideNumber: n.SlideNumber, Text: n.Text, Timestamp: n.Timestamp,
		})
	}

	templateID := data.TemplateID
	if templateID == "" {
		templateID = h.defaultTemplateID
	}

	result, err := h.generator.Generate(r.Context(), user.ID, doc, templateID)
	if err != nil {
		// Route the caller to the right remedial action: fix the input, fix
		// the credential or wait out the remote service
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			render.ServiceError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrCredentialInvalid):
			render.ServiceError(w, "Google API token is invalid or expired, refresh it in token settings", http.StatusUnauthorized)
		case errors.Is(err, apperrors.ErrTemplateCopy):
			render.ServiceError(w, err.Error(), http.StatusBadGateway)
		case errors.Is(err, apperrors.ErrContentUpdate):
			render.ServiceError(w, err.Error(), http.StatusBadGateway)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSONWithStatus(w, GenerateResponse{Record: result.Record, Warning: result.Warning}, http.StatusCreated)
}

func (h *PresentationHandler) list(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	records, err := h.records.List(r.Context(), user.ID)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.GenerationRecord{}
	}

	render.JSON(w, records)
}

func (h *PresentationHandler) remove(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	err := h.records.Remove(r.Context(), user.ID, r.PathValue("documentID"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperrors.ErrRecordNotFound):
		render.ServiceError(w, "Presentation not found", http.StatusNotFound)
	default:
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}
