package generation

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
)

// CredentialValidator hands out a usable credential or fails with
// apperrors.ErrCredentialInvalid. Implemented by token.Manager.
type CredentialValidator interface {
	Validate(ctx context.Context, ownerID uuid.UUID) (models.Credential, error)
}

// SlidesClient is the remote surface the pipeline drives.
// Implemented by googleapi.Client.
type SlidesClient interface {
	CopyPresentation(ctx context.Context, templateID string, newTitle string, token string) (string, error)
	BatchUpdate(ctx context.Context, presentationID string, requests []googleapi.Request, token string) error
}

// RecordStore appends finished records to the owner's history
type RecordStore interface {
	Append(ctx context.Context, record models.GenerationRecord) error
}

type Config struct {
	// Number of slides the master template ships with, title slide included.
	// If not set then DefaultTemplateCapacity is used
	TemplateCapacity int

	// Clock override, used by tests. Defaults to time.Now
	Now func() time.Time

	Logger logger.Logger
}

// Service turns a document model into a live presentation: copy the master
// template, rewrite its placeholders, best-effort append the overflow
// slides, record the result.
type Service struct {
	capacity int

	credentials CredentialValidator
	google      SlidesClient
	records     RecordStore
	logger      logger.Logger
	now         func() time.Time
}

func NewService(cfg Config, credentials CredentialValidator, google SlidesClient, records RecordStore) (*Service, error) {
	if credentials == nil || google == nil || records == nil {
		return nil, errors.New("credentials, google and records must not be nil")
	}

	if cfg.TemplateCapacity == 0 {
		cfg.TemplateCapacity = DefaultTemplateCapacity
	}
	if cfg.TemplateCapacity < 1 {
		return nil, errors.New("template capacity must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}

	return &Service{
		capacity:    cfg.TemplateCapacity,
		credentials: credentials,
		google:      google,
		records:     records,
		logger:      cfg.Logger,
		now:         cfg.Now,
	}, nil
}

// Result of one successful generation. Warning is set when a best-effort
// step degraded (overflow slides or history persistence); the record itself
// is still complete and the remote presentation exists.
type Result struct {
	Record  models.GenerationRecord
	Warning string
}

// Generate runs the pipeline strictly in sequence: local precondition
// checks, credential validation, template copy, primary content batch,
// optional best-effort overflow batch, record assembly, persistence.
// The first four steps fail fast; failures after that degrade to a warning.
func (s *Service) Generate(ctx context.Context, ownerID uuid.UUID, doc models.DocumentModel, templateID string) (Result, error) {
	var result Result

	if err := validateInput(doc, templateID); err != nil {
		return result, err
	}

	cred, err := s.credentials.Validate(ctx, ownerID)
	if err != nil {
		return result, err
	}

	documentID, err := s.google.CopyPresentation(ctx, templateID, doc.Title, cred.Value)
	if err != nil {
		return result, fmt.Errorf("%w: %w", apperrors.ErrTemplateCopy, err)
	}
	s.logger.Info("Template copied", "owner_id", ownerID, "template_id", templateID, "document_id", documentID)

	if err := s.google.BatchUpdate(ctx, documentID, BuildContentRequests(doc), cred.Value); err != nil {
		// The copy already exists remotely at this point; it is reported in
		// the error so an operator can find the orphaned document.
		return result, fmt.Errorf("%w: document %s: %w", apperrors.ErrContentUpdate, documentID, err)
	}

	if len(doc.Slides) > s.capacity-1 {
		if err := s.google.BatchUpdate(ctx, documentID, BuildOverflowRequests(doc.Slides, s.capacity), cred.Value); err != nil {
			s.logger.Warn("Overflow slides not added", "document_id", documentID, "error", err)
			result.Warning = fmt.Sprintf("%s: %s", apperrors.ErrOverflowUpdate, err)
		}
	}

	result.Record = models.GenerationRecord{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		DocumentID: documentID,
		Title:      doc.Title,
		Slides:     doc.Slides,
		Narration:  doc.Narration,
		TemplateID: templateID,
		CreatedAt:  s.now(),
		EditURL:    editURL(documentID),
		ViewURL:    viewURL(documentID),
		ExportURLs: exportURLs(documentID),
	}

	if err := s.records.Append(ctx, result.Record); err != nil {
		s.logger.Error("Record not persisted", "document_id", documentID, "error", err)
		result.Warning = joinWarnings(result.Warning, fmt.Sprintf("%s: %s", apperrors.ErrPersistence, err))
	}

	return result, nil
}

// validateInput runs the local precondition checks: no network involved,
// nothing remote happens when they fail
func validateInput(doc models.DocumentModel, templateID string) error {
	if strings.TrimSpace(doc.Title) == "" {
		return fmt.Errorf("%w: presentation title must not be empty", apperrors.ErrValidation)
	}
	for i, slide := range doc.Slides {
		if strings.TrimSpace(slide.Title) == "" {
			return fmt.Errorf("%w: slide %d has no title", apperrors.ErrValidation, i+1)
		}
	}
	if strings.TrimSpace(templateID) == "" {
		return fmt.Errorf("%w: template id must not be empty", apperrors.ErrValidation)
	}
	return nil
}

func joinWarnings(existing string, next string) string {
	if existing == "" {
		return next
	}
	return existing + "; " + next
}
