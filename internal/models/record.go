package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is the immutable result of one successful generation run.
// All URLs are derived from the document id alone; no remote call is needed
// to produce them.
type GenerationRecord struct {
	ID         uuid.UUID         `json:"id"`
	OwnerID    uuid.UUID         `json:"owner_id"`
	DocumentID string            `json:"document_id"`
	Title      string            `json:"title"`
	Slides     []Slide           `json:"slides"`
	Narration  []NarrationEntry  `json:"narration,omitempty"`
	TemplateID string            `json:"template_id"`
	CreatedAt  time.Time         `json:"created_at"`
	EditURL    string            `json:"edit_url"`
	ViewURL    string            `json:"view_url"`
	ExportURLs map[string]string `json:"export_urls"`
}
