package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"slideforge/internal/apperrors"
	"slideforge/internal/models"
)

type RecordRepo struct {
	DB DBTX
}

func rowToRecord(row pgx.CollectableRow) (models.GenerationRecord, error) {
	var rec models.GenerationRecord
	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.DocumentID, &rec.Title, &rec.TemplateID,
		&rec.CreatedAt, &rec.Slides, &rec.Narration, &rec.EditURL, &rec.ViewURL, &rec.ExportURLs,
	)
	return rec, err
}

const appendRecord = `-- name: AppendRecord
INSERT INTO presentations (id, owner_id, document_id, title, template_id, created_at, slides, narration, edit_url, view_url, export_urls)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *RecordRepo) Append(ctx context.Context, record models.GenerationRecord) error {
	_, err := r.DB.Exec(ctx, appendRecord,
		record.ID, record.OwnerID, record.DocumentID, record.Title, record.TemplateID,
		record.CreatedAt, record.Slides, record.Narration, record.EditURL, record.ViewURL, record.ExportURLs,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const listRecords = `-- name: ListRecords most recent last
SELECT id, owner_id, document_id, title, template_id, created_at, slides, narration, edit_url, view_url, export_urls
FROM presentations
WHERE owner_id = $1
ORDER BY created_at ASC
`

func (r *RecordRepo) List(ctx context.Context, ownerID uuid.UUID) ([]models.GenerationRecord, error) {
	rows, _ := r.DB.Query(ctx, listRecords, ownerID)
	records, err := pgx.CollectRows(rows, rowToRecord)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return records, nil
}

const removeRecord = `-- name: RemoveRecord
DELETE FROM presentations
WHERE owner_id = $1 AND document_id = $2
`

// Remove deletes the history record only, the remote document stays as is
func (r *RecordRepo) Remove(ctx context.Context, ownerID uuid.UUID, documentID string) error {
	tag, err := r.DB.Exec(ctx, removeRecord, ownerID, documentID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo error: %w", apperrors.ErrRecordNotFound)
	}
	return nil
}
