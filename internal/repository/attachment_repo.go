package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/local-avatar-api/internal/database"
	"github.com/local-avatar-api/internal/models"
)

// attachmentRepo is the concrete implementation of AttachmentRepository
type attachmentRepo struct {
	db *database.DB
}

// NewAttachmentRepo creates a new attachment repository
func NewAttachmentRepo(db *database.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

// GetByID retrieves an attachment and its resized variants
func (r *attachmentRepo) GetByID(ctx context.Context, id int64) (*models.Attachment, error) {
	query := `SELECT id, object_key, mime_type, width, height, created_at FROM attachments WHERE id = $1`

	var att models.Attachment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&att.ID, &att.ObjectKey, &att.MimeType, &att.Width, &att.Height, &att.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attachment: %w", err)
	}

	sizes, err := r.sizes(ctx, id)
	if err != nil {
		return nil, err
	}
	att.Sizes = sizes

	return &att, nil
}

// sizes loads the resized variants of an attachment, smallest first
func (r *attachmentRepo) sizes(ctx context.Context, id int64) ([]models.AttachmentSize, error) {
	query := `
		SELECT attachment_id, name, object_key, width, height
		FROM attachment_sizes WHERE attachment_id = $1
		ORDER BY width * height, name
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachment sizes: %w", err)
	}
	defer rows.Close()

	var sizes []models.AttachmentSize
	for rows.Next() {
		var s models.AttachmentSize
		if err := rows.Scan(&s.AttachmentID, &s.Name, &s.ObjectKey, &s.Width, &s.Height); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

// Count returns the total number of attachments
func (r *attachmentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attachments").Scan(&count)
	return count, err
}
