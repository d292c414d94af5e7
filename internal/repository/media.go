package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wayfarer/wayfarer-go/internal/model"
)

var ErrMediaNotFound = errors.New("media not found")

// MediaRepository handles upload metadata persistence for the media
// service.
type MediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new MediaRepository.
func NewMediaRepository(db *sql.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create inserts a metadata record for a stored file and sets the
// generated ID.
func (r *MediaRepository) Create(ctx context.Context, m *model.Media) error {
	query := `INSERT INTO media (filename, original_name, mime_type, size, url, uploaded_by, is_public)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		m.Filename, m.OriginalName, m.MimeType, m.Size, m.URL, m.UploadedBy, m.IsPublic,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	m.ID = id
	return nil
}

// GetOwned retrieves a media record scoped to {id, uploader}, conflating
// "absent" with "not yours".
func (r *MediaRepository) GetOwned(ctx context.Context, id, uploader int64) (*model.Media, error) {
	query := `SELECT id, filename, original_name, mime_type, size, url, uploaded_by, is_public, created_at
		FROM media WHERE id = ? AND uploaded_by = ?`

	m := &model.Media{}
	err := r.db.QueryRowContext(ctx, query, id, uploader).Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size,
		&m.URL, &m.UploadedBy, &m.IsPublic, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	return m, nil
}

// Delete removes a media record by ID.
func (r *MediaRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMediaNotFound
	}

	return nil
}
