package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"

	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/repository"
	"github.com/wayfarer/wayfarer-go/internal/storage"
)

var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrInvalidFileType = errors.New("Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
	ErrFileTooLarge    = errors.New("File is too large. Maximum size is 5MB")
)

// MaxUploadBytes is the upload size limit (5 MiB).
const MaxUploadBytes = 5 << 20

// allowedImageTypes is the MIME allow-list for uploads. The type is
// sniffed from the bytes, not trusted from the request.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaRepo is the metadata persistence needed by MediaService.
type MediaRepo interface {
	Create(ctx context.Context, m *model.Media) error
	GetOwned(ctx context.Context, id, uploader int64) (*model.Media, error)
	Delete(ctx context.Context, id int64) error
}

// FileStore persists and removes uploaded binaries.
type FileStore interface {
	Save(name string, r io.Reader) error
	Remove(name string) error
}

// MediaService handles upload and deletion of media assets.
type MediaService struct {
	repo  MediaRepo
	store FileStore
}

// NewMediaService creates a new MediaService.
func NewMediaService(repo MediaRepo, store FileStore) *MediaService {
	return &MediaService{repo: repo, store: store}
}

// Upload validates, stores, and records an uploaded file. The size check
// and MIME sniff happen before anything touches disk, so a rejected upload
// leaves no file and no record. baseURL is the scheme+host used to build
// the public URL.
func (s *MediaService) Upload(ctx context.Context, uploader int64, originalName string, data []byte, baseURL string) (model.UploadResponse, error) {
	if int64(len(data)) > MaxUploadBytes {
		return model.UploadResponse{}, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !allowedImageTypes[mtype.String()] {
		return model.UploadResponse{}, ErrInvalidFileType
	}

	stored := storage.UniqueName(originalName)
	if err := s.store.Save(stored, bytes.NewReader(data)); err != nil {
		return model.UploadResponse{}, err
	}

	m := &model.Media{
		Filename:     stored,
		OriginalName: originalName,
		MimeType:     mtype.String(),
		Size:         int64(len(data)),
		URL:          baseURL + "/uploads/" + stored,
		UploadedBy:   uploader,
		IsPublic:     true,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return model.UploadResponse{}, err
	}

	return model.UploadResponse{
		Message: "File uploaded successfully",
		File: model.UploadedFile{
			URL:  m.URL,
			ID:   m.ID,
			Name: m.OriginalName,
			Size: m.Size,
		},
	}, nil
}

// Delete removes an asset the caller uploaded: first the stored binary
// (best-effort; an already-missing file is logged and tolerated), then the
// metadata record.
func (s *MediaService) Delete(ctx context.Context, uploader, id int64) error {
	m, err := s.repo.GetOwned(ctx, id, uploader)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	if err := s.store.Remove(m.Filename); err != nil {
		slog.Warn("stored file removal failed, deleting record anyway",
			"media_id", m.ID, "filename", m.Filename, "error", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	return nil
}
