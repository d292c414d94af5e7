package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/repository"
	"github.com/wayfarer/wayfarer-go/internal/storage"
)

type fakeMediaRepo struct {
	media  map[int64]*model.Media
	nextID int64
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{media: make(map[int64]*model.Media)}
}

func (r *fakeMediaRepo) Create(ctx context.Context, m *model.Media) error {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	copied := *m
	r.media[m.ID] = &copied
	return nil
}

func (r *fakeMediaRepo) GetOwned(ctx context.Context, id, uploader int64) (*model.Media, error) {
	m, ok := r.media[id]
	if !ok || m.UploadedBy != uploader {
		return nil, repository.ErrMediaNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMediaRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.media[id]; !ok {
		return repository.ErrMediaNotFound
	}
	delete(r.media, id)
	return nil
}

// pngBytes is a minimal valid PNG signature plus padding, enough for the
// content sniffer to classify it as image/png.
func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return b
}

func jpegBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, []byte{0xff, 0xd8, 0xff, 0xe0})
	return b
}

func newMediaFixture(t *testing.T) (*MediaService, *fakeMediaRepo, *storage.LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	repo := newFakeMediaRepo()
	return NewMediaService(repo, store), repo, store, dir
}

func uploadDirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestUploadStoresFileAndRecord(t *testing.T) {
	svc, repo, store, dir := newMediaFixture(t)

	resp, err := svc.Upload(context.Background(), 7, "beach.png", pngBytes(1024), "http://localhost:3004")
	require.NoError(t, err)

	assert.Equal(t, "File uploaded successfully", resp.Message)
	assert.Equal(t, "beach.png", resp.File.Name)
	assert.Equal(t, int64(1024), resp.File.Size)
	assert.Contains(t, resp.File.URL, "http://localhost:3004/uploads/")

	stored := repo.media[resp.File.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.True(t, store.Exists(stored.Filename))
	assert.Equal(t, 1, uploadDirEntries(t, dir))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, repo, _, dir := newMediaFixture(t)

	_, err := svc.Upload(context.Background(), 7, "huge.jpg", jpegBytes(MaxUploadBytes+1), "http://localhost:3004")
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// A rejected upload leaves no file and no record.
	assert.Empty(t, repo.media)
	assert.Equal(t, 0, uploadDirEntries(t, dir))
}

func TestUploadAcceptsLimitSizedFile(t *testing.T) {
	svc, _, _, _ := newMediaFixture(t)

	_, err := svc.Upload(context.Background(), 7, "big.jpg", jpegBytes(MaxUploadBytes), "http://localhost:3004")
	assert.NoError(t, err)
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc, repo, _, dir := newMediaFixture(t)

	_, err := svc.Upload(context.Background(), 7, "notes.txt", []byte("just some text"), "http://localhost:3004")
	assert.ErrorIs(t, err, ErrInvalidFileType)
	assert.Empty(t, repo.media)
	assert.Equal(t, 0, uploadDirEntries(t, dir))
}

func TestUploadSniffsDisguisedExtension(t *testing.T) {
	svc, _, _, _ := newMediaFixture(t)

	// An executable renamed to .png is judged by its bytes.
	_, err := svc.Upload(context.Background(), 7, "payload.png", []byte("#!/bin/sh\necho hi\n"), "http://localhost:3004")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestMediaDeleteOwnerScoped(t *testing.T) {
	svc, repo, store, _ := newMediaFixture(t)

	resp, err := svc.Upload(context.Background(), 7, "beach.png", pngBytes(512), "http://localhost:3004")
	require.NoError(t, err)
	stored := repo.media[resp.File.ID].Filename

	// A foreign uploader cannot see the asset.
	assert.ErrorIs(t, svc.Delete(context.Background(), 8, resp.File.ID), ErrMediaNotFound)
	assert.Len(t, repo.media, 1)

	require.NoError(t, svc.Delete(context.Background(), 7, resp.File.ID))
	assert.Empty(t, repo.media)
	assert.False(t, store.Exists(stored))
}

func TestMediaDeleteToleratesMissingFile(t *testing.T) {
	svc, repo, store, _ := newMediaFixture(t)

	resp, err := svc.Upload(context.Background(), 7, "beach.png", pngBytes(512), "http://localhost:3004")
	require.NoError(t, err)

	stored := repo.media[resp.File.ID].Filename
	require.NoError(t, store.Remove(stored))

	// The binary is already gone; the record still gets cleaned up.
	require.NoError(t, svc.Delete(context.Background(), 7, resp.File.ID))
	assert.Empty(t, repo.media)
}

func TestMediaDeleteUnknownID(t *testing.T) {
	svc, _, _, _ := newMediaFixture(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), 7, 404), ErrMediaNotFound)
}
