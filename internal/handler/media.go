package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wayfarer/wayfarer-go/internal/middleware"
	"github.com/wayfarer/wayfarer-go/internal/service"
	"github.com/wayfarer/wayfarer-go/internal/storage"
)

// multipart framing adds some bytes on top of the file itself.
const uploadBodyLimit = service.MaxUploadBytes + 1<<20

// MediaHandler handles HTTP requests for the media service.
type MediaHandler struct {
	service *service.MediaService
	store   *storage.LocalStore
	baseURL string
}

// NewMediaHandler creates a new MediaHandler. baseURL overrides the
// scheme+host of public file URLs; when empty they are derived from the
// incoming request.
func NewMediaHandler(svc *service.MediaService, store *storage.LocalStore, baseURL string) *MediaHandler {
	return &MediaHandler{service: svc, store: store, baseURL: baseURL}
}

// HandleUpload handles POST /api/media/upload requests with a multipart
// "image" field. Oversized or wrongly-typed uploads are rejected before
// any record or file is created.
func (h *MediaHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)

	file, header, err := r.FormFile("image")
	if err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusBadRequest, messageResponse(service.ErrFileTooLarge.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, messageResponse("No file uploaded"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error uploading file", err))
		return
	}

	resp, err := h.service.Upload(r.Context(), userID, header.Filename, data, h.requestBaseURL(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrInvalidFileType):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Error uploading file", err))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleDelete handles DELETE /api/media/{id} requests. Assets uploaded by
// someone else report the same 404 as missing ones.
func (h *MediaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse("Media not found or unauthorized"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Media not found or unauthorized"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error deleting media", err))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Media deleted successfully"))
}

// HandleServe handles GET /uploads/{file} requests, the public static
// retrieval of stored binaries.
func (h *MediaHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	h.store.ServeFile(w, r, chi.URLParam(r, "file"))
}

// requestBaseURL returns the configured public base URL, or one derived
// from the incoming request.
func (h *MediaHandler) requestBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
