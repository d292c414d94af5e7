package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wayfarer/wayfarer-go/internal/middleware"
	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/service"
)

// PostHandler handles HTTP requests for the blog service.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleCreate handles POST /api/blogs requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("Invalid request body"))
		return
	}

	post, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		// Missing fields surface through the store error path as a 500,
		// not a validation 400.
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error creating blog", err))
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleList handles GET /api/blogs?category= requests, the public
// listing.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	posts, err := h.service.List(r.Context(), category)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error fetching blogs", err))
		return
	}
	if posts == nil {
		posts = []model.PostResponse{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleListByUser handles GET /api/blogs/user/{userId} requests, used by
// the user service to embed a user's posts into their own profile view.
func (h *PostHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse("Blog not found"))
		return
	}

	posts, err := h.service.ListByAuthor(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error fetching blogs", err))
		return
	}
	if posts == nil {
		posts = []model.PostResponse{}
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleGet handles GET /api/blogs/{id} requests.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse("Blog not found"))
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Blog not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error fetching blog", err))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleUpdate handles PUT /api/blogs/{id} requests. A post that exists
// but belongs to another author reports the same 404 as one that does not
// exist.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse("Blog not found or unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("Invalid request body"))
		return
	}

	post, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Blog not found or unauthorized"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error updating blog", err))
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleDelete handles DELETE /api/blogs/{id} requests, with the same
// ownership conflation as HandleUpdate.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse("Blog not found or unauthorized"))
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Blog not found or unauthorized"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error deleting blog", err))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Blog deleted successfully"))
}
