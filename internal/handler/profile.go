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

// ProfileHandler handles HTTP requests for the user service.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleCreate handles POST /api/profiles requests. The profile owner is
// the token subject; during signup the auth service calls this with a
// token minted for the brand-new user.
func (h *ProfileHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("Invalid request body"))
		return
	}

	profile, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrProfileExists) {
			writeJSON(w, http.StatusBadRequest, messageResponse("Profile already exists"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error creating profile", err))
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// HandleGetMe handles GET /api/profiles/me requests.
func (h *ProfileHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	resp, err := h.service.GetOwn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error fetching profile", err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGetByUserID handles GET /api/profiles/{userId} requests, the
// public unauthenticated read.
func (h *ProfileHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, messageResponse("Profile not found"))
		return
	}

	profile, err := h.service.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error fetching profile", err))
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdate handles PUT /api/profiles/me requests.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("Invalid request body"))
		return
	}

	if errs := validateProfileUpdate(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors(errs))
		return
	}

	profile, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error updating profile", err))
		return
	}

	writeJSON(w, http.StatusOK, model.UpdateProfileResponse{
		Message: "Profile updated successfully",
		Profile: profile,
	})
}

// HandleDelete handles DELETE /api/profiles/me requests.
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("Profile not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error deleting profile", err))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Profile deleted successfully"))
}

// validateProfileUpdate checks the optional fields that carry length
// rules: name at least 2 characters, bio at most 500.
func validateProfileUpdate(req model.UpdateProfileRequest) map[string]string {
	errs := make(map[string]string)

	if req.Name != nil && len(*req.Name) < 2 {
		errs["name"] = "Name must be at least 2 characters long"
	}
	if req.Bio != nil && len(*req.Bio) > 500 {
		errs["bio"] = "Bio must not exceed 500 characters"
	}

	return errs
}
