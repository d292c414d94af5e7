package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/wayfarer/wayfarer-go/internal/middleware"
	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/service"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthHandler handles HTTP requests for the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignup handles POST /api/auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("Invalid request body"))
		return
	}

	if errs := validateSignup(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors(errs))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusBadRequest, messageResponse("Email already registered"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Error creating user", err))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("Invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse("Email and password are required"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, messageResponse("Invalid credentials"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error logging in", err))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleVerify handles GET /api/auth/verify requests. The JWT middleware
// has already rejected missing, malformed, and expired tokens.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse("No token provided"))
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, messageResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error verifying token", err))
		return
	}

	writeJSON(w, http.StatusOK, model.VerifyResponse{User: user})
}

// validateSignup mirrors the field validation of the signup form: all
// fields present, plausible email, password of at least 8 characters.
func validateSignup(req model.SignupRequest) map[string]string {
	errs := make(map[string]string)

	if req.Email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email"
	}
	if req.Password == "" {
		errs["password"] = "Password is required"
	} else if len(req.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters long"
	}
	if req.Name == "" {
		errs["name"] = "Name is required"
	}

	return errs
}
