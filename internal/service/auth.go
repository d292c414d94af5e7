package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wayfarer/wayfarer-go/internal/crypto"
	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileCreation    = errors.New("failed to create user profile")
)

// profileCreateTimeout bounds the signup call to the user service. A
// timeout triggers the same rollback as an explicit failure.
const profileCreateTimeout = 5 * time.Second

// UserRepo is the credential persistence needed by AuthService.
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// ProfileAPI is the slice of the user service the auth service talks to.
type ProfileAPI interface {
	CreateProfile(ctx context.Context, token string, req model.CreateProfileRequest) error
	GetByUserID(ctx context.Context, userID int64) (*model.ProfileResponse, error)
}

// AuthService handles signup, login, and token verification.
type AuthService struct {
	repo      UserRepo
	profiles  ProfileAPI
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo UserRepo, profiles ProfileAPI, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		profiles:  profiles,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a credential, then asks the user service to create the
// matching profile. The two writes are not atomic: if the profile call
// fails or times out, the credential is deleted again and the whole signup
// fails. There is no retry and no durable record of the in-flight state; a
// rollback that itself fails leaves an orphaned credential behind.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (model.SignupResponse, error) {
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.SignupResponse{}, err
	}

	user := &model.User{
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.SignupResponse{}, ErrEmailTaken
		}
		return model.SignupResponse{}, err
	}

	// Token minted for the new user; the user service resolves the profile
	// owner from it.
	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.SignupResponse{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, profileCreateTimeout)
	defer cancel()

	err = s.profiles.CreateProfile(callCtx, token, model.CreateProfileRequest{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if delErr := s.repo.Delete(ctx, user.ID); delErr != nil {
			slog.Warn("signup rollback failed, orphaned credential remains",
				"user_id", user.ID, "error", delErr)
		}
		slog.Warn("profile creation failed during signup", "user_id", user.ID, "error", err)
		return model.SignupResponse{}, ErrProfileCreation
	}

	return model.SignupResponse{
		Message: "User registered successfully",
		Token:   token,
		User: model.UserResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}

// Login authenticates a credential and returns a fresh token. Unknown
// email and wrong password produce the same error so callers cannot
// enumerate accounts. The profile embed is best-effort and null when the
// user service is unreachable.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	var profile *model.ProfileResponse
	if p, err := s.profiles.GetByUserID(ctx, user.ID); err != nil {
		slog.Warn("profile fetch failed during login", "user_id", user.ID, "error", err)
	} else {
		profile = p
	}

	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Token: token,
		User: model.LoginUser{
			ID:      user.ID,
			Email:   user.Email,
			Profile: profile,
		},
	}, nil
}

// GetUser resolves a verified token subject to its public credential view.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}

// normalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
