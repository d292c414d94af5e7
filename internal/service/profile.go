package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/repository"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrNameRequired    = errors.New("name is required")
)

// ProfileRepo is the profile persistence needed by ProfileService.
type ProfileRepo interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, userID int64) error
}

// PostLister is the slice of the blog service the user service talks to.
type PostLister interface {
	ListByUser(ctx context.Context, userID int64) ([]model.PostResponse, error)
}

// ProfileService handles profile business logic.
type ProfileService struct {
	repo  ProfileRepo
	blogs PostLister
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo ProfileRepo, blogs PostLister) *ProfileService {
	return &ProfileService{repo: repo, blogs: blogs}
}

// Create creates a profile for the given user ID. At most one profile can
// exist per user; the UNIQUE key decides concurrent races.
func (s *ProfileService) Create(ctx context.Context, userID int64, req model.CreateProfileRequest) (model.ProfileResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.ProfileResponse{}, ErrNameRequired
	}

	p := &model.Profile{
		UserID:             userID,
		Name:               strings.TrimSpace(req.Name),
		ProfilePicture:     req.ProfilePicture,
		Bio:                req.Bio,
		Location:           req.Location,
		EmailNotifications: true,
		Newsletter:         true,
	}
	if p.ProfilePicture == "" {
		p.ProfilePicture = model.DefaultProfilePicture
	}
	if req.SocialLinks != nil {
		p.Twitter = req.SocialLinks.Twitter
		p.Instagram = req.SocialLinks.Instagram
		p.Facebook = req.SocialLinks.Facebook
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			return model.ProfileResponse{}, ErrProfileExists
		}
		return model.ProfileResponse{}, err
	}

	created, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	return created.ToResponse(), nil
}

// GetOwn returns the user's profile with their posts embedded. The post
// listing is fetched from the blog service and degrades to an empty list
// when that call fails; a broken blog service must not break profile
// reads.
func (s *ProfileService) GetOwn(ctx context.Context, userID int64) (model.OwnProfileResponse, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return model.OwnProfileResponse{}, ErrProfileNotFound
		}
		return model.OwnProfileResponse{}, err
	}

	posts, err := s.blogs.ListByUser(ctx, userID)
	if err != nil {
		slog.Warn("post listing failed, returning profile without blogs",
			"user_id", userID, "error", err)
		posts = nil
	}
	if posts == nil {
		posts = []model.PostResponse{}
	}

	return model.OwnProfileResponse{
		Profile: p.ToResponse(),
		Blogs:   posts,
	}, nil
}

// GetByUserID is the public, unauthenticated profile read.
func (s *ProfileService) GetByUserID(ctx context.Context, userID int64) (model.ProfileResponse, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return model.ProfileResponse{}, ErrProfileNotFound
		}
		return model.ProfileResponse{}, err
	}

	return p.ToResponse(), nil
}

// Update applies the allow-listed fields of a partial update and refreshes
// the updated timestamp. Fields not in the request are left untouched.
func (s *ProfileService) Update(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.ProfileResponse, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return model.ProfileResponse{}, ErrProfileNotFound
		}
		return model.ProfileResponse{}, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfilePicture != nil {
		p.ProfilePicture = *req.ProfilePicture
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.SocialLinks != nil {
		p.Twitter = req.SocialLinks.Twitter
		p.Instagram = req.SocialLinks.Instagram
		p.Facebook = req.SocialLinks.Facebook
	}
	if req.Preferences != nil {
		p.EmailNotifications = req.Preferences.EmailNotifications
		p.Newsletter = req.Preferences.Newsletter
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return model.ProfileResponse{}, err
	}

	updated, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	return updated.ToResponse(), nil
}

// Delete removes the user's profile.
func (s *ProfileService) Delete(ctx context.Context, userID int64) error {
	err := s.repo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return ErrProfileNotFound
	}
	return err
}
