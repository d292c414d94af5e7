package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wayfarer/wayfarer-go/internal/model"
	"github.com/wayfarer/wayfarer-go/internal/repository"
)

var (
	ErrPostNotFound      = errors.New("blog not found")
	ErrPostFieldsMissing = errors.New("title, content, imageUrl, category, and location are required")
)

// PostRepo is the post persistence needed by PostService.
type PostRepo interface {
	Create(ctx context.Context, p *model.Post) error
	List(ctx context.Context, category string) ([]model.Post, error)
	ListByAuthor(ctx context.Context, author int64) ([]model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetOwned(ctx context.Context, id, author int64) (*model.Post, error)
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id, author int64) error
}

// ProfileReader resolves author display names from the user service's
// public profile view.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*model.ProfileResponse, error)
}

// PostService handles blog post business logic.
type PostService struct {
	repo     PostRepo
	profiles ProfileReader
}

// NewPostService creates a new PostService.
func NewPostService(repo PostRepo, profiles ProfileReader) *PostService {
	return &PostService{repo: repo, profiles: profiles}
}

// Create creates a post authored by the token subject. All fields are
// required.
func (s *PostService) Create(ctx context.Context, author int64, req model.CreatePostRequest) (model.PostResponse, error) {
	if req.Title == "" || req.Content == "" || req.ImageURL == "" || req.Category == "" || req.Location == "" {
		return model.PostResponse{}, ErrPostFieldsMissing
	}

	p := &model.Post{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Location: req.Location,
		Author:   author,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return model.PostResponse{}, err
	}

	created, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return model.PostResponse{}, err
	}

	return created.ToResponse(""), nil
}

// List returns all posts, optionally filtered by category ("all" or empty
// means no filter), with author display names joined from the user
// service. A name lookup failure leaves that author's name empty rather
// than failing the listing.
func (s *PostService) List(ctx context.Context, category string) ([]model.PostResponse, error) {
	posts, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	result := make([]model.PostResponse, len(posts))
	for i, p := range posts {
		result[i] = p.ToResponse(s.authorName(ctx, p.Author, names))
	}

	return result, nil
}

// ListByAuthor returns all posts by one author, most recent first.
func (s *PostService) ListByAuthor(ctx context.Context, author int64) ([]model.PostResponse, error) {
	posts, err := s.repo.ListByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}

	result := make([]model.PostResponse, len(posts))
	for i, p := range posts {
		result[i] = p.ToResponse("")
	}

	return result, nil
}

// Get returns a single post with its author name joined.
func (s *PostService) Get(ctx context.Context, id int64) (model.PostResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	return p.ToResponse(s.authorName(ctx, p.Author, nil)), nil
}

// Update applies the non-nil fields of a partial update to a post the
// caller owns. The author never changes. A post that exists but is owned
// by someone else reports not-found.
func (s *PostService) Update(ctx context.Context, author, id int64, req model.UpdatePostRequest) (model.PostResponse, error) {
	p, err := s.repo.GetOwned(ctx, id, author)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostResponse{}, ErrPostNotFound
		}
		return model.PostResponse{}, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Location != nil {
		p.Location = *req.Location
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return model.PostResponse{}, err
	}

	return p.ToResponse(""), nil
}

// Delete removes a post the caller owns, with the same not-found
// conflation as Update.
func (s *PostService) Delete(ctx context.Context, author, id int64) error {
	err := s.repo.Delete(ctx, id, author)
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}

// authorName resolves an author's display name, memoized per call when a
// cache map is supplied.
func (s *PostService) authorName(ctx context.Context, author int64, cache map[int64]string) string {
	if cache != nil {
		if name, ok := cache[author]; ok {
			return name
		}
	}

	name := ""
	if profile, err := s.profiles.GetByUserID(ctx, author); err != nil {
		slog.Warn("author name lookup failed", "author", author, "error", err)
	} else {
		name = profile.Name
	}

	if cache != nil {
		cache[author] = name
	}
	return name
}
