package model

import "time"

// Post represents a blog post in the blog database. The author is fixed at
// creation and never changes.
type Post struct {
	ID        int64
	Title     string
	Content   string
	ImageURL  string
	Category  string
	Location  string
	Author    int64
	CreatedAt time.Time
}

// CreatePostRequest represents a post creation request. The author comes
// from the bearer token.
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
	Location string `json:"location"`
}

// UpdatePostRequest represents a partial post update. Only non-nil fields
// are applied; the author cannot be changed.
type UpdatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
	Category *string `json:"category"`
	Location *string `json:"location"`
}

// PostAuthor is the author view joined onto post responses. Name is filled
// from the user service's public profile and may be empty when that lookup
// fails.
type PostAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	ImageURL  string     `json:"imageUrl"`
	Category  string     `json:"category"`
	Location  string     `json:"location"`
	Author    PostAuthor `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToResponse converts a Post to its API representation with the given
// author display name.
func (p *Post) ToResponse(authorName string) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Location:  p.Location,
		Author:    PostAuthor{ID: p.Author, Name: authorName},
		CreatedAt: p.CreatedAt,
	}
}
