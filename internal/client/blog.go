package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wayfarer/wayfarer-go/internal/model"
)

// BlogClient calls the blog service over HTTP.
type BlogClient struct {
	baseURL string
	http    *http.Client
}

// NewBlogClient creates a client for the blog service at baseURL.
func NewBlogClient(baseURL string) *BlogClient {
	return &BlogClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// ListByUser fetches all posts authored by the given user.
func (c *BlogClient) ListByUser(ctx context.Context, userID int64) ([]model.PostResponse, error) {
	url := fmt.Sprintf("%s/api/blogs/user/%d", c.baseURL, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("blog service returned status %d", resp.StatusCode)
	}

	var posts []model.PostResponse
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, err
	}

	return posts, nil
}
