package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wayfarer/wayfarer-go/internal/model"
)

// defaultTimeout bounds every cross-service call. A timeout is treated the
// same as an explicit failure response by callers.
const defaultTimeout = 5 * time.Second

// ProfileClient calls the user service over HTTP.
type ProfileClient struct {
	baseURL string
	http    *http.Client
}

// NewProfileClient creates a client for the user service at baseURL.
func NewProfileClient(baseURL string) *ProfileClient {
	return &ProfileClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// CreateProfile asks the user service to create a profile. The token is
// minted for the new user, so the user service resolves the owner from it.
// Any non-2xx status or transport error is a failure; callers roll back.
func (c *ProfileClient) CreateProfile(ctx context.Context, token string, req model.CreateProfileRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/profiles", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	return nil
}

// GetByUserID fetches a profile through the user service's public read.
func (c *ProfileClient) GetByUserID(ctx context.Context, userID int64) (*model.ProfileResponse, error) {
	url := fmt.Sprintf("%s/api/profiles/%d", c.baseURL, userID)
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
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	var profile model.ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
