// Package client is the HTTP client for the story API. It backs the editor
// session and story cards with the server calls they need: the optimistic
// like toggle, comment posting, and story document sync.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"storyweaver-server/internal/models"
	"storyweaver-server/internal/social"
)

// Compile-time checks
var (
	_ social.LikeToggler   = (*APIClient)(nil)
	_ social.CommentPoster = (*APIClient)(nil)
)

// APIClient talks to the story server over HTTP with Bearer auth.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAPIClient creates a client rooted at baseURL (e.g. "http://localhost:8080").
func NewAPIClient(baseURL, token string, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("APIClient"),
	}
}

// SetToken replaces the Bearer token used on subsequent requests.
func (c *APIClient) SetToken(token string) {
	c.token = token
}

// ToggleLike flips the caller's like on a story and returns the canonical
// liker ID list.
func (c *APIClient) ToggleLike(ctx context.Context, storyID string) ([]string, error) {
	var likers []string
	err := c.do(ctx, http.MethodPost, "/api/stories/"+storyID+"/like", nil, &likers)
	if err != nil {
		return nil, err
	}
	return likers, nil
}

// PostComment creates a comment and returns it author-populated.
func (c *APIClient) PostComment(ctx context.Context, storyID, text string) (models.Comment, error) {
	var comment models.Comment
	body := struct {
		Text string `json:"text"`
	}{Text: text}
	err := c.do(ctx, http.MethodPost, "/api/stories/"+storyID+"/comment", body, &comment)
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// CreateStory persists a draft and returns the canonical story with its ID.
func (c *APIClient) CreateStory(ctx context.Context, story models.Story) (models.Story, error) {
	var created models.Story
	if err := c.do(ctx, http.MethodPost, "/api/stories", story, &created); err != nil {
		return models.Story{}, err
	}
	return created, nil
}

// UpdateStory overwrites the story document on the server.
func (c *APIClient) UpdateStory(ctx context.Context, story models.Story) (models.Story, error) {
	var updated models.Story
	if err := c.do(ctx, http.MethodPut, "/api/stories/"+story.ID, story, &updated); err != nil {
		return models.Story{}, err
	}
	return updated, nil
}

// GetStory fetches a story with its likes and comments populated.
func (c *APIClient) GetStory(ctx context.Context, storyID string) (models.Story, error) {
	var story models.Story
	if err := c.do(ctx, http.MethodGet, "/api/stories/"+storyID, nil, &story); err != nil {
		return models.Story{}, err
	}
	return story, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp, path)
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// errorFromResponse maps an API error body back to the shared sentinel
// errors so callers can branch with errors.Is.
func (c *APIClient) errorFromResponse(resp *http.Response, path string) error {
	var errResp models.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &errResp)

	c.logger.Debug("API error response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("code", errResp.Code),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if errResp.Code == models.ErrCodeNotOwner {
			return models.ErrNotOwner
		}
		return models.ErrUnauthorized
	case http.StatusForbidden:
		return models.ErrForbidden
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", models.ErrBadRequest, errResp.Message)
	default:
		return fmt.Errorf("server returned %d for %s: %s", resp.StatusCode, path, errResp.Message)
	}
}
