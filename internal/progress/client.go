package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/japanesestudent/kanji-service/internal/models"
)

// learnedKanjiPath is the Progress API endpoint
const learnedKanjiPath = "/api/learned-kanji"

// ErrUnauthorized is returned when the Progress API rejects the session
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-success Progress API response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("progress API returned status %d: %s", e.StatusCode, e.Message)
}

// Client calls the learned kanji Progress API on behalf of a signed-in user
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Progress API client
//
// "httpClient" defaults to http.DefaultClient when nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchLearned retrieves the full learned kanji set of the token owner
func (c *Client) FetchLearned(ctx context.Context, token string) (*models.LearnedKanjiList, error) {
	var list models.LearnedKanjiList
	if err := c.do(ctx, http.MethodGet, learnedKanjiPath, token, nil, &list); err != nil {
		return nil, err
	}
	if list.Kanji == nil {
		list.Kanji = []string{}
	}
	return &list, nil
}

// IsLearned checks whether a single kanji is learned
func (c *Client) IsLearned(ctx context.Context, token, kanji string) (bool, error) {
	var status models.LearnedStatus
	path := learnedKanjiPath + "?kanji=" + url.QueryEscape(kanji)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &status); err != nil {
		return false, err
	}
	return status.Learned, nil
}

// Mark marks a kanji as learned and returns the server message
func (c *Client) Mark(ctx context.Context, token, kanji string) (string, error) {
	var resp models.MessageResponse
	body := models.LearnedKanjiRequest{Kanji: kanji}
	if err := c.do(ctx, http.MethodPost, learnedKanjiPath, token, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Unmark removes a kanji from the learned set and returns the server message
func (c *Client) Unmark(ctx context.Context, token, kanji string) (string, error) {
	var resp models.MessageResponse
	body := models.LearnedKanjiRequest{Kanji: kanji}
	if err := c.do(ctx, http.MethodDelete, learnedKanjiPath, token, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("progress API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
