// Package kanjiapi provides a client for the public kanjiapi.dev REST API
package kanjiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/japanesestudent/kanji-service/internal/metrics"
	"github.com/japanesestudent/kanji-service/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the public kanji API endpoint
const DefaultBaseURL = "https://kanjiapi.dev/v1"

// maxResponseSize limits a single provider response body (the Joyo list is ~30KB)
const maxResponseSize = 4 * 1024 * 1024

// Client fetches kanji reference data from the kanji API
//
// Responses are read-only reference data. When a cache is configured, successful responses
// are stored for cacheTTL. Concurrent identical requests share one upstream call, and a caller
// that gives up does not cancel it for the others.
// Failed requests are not retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
	group      singleflight.Group
}

// Option configures a Client
type Option func(*Client)

// WithCache enables response caching
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new kanji API client
//
// "baseURL" defaults to DefaultBaseURL when empty.
// "timeout" is applied to the default HTTP client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KanjiByGrade retrieves the kanji taught in a school grade
func (c *Client) KanjiByGrade(ctx context.Context, grade int) ([]string, error) {
	var kanji []string
	if err := c.get(ctx, "list", fmt.Sprintf("/kanji/grade-%d", grade), &kanji); err != nil {
		return nil, err
	}
	return kanji, nil
}

// KanjiByJLPT retrieves the kanji of a JLPT level
func (c *Client) KanjiByJLPT(ctx context.Context, level int) ([]string, error) {
	var kanji []string
	if err := c.get(ctx, "list", fmt.Sprintf("/kanji/jlpt-%d", level), &kanji); err != nil {
		return nil, err
	}
	return kanji, nil
}

// JoyoKanji retrieves the full Joyo kanji list
func (c *Client) JoyoKanji(ctx context.Context) ([]string, error) {
	var kanji []string
	if err := c.get(ctx, "list", "/kanji/joyo", &kanji); err != nil {
		return nil, err
	}
	return kanji, nil
}

// KanjiDetails retrieves the detail record of a single kanji
func (c *Client) KanjiDetails(ctx context.Context, kanji string) (*models.KanjiDetails, error) {
	var details models.KanjiDetails
	if err := c.get(ctx, "kanji", "/kanji/"+url.PathEscape(kanji), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// WordsByKanji retrieves the words that use a kanji
func (c *Client) WordsByKanji(ctx context.Context, kanji string) ([]models.Word, error) {
	var words []models.Word
	if err := c.get(ctx, "words", "/words/"+url.PathEscape(kanji), &words); err != nil {
		return nil, err
	}
	return words, nil
}

// KanjiByReading retrieves the kanji that have a reading
func (c *Client) KanjiByReading(ctx context.Context, reading string) ([]string, error) {
	var kanji []string
	if err := c.get(ctx, "reading", "/reading/"+url.PathEscape(reading), &kanji); err != nil {
		return nil, err
	}
	return kanji, nil
}

// get fetches path (through the cache if configured) and decodes the JSON body into dst
func (c *Client) get(ctx context.Context, resource, path string, dst any) error {
	body, err := c.fetch(ctx, resource, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &FetchError{Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, resource, path string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			c.logger.Warn("failed to read kanji API cache", zap.String("path", path), zap.Error(err))
		} else if ok {
			metrics.UpstreamRequests.WithLabelValues(resource, "hit").Inc()
			return body, nil
		}
	}

	// The shared request outlives any single caller; it is bounded by the HTTP client timeout.
	ch := c.group.DoChan(path, func() (any, error) {
		return c.request(context.WithoutCancel(ctx), path)
	})
	var (
		v   any
		err error
	)
	select {
	case res := <-ch:
		v, err = res.Val, res.Err
	case <-ctx.Done():
		err = &FetchError{Path: path, Err: ctx.Err()}
	}
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(resource, "error").Inc()
		c.logger.Error("kanji API request failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues(resource, "ok").Inc()
	body := v.([]byte)

	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body, c.cacheTTL); err != nil {
			c.logger.Warn("failed to write kanji API cache", zap.String("path", path), zap.Error(err))
		}
	}

	return body, nil
}

func (c *Client) request(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &FetchError{Path: path, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Path: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &FetchError{Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return body, nil
}
