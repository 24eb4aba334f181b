// Package cms talks to the headless CMS the blog posts are authored in. The
// sync job mirrors published posts into the local database so the public API
// keeps serving when the CMS is down.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/clinicsite-backend/internal/pkg/httpx"
	"github.com/yungbote/clinicsite-backend/internal/platform/envutil"
	"github.com/yungbote/clinicsite-backend/internal/platform/logger"
)

type Client interface {
	// ListPosts fetches one page of published posts. Pages are 1-based;
	// the returned total is the full post count across all pages.
	ListPosts(ctx context.Context, page, perPage int) ([]Post, int, error)
	GetPost(ctx context.Context, externalID int64) (*Post, error)
}

type Post struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	CoverURL    string     `json:"cover_url"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"published_at"`
}

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("CMS_TIMEOUT_SECONDS", 30)
	maxRetries := envutil.Int("CMS_MAX_RETRIES", 4)
	return Config{
		BaseURL:    strings.TrimSpace(os.Getenv("CMS_BASE_URL")),
		APIKey:     strings.TrimSpace(os.Getenv("CMS_API_KEY")),
		Timeout:    time.Duration(timeoutSec) * time.Second,
		MaxRetries: maxRetries,
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("missing CMS_BASE_URL")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 4
	}
	return &client{
		log:        log.With("client", "CMSClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	maxRetries int
}

type listPostsResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

func (c *client) ListPosts(ctx context.Context, page, perPage int) ([]Post, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("status", "published")

	raw, err := c.get(ctx, "/api/posts?"+q.Encode())
	if err != nil {
		return nil, 0, err
	}
	var payload listPostsResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, 0, fmt.Errorf("cms: decode posts page: %w", err)
	}
	return payload.Posts, payload.Total, nil
}

func (c *client) GetPost(ctx context.Context, externalID int64) (*Post, error) {
	raw, err := c.get(ctx, fmt.Sprintf("/api/posts/%d", externalID))
	if err != nil {
		return nil, err
	}
	var post Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, fmt.Errorf("cms: decode post: %w", err)
	}
	return &post, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "cms: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("cms http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) get(ctx context.Context, path string) ([]byte, error) {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.getOnce(ctx, path)
		if err == nil {
			return raw, nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return nil, err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("CMS request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return nil, errors.New("unreachable retry loop")
}

func (c *client) getOnce(ctx context.Context, path string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, nil, err
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}
