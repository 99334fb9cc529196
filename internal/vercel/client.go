package vercel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TodayDesign/vercel-project-dashboard/internal/cache"
	"github.com/TodayDesign/vercel-project-dashboard/internal/crypto"
)

// DefaultBaseURL is the public Vercel REST API.
const DefaultBaseURL = "https://api.vercel.com"

// ErrNotConfigured is returned by every call when no API token is set.
var ErrNotConfigured = errors.New("vercel API token not configured")

const maxErrorBody = 512

// APIError is returned when the Vercel API answers with a non-200 status.
type APIError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vercel API %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	token      string
	teamID     string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
}

type Option func(*Client)

// WithCache caches successful response bodies for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = hc
	}
}

func NewClient(baseURL, token, teamID string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		teamID:  teamID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API token is set.
func (c *Client) Configured() bool {
	return c.token != ""
}

// ListProjects returns the projects visible to the token.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var resp ProjectList
	if err := c.get(ctx, "/v9/projects", nil, &resp); err != nil {
		return nil, err
	}
	logMalformed(ctx, "/v9/projects", resp.Malformed)
	return resp.Projects, nil
}

// ListDeployments returns the most recent deployments of a project, newest
// first.
func (c *Client) ListDeployments(ctx context.Context, projectID string, limit int) (*DeploymentList, error) {
	query := url.Values{}
	query.Set("projectId", projectID)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var resp DeploymentList
	if err := c.get(ctx, "/v6/deployments", query, &resp); err != nil {
		return nil, err
	}
	logMalformed(ctx, "/v6/deployments", resp.Malformed)
	return &resp, nil
}

// logMalformed reports records that were kept with some fields left zero.
func logMalformed(ctx context.Context, path string, problems []error) {
	if len(problems) == 0 {
		return
	}
	zerolog.Ctx(ctx).Warn().
		Str("path", path).
		Int("records", len(problems)).
		Err(errors.Join(problems...)).
		Msg("vercel API returned records with unexpected field types")
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	if query == nil {
		query = url.Values{}
	}
	if c.teamID != "" {
		query.Set("teamId", c.teamID)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	key := crypto.CacheKey(c.baseURL, path)
	if c.cacheTTL > 0 {
		if body, ok := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(body, result); err == nil {
				return nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vercel API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if c.cacheTTL > 0 {
		c.cache.Set(ctx, key, body, c.cacheTTL)
	}
	return nil
}
