package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/qyinm/acadjobs/types"
	"github.com/segmentio/encoding/json"
)

const (
	defaultBaseURL = "http://localhost:8001"
	userAgent      = "acadjobs/1.0 (+https://github.com/qyinm/acadjobs)"
	maxBodyBytes   = 8 << 20
	maxErrorBody   = 4096
)

// Client implements types.JobSource over the jobs REST API. It keeps no
// cache: every call is one GET and the server is always the source of truth.
type Client struct {
	baseURL  string
	client   *http.Client
	pageSize int
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	PageSize   int
	HTTPClient *http.Client
}

// Compile-time interface checks
var (
	_ types.JobSource    = (*Client)(nil)
	_ types.SourceLister = (*Client)(nil)
)

// New creates a Client for the API at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}

	return &Client{
		baseURL:  base,
		client:   httpClient,
		pageSize: pageSize,
	}, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// PageSize returns the limit used when GetJobs is called with limit <= 0.
func (c *Client) PageSize() int { return c.pageSize }

// GetJobs fetches one page of jobs for q.
func (c *Client) GetJobs(ctx context.Context, q types.Query, limit int) (types.JobPage, error) {
	if limit <= 0 {
		limit = c.pageSize
	}
	q = q.Normalized()

	body, err := c.get(ctx, "/api/jobs", q.Params(limit))
	if err != nil {
		return types.JobPage{}, fmt.Errorf("fetch jobs: %w", err)
	}

	// Older backends answer with a bare array and no pagination block.
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		var payloads []jobPayload
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return types.JobPage{}, fmt.Errorf("decode jobs: %w", err)
		}
		return types.JobPage{
			Jobs:       toJobs(payloads),
			Pagination: synthesizePagination(q.Page, limit, len(payloads)),
		}, nil
	}

	var resp jobsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.JobPage{}, fmt.Errorf("decode jobs: %w", err)
	}
	return types.JobPage{
		Jobs:       toJobs(resp.Jobs),
		Pagination: resp.Pagination.toPagination(),
	}, nil
}

// GetJob fetches a single job by id.
func (c *Client) GetJob(ctx context.Context, id string) (types.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Job{}, fmt.Errorf("fetch job: id is required")
	}

	body, err := c.get(ctx, "/api/jobs/"+url.PathEscape(id), nil)
	if err != nil {
		return types.Job{}, fmt.Errorf("fetch job %s: %w", id, err)
	}

	var payload jobPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Job{}, fmt.Errorf("decode job: %w", err)
	}
	return payload.toJob(), nil
}

// GetStats fetches the aggregate counts used by the filters and sidebar.
func (c *Client) GetStats(ctx context.Context) (types.Stats, error) {
	body, err := c.get(ctx, "/api/stats", nil)
	if err != nil {
		return types.Stats{}, fmt.Errorf("fetch stats: %w", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return resp.toStats(), nil
}

// GetSources lists the sites the backend collects postings from.
func (c *Client) GetSources(ctx context.Context) ([]types.Source, error) {
	body, err := c.get(ctx, "/api/sources", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch sources: %w", err)
	}

	var payloads []sourcePayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	return toSources(payloads), nil
}

// Health calls the API root and returns its status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/", nil)
	if err != nil {
		return "", fmt.Errorf("health check: %w", err)
	}

	var resp healthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode health: %w", err)
	}
	if resp.Status == "" {
		return "ok", nil
	}
	return resp.Status, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
