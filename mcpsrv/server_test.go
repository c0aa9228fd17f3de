package mcpsrv

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/acadjobs/api"
	"github.com/qyinm/acadjobs/types"
)

type fakeSource struct {
	jobs      []types.Job
	stats     types.Stats
	lastQuery types.Query
	lastLimit int
	failJobs  bool
	failJob   error
	failStats bool
	sources   []types.Source
	failSrcs  bool
}

func newFakeSource() *fakeSource {
	job := types.NewJob(
		"job-1",
		"Lecturer in Computer Science",
		"University of Bristol",
		"Bristol",
		types.Teaching,
		"Teach undergraduate programming modules.",
		"Permanent lectureship.",
		"https://jobs.bristol.ac.uk/1",
		"2024-03-15T10:30:00",
		"2024-04-30",
	)
	return &fakeSource{
		jobs:    []types.Job{job},
		sources: []types.Source{{ID: "s1", Name: "Bristol Jobs", URL: "https://bristol.ac.uk/jobs/", Location: "Bristol"}},
		stats: types.Stats{
			TotalJobs:       25,
			LondonJobs:      9,
			TopUniversities: []types.NamedCount{{Name: "University of Bristol", Count: 4}},
			TopCategories:   []types.NamedCount{{Name: "Teaching", Count: 7}},
		},
	}
}

func (f *fakeSource) GetJobs(ctx context.Context, q types.Query, limit int) (types.JobPage, error) {
	f.lastQuery = q
	f.lastLimit = limit
	if f.failJobs {
		return types.JobPage{}, errors.New("upstream jobs error")
	}
	return types.JobPage{
		Jobs:       f.jobs,
		Pagination: types.Pagination{CurrentPage: q.Page, TotalPages: 1, TotalCount: len(f.jobs)},
	}, nil
}

func (f *fakeSource) GetJob(ctx context.Context, id string) (types.Job, error) {
	if f.failJob != nil {
		return types.Job{}, f.failJob
	}
	return f.jobs[0], nil
}

func (f *fakeSource) GetStats(ctx context.Context) (types.Stats, error) {
	if f.failStats {
		return types.Stats{}, errors.New("upstream stats error")
	}
	return f.stats, nil
}

func (f *fakeSource) GetSources(ctx context.Context) ([]types.Source, error) {
	if f.failSrcs {
		return nil, errors.New("upstream sources error")
	}
	return f.sources, nil
}

// jobsOnly hides GetSources from the tool registry.
type jobsOnly struct {
	types.JobSource
}

func testTools(src types.JobSource) *tools {
	return newTools(src, &ServerOptions{})
}

func TestToolJobsSearchBuildsQuery(t *testing.T) {
	src := newFakeSource()
	result, out, err := testTools(src).jobsSearch(context.Background(), nil, jobsSearchArgs{
		Search:   "  machine learning ",
		Category: "research",
	})
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected success, got %+v", result)
	}
	want := types.Query{Search: "machine learning", Category: "Research", Page: 1}
	if src.lastQuery != want {
		t.Fatalf("unexpected query: got %+v want %+v", src.lastQuery, want)
	}
	if src.lastLimit != types.DefaultPageSize {
		t.Fatalf("unexpected limit: %d", src.lastLimit)
	}
	if len(out.Items) != 1 || out.Items[0].Snippet != "Permanent lectureship." {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
}

func TestToolJobsSearchLocation(t *testing.T) {
	src := newFakeSource()
	_, out, err := testTools(src).jobsSearch(context.Background(), nil, jobsSearchArgs{Location: " London "})
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if src.lastQuery.Location != "London" {
		t.Fatalf("location not passed through: %+v", src.lastQuery)
	}
	if out.Location != "London" {
		t.Fatalf("location not echoed: %q", out.Location)
	}
}

func TestToolSourcesList(t *testing.T) {
	src := newFakeSource()
	result, out, err := testTools(src).sourcesList(context.Background(), nil, struct{}{})
	if err != nil || result != nil {
		t.Fatalf("unexpected failure: %v %+v", err, result)
	}
	if out.Total != 1 || out.Items[0].Name != "Bristol Jobs" || out.Items[0].Location != "Bristol" {
		t.Fatalf("unexpected sources: %+v", out)
	}

	src.failSrcs = true
	result, _, _ = testTools(src).sourcesList(context.Background(), nil, struct{}{})
	if result == nil || !result.IsError {
		t.Fatalf("sources failure must return IsError")
	}
}

func TestToolsWithoutSourceLister(t *testing.T) {
	if testTools(jobsOnly{newFakeSource()}).sources != nil {
		t.Fatalf("sources must stay nil for a source without GetSources")
	}
	if testTools(newFakeSource()).sources == nil {
		t.Fatalf("sources must be set for a SourceLister")
	}
}

func TestToolJobsSearchValidation(t *testing.T) {
	cases := []jobsSearchArgs{
		{Page: -1},
		{Limit: 101},
		{Category: "Sabbatical"},
	}
	for _, args := range cases {
		result, _, err := testTools(newFakeSource()).jobsSearch(context.Background(), nil, args)
		if err != nil {
			t.Fatalf("unexpected handler error: %v", err)
		}
		if result == nil || !result.IsError {
			t.Fatalf("expected IsError for %+v", args)
		}
	}
}

func TestToolJobGetEmptyID(t *testing.T) {
	result, _, err := testTools(newFakeSource()).jobGet(context.Background(), nil, jobGetArgs{ID: "  "})
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatalf("expected IsError for empty id")
	}
}

func TestToolJobGetNotFound(t *testing.T) {
	src := newFakeSource()
	src.failJob = &api.StatusError{StatusCode: http.StatusNotFound, URL: "http://api/api/jobs/x"}
	result, _, _ := testTools(src).jobGet(context.Background(), nil, jobGetArgs{ID: "x"})
	if result == nil || !result.IsError {
		t.Fatalf("expected IsError for missing job")
	}
	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "not found") {
		t.Fatalf("unexpected message: %q", text)
	}
}

func TestToolCategoriesList(t *testing.T) {
	_, out, err := testTools(newFakeSource()).categoriesList(context.Background(), nil, categoriesListArgs{Query: "ch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Research, Teaching, Technical
	if out.Total != 3 {
		t.Fatalf("unexpected total: %d (%+v)", out.Total, out.Items)
	}
	for _, c := range out.Items {
		if c.Name == "Teaching" && c.Count != 7 {
			t.Fatalf("expected Teaching count 7, got %d", c.Count)
		}
	}
}

func TestToolCategoriesListWithoutStats(t *testing.T) {
	src := newFakeSource()
	src.failStats = true
	result, out, _ := testTools(src).categoriesList(context.Background(), nil, categoriesListArgs{})
	if result != nil {
		t.Fatalf("expected success without stats")
	}
	if out.Total != len(types.AllCategories) {
		t.Fatalf("unexpected total: %d", out.Total)
	}
}

func TestToolUpstreamFailuresIsError(t *testing.T) {
	f1 := newFakeSource()
	f1.failJobs = true
	r1, _, _ := testTools(f1).jobsSearch(context.Background(), nil, jobsSearchArgs{})
	if r1 == nil || !r1.IsError {
		t.Fatalf("jobs failure must return IsError")
	}

	f2 := newFakeSource()
	f2.failJob = errors.New("connection reset")
	r2, _, _ := testTools(f2).jobGet(context.Background(), nil, jobGetArgs{ID: "job-1"})
	if r2 == nil || !r2.IsError {
		t.Fatalf("job failure must return IsError")
	}

	f3 := newFakeSource()
	f3.failStats = true
	r3, _, _ := testTools(f3).statsGet(context.Background(), nil, struct{}{})
	if r3 == nil || !r3.IsError {
		t.Fatalf("stats failure must return IsError")
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv := startTestServer(newFakeSource(), Config{APIKey: "secret", RPS: 100, Burst: 100})
	defer srv.Close()

	resp, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAuthMiddlewareSuccess(t *testing.T) {
	for _, headers := range []map[string]string{
		{"Authorization": "Bearer secret"},
		{"X-API-Key": "secret"},
	} {
		srv := startTestServer(newFakeSource(), Config{APIKey: "secret", RPS: 100, Burst: 100})
		resp, err := postInitialize(srv.URL+"/mcp", headers)
		if err != nil {
			srv.Close()
			t.Fatalf("initialize request failed: %v", err)
		}
		resp.Body.Close()
		srv.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 with %v, got %d", headers, resp.StatusCode)
		}
	}
}

func TestAuthMiddlewareMalformedBearer(t *testing.T) {
	srv := startTestServer(newFakeSource(), Config{APIKey: "secret", RPS: 100, Burst: 100})
	defer srv.Close()

	headers := map[string]string{"Authorization": "Bearer"}
	resp, err := postInitialize(srv.URL+"/mcp", headers)
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestOriginAllowlistMiddleware(t *testing.T) {
	srv := startTestServer(newFakeSource(), Config{RPS: 100, Burst: 100})
	defer srv.Close()

	headers := map[string]string{"Origin": "https://evil.example"}
	resp, err := postInitialize(srv.URL+"/mcp", headers)
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestOriginAllowlistMiddlewareAllowed(t *testing.T) {
	srv := startTestServer(newFakeSource(), Config{AllowedOrigins: []string{"https://app.example"}, RPS: 100, Burst: 100})
	defer srv.Close()

	headers := map[string]string{"Origin": "https://app.example"}
	resp, err := postInitialize(srv.URL+"/mcp", headers)
	if err != nil {
		t.Fatalf("initialize request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("unexpected allow-origin header: %q", got)
	}
}

func TestOriginAllowlistPreflight(t *testing.T) {
	srv := startTestServer(newFakeSource(), Config{AllowedOrigins: []string{"https://app.example"}, RPS: 100, Burst: 100})
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := startTestServer(newFakeSource(), Config{RPS: 1, Burst: 1})
	defer srv.Close()

	resp1, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	defer resp1.Body.Close()
	if resp1.StatusCode != http.StatusOK {
		t.Fatalf("expected first request 200, got %d", resp1.StatusCode)
	}

	resp2, err := postInitialize(srv.URL+"/mcp", nil)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected second request 429, got %d", resp2.StatusCode)
	}
}

func TestTokenBucketRefill(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	b := newTokenBucket(2, 1)
	b.now = func() time.Time { return now }

	if !b.Allow() {
		t.Fatal("expected first token")
	}
	if b.Allow() {
		t.Fatal("expected bucket to be empty")
	}
	now = now.Add(500 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("expected refill after 500ms at 2 rps")
	}
}

func TestStatelessGetMethod(t *testing.T) {
	handler := NewHandler(NewServer(newFakeSource(), "dev", nil), StreamableOptions(Config{Stateless: true}))
	srv := httptest.NewServer(handler)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name  string
		check func(context.Context) error
		want  int
	}{
		{"no check", nil, http.StatusOK},
		{"upstream up", func(context.Context) error { return nil }, http.StatusOK},
		{"upstream down", func(context.Context) error { return errors.New("dial tcp: refused") }, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tc.check, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestMCPListTools(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(newFakeSource(), Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	for _, name := range []string{"jobs_search", "job_get", "stats_get", "categories_list", "sources_list"} {
		if !containsTool(tools.Tools, name) {
			t.Fatalf("missing tool %q", name)
		}
	}
}

func TestMCPListToolsWithoutSources(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(jobsOnly{newFakeSource()}, Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if containsTool(tools.Tools, "sources_list") {
		t.Fatalf("sources_list registered for a source that cannot list sources")
	}
}

func TestMCPCoreTools(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(newFakeSource(), Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	cases := []mcp.CallToolParams{
		{Name: "jobs_search", Arguments: map[string]any{"search": "lecturer", "category": "Teaching", "page": 1}},
		{Name: "job_get", Arguments: map[string]any{"id": "job-1"}},
		{Name: "stats_get", Arguments: map[string]any{}},
		{Name: "categories_list", Arguments: map[string]any{}},
		{Name: "sources_list", Arguments: map[string]any{}},
	}

	for _, tc := range cases {
		result, err := session.CallTool(ctx, &tc)
		if err != nil {
			t.Fatalf("call tool %s failed: %v", tc.Name, err)
		}
		if result.IsError {
			t.Fatalf("tool %s returned IsError=true", tc.Name)
		}
	}
}

func TestMCPJobsSearchStructuredOutput(t *testing.T) {
	ctx := context.Background()
	srv := startTestServer(newFakeSource(), Config{})
	defer srv.Close()

	session := connectTestClient(t, ctx, srv.URL+"/mcp")
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "jobs_search", Arguments: map[string]any{"university": "University of Bristol"}})
	if err != nil {
		t.Fatalf("call jobs_search: %v", err)
	}
	b, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out jobsSearchOutput
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	if out.University != "University of Bristol" || len(out.Items) != 1 || out.Items[0].ID != "job-1" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func startTestServer(source types.JobSource, cfg Config) *httptest.Server {
	if cfg.RPS <= 0 {
		cfg.RPS = 100
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 100
	}
	server := NewServer(source, "test", nil)
	mux := http.NewServeMux()
	mux.Handle("/mcp", WrapMCPHandler(NewHandler(server, StreamableOptions(cfg)), cfg, nil))
	mux.Handle("/healthz", NewHealthHandler(nil, nil))
	return httptest.NewServer(mux)
}

func connectTestClient(t *testing.T, ctx context.Context, endpoint string) *mcp.ClientSession {
	t.Helper()
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: endpoint}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	return session
}

func containsTool(tools []*mcp.Tool, name string) bool {
	for _, tool := range tools {
		if tool != nil && tool.Name == name {
			return true
		}
	}
	return false
}

func postInitialize(url string, headers map[string]string) (*http.Response, error) {
	payload := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "initialize",
		"params": map[string]any{
			"protocolVersion": "2025-06-18",
			"capabilities":    map[string]any{},
			"clientInfo": map[string]any{
				"name":    "test",
				"version": "1",
			},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return http.DefaultClient.Do(req)
}
