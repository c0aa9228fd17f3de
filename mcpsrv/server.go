package mcpsrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/acadjobs/api"
	"github.com/qyinm/acadjobs/logging"
	"github.com/qyinm/acadjobs/mcpsrv/dto"
	"github.com/qyinm/acadjobs/types"
)

const maxLimit = 100

type jobsSearchArgs struct {
	Search     string `json:"search,omitempty" jsonschema:"Optional free-text search over title and description"`
	Category   string `json:"category,omitempty" jsonschema:"Optional category: Research, Teaching, Administrative, Technical, Internship, Fellowship, PhD"`
	University string `json:"university,omitempty" jsonschema:"Optional university name"`
	Location   string `json:"location,omitempty" jsonschema:"Optional location, e.g. London"`
	Page       int    `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Optional page size (1-100)"`
}

type jobGetArgs struct {
	ID string `json:"id" jsonschema:"Job id"`
}

type categoriesListArgs struct {
	Query string `json:"query,omitempty" jsonschema:"Optional substring filter on category names"`
}

type jobsSearchOutput struct {
	Search     string         `json:"search"`
	Category   string         `json:"category"`
	University string         `json:"university"`
	Location   string         `json:"location"`
	Pagination dto.Pagination `json:"pagination"`
	Items      []dto.Job      `json:"items"`
}

type jobGetOutput struct {
	Item dto.JobDetail `json:"item"`
}

type statsGetOutput struct {
	Stats dto.Stats `json:"stats"`
}

type categoriesListOutput struct {
	Query string         `json:"query"`
	Total int            `json:"total"`
	Items []dto.Category `json:"items"`
}

type sourcesListOutput struct {
	Total int          `json:"total"`
	Items []dto.Source `json:"items"`
}

type ServerOptions struct {
	PageSize int
	Logger   *logging.Logger
}

// tools carries what the tool handlers need. sources is nil when the
// job source cannot list its origins.
type tools struct {
	source   types.JobSource
	sources  types.SourceLister
	log      *logging.Logger
	pageSize int
}

func NewServer(source types.JobSource, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	t := newTools(source, opts)

	server := mcp.NewServer(&mcp.Implementation{Name: "acadjobs", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "jobs_search",
		Description: "Search academic job listings by text, category and university, one page at a time.",
	}, t.jobsSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "job_get",
		Description: "Get one job listing with its full description by id.",
	}, t.jobGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats_get",
		Description: "Get totals and the top universities and categories.",
	}, t.statsGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "categories_list",
		Description: "List the job categories usable as a jobs_search filter.",
	}, t.categoriesList)

	if t.sources != nil {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "sources_list",
			Description: "List the university careers sites job listings are collected from.",
		}, t.sourcesList)
	}

	return server
}

func newTools(source types.JobSource, opts *ServerOptions) *tools {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	t := &tools{source: source, log: log, pageSize: pageSize}
	if lister, ok := source.(types.SourceLister); ok {
		t.sources = lister
	}
	return t
}

func (t *tools) jobsSearch(ctx context.Context, _ *mcp.CallToolRequest, args jobsSearchArgs) (*mcp.CallToolResult, jobsSearchOutput, error) {
	page := args.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return errorToolResult("page must be >= 1"), jobsSearchOutput{}, nil
	}

	limit := args.Limit
	if limit == 0 {
		limit = t.pageSize
	}
	if limit < 1 || limit > maxLimit {
		return errorToolResult(fmt.Sprintf("limit must be between 1 and %d", maxLimit)), jobsSearchOutput{}, nil
	}

	category, err := parseCategory(args.Category)
	if err != nil {
		return errorToolResult(err.Error()), jobsSearchOutput{}, nil
	}

	q := types.Query{
		Search:     strings.TrimSpace(args.Search),
		Category:   category,
		University: strings.TrimSpace(args.University),
		Location:   strings.TrimSpace(args.Location),
		Page:       page,
	}
	result, err := t.source.GetJobs(ctx, q, limit)
	if err != nil {
		t.log.Error("jobs_search upstream failure", "err", err, "page", page)
		return errorToolResult("fetch jobs failed"), jobsSearchOutput{}, nil
	}

	return nil, jobsSearchOutput{
		Search:     q.Search,
		Category:   q.Category,
		University: q.University,
		Location:   q.Location,
		Pagination: dto.FromPagination(result.Pagination),
		Items:      dto.FromJobs(result.Jobs),
	}, nil
}

func (t *tools) jobGet(ctx context.Context, _ *mcp.CallToolRequest, args jobGetArgs) (*mcp.CallToolResult, jobGetOutput, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return errorToolResult("id is required"), jobGetOutput{}, nil
	}

	job, err := t.source.GetJob(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return errorToolResult(fmt.Sprintf("job %q not found", id)), jobGetOutput{}, nil
		}
		t.log.Error("job_get upstream failure", "err", err, "id", id)
		return errorToolResult("fetch job failed"), jobGetOutput{}, nil
	}

	return nil, jobGetOutput{Item: dto.FromJobDetail(job)}, nil
}

func (t *tools) statsGet(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, statsGetOutput, error) {
	stats, err := t.source.GetStats(ctx)
	if err != nil {
		t.log.Error("stats_get upstream failure", "err", err)
		return errorToolResult("fetch stats failed"), statsGetOutput{}, nil
	}
	return nil, statsGetOutput{Stats: dto.FromStats(stats)}, nil
}

// categoriesList never fails on the upstream: counts are attached when
// stats are available and left out otherwise.
func (t *tools) categoriesList(ctx context.Context, _ *mcp.CallToolRequest, args categoriesListArgs) (*mcp.CallToolResult, categoriesListOutput, error) {
	query := strings.ToLower(strings.TrimSpace(args.Query))
	filtered := make([]types.Category, 0, len(types.AllCategories))
	for _, c := range types.AllCategories {
		if query == "" || strings.Contains(strings.ToLower(c.String()), query) {
			filtered = append(filtered, c)
		}
	}

	var top []types.NamedCount
	if stats, err := t.source.GetStats(ctx); err == nil {
		top = stats.TopCategories
	} else {
		t.log.Warn("categories_list without counts", "err", err)
	}

	return nil, categoriesListOutput{
		Query: args.Query,
		Total: len(filtered),
		Items: dto.FromCategories(filtered, top),
	}, nil
}

func (t *tools) sourcesList(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, sourcesListOutput, error) {
	sources, err := t.sources.GetSources(ctx)
	if err != nil {
		t.log.Error("sources_list upstream failure", "err", err)
		return errorToolResult("fetch sources failed"), sourcesListOutput{}, nil
	}
	items := dto.FromSources(sources)
	return nil, sourcesListOutput{Total: len(items), Items: items}, nil
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

func parseCategory(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" || strings.EqualFold(v, "all") {
		return "", nil
	}
	c, ok := types.ParseCategory(v)
	if !ok {
		names := make([]string, len(types.AllCategories))
		for i, c := range types.AllCategories {
			names[i] = c.String()
		}
		return "", fmt.Errorf("invalid category %q; expected one of %s", raw, strings.Join(names, ", "))
	}
	return c.String(), nil
}
