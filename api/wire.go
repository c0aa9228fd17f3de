package api

import (
	"strings"

	"github.com/qyinm/acadjobs/types"
)

// Wire shapes of the jobs API. Field names must match the backend exactly.

type jobPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	University  string  `json:"university"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Summary     *string `json:"summary"`
	URL         string  `json:"url"`
	DateAdded   string  `json:"date_added"`
	Deadline    *string `json:"deadline"`
}

type paginationPayload struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}

type jobsResponse struct {
	Jobs       []jobPayload      `json:"jobs"`
	Pagination paginationPayload `json:"pagination"`
}

type universityCount struct {
	University string `json:"university"`
	Count      int    `json:"count"`
}

type categoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type statsResponse struct {
	TotalJobs       int               `json:"total_jobs"`
	LondonJobs      int               `json:"london_jobs"`
	TopUniversities []universityCount `json:"top_universities"`
	TopCategories   []categoryCount   `json:"top_categories"`
}

// sourcePayload is one /api/sources entry. The scrape pattern is backend
// configuration and is not surfaced.
type sourcePayload struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	Location      string         `json:"location"`
	ScrapePattern map[string]any `json:"scrape_pattern"`
	IsActive      *bool          `json:"is_active"`
}

type healthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (p jobPayload) toJob() types.Job {
	category, _ := types.ParseCategory(p.Category)
	return types.NewJob(
		p.ID,
		strings.TrimSpace(p.Title),
		strings.TrimSpace(p.University),
		strings.TrimSpace(p.Location),
		category,
		p.Description,
		deref(p.Summary),
		strings.TrimSpace(p.URL),
		p.DateAdded,
		deref(p.Deadline),
	)
}

func toJobs(payloads []jobPayload) []types.Job {
	jobs := make([]types.Job, 0, len(payloads))
	for _, p := range payloads {
		jobs = append(jobs, p.toJob())
	}
	return jobs
}

// toSources drops entries explicitly marked inactive.
func toSources(payloads []sourcePayload) []types.Source {
	sources := make([]types.Source, 0, len(payloads))
	for _, p := range payloads {
		if p.IsActive != nil && !*p.IsActive {
			continue
		}
		sources = append(sources, types.Source{
			ID:       p.ID,
			Name:     strings.TrimSpace(p.Name),
			URL:      strings.TrimSpace(p.URL),
			Location: strings.TrimSpace(p.Location),
		})
	}
	return sources
}

func (p paginationPayload) toPagination() types.Pagination {
	return types.Pagination{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasPrev:     p.HasPrev,
		HasNext:     p.HasNext,
	}
}

func (s statsResponse) toStats() types.Stats {
	stats := types.Stats{
		TotalJobs:       s.TotalJobs,
		LondonJobs:      s.LondonJobs,
		TopUniversities: make([]types.NamedCount, 0, len(s.TopUniversities)),
		TopCategories:   make([]types.NamedCount, 0, len(s.TopCategories)),
	}
	for _, u := range s.TopUniversities {
		stats.TopUniversities = append(stats.TopUniversities, types.NamedCount{Name: u.University, Count: u.Count})
	}
	for _, c := range s.TopCategories {
		stats.TopCategories = append(stats.TopCategories, types.NamedCount{Name: c.Category, Count: c.Count})
	}
	return stats
}

// synthesizePagination builds a pagination block for backends that answer
// /api/jobs with a bare array. A full page is taken to mean there may be more.
func synthesizePagination(page, limit, n int) types.Pagination {
	if page < 1 {
		page = 1
	}
	hasNext := limit > 0 && n >= limit
	total := page
	if hasNext {
		total++
	}
	return types.Pagination{
		CurrentPage: page,
		TotalPages:  total,
		TotalCount:  (page-1)*limit + n,
		HasPrev:     page > 1,
		HasNext:     hasNext,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
