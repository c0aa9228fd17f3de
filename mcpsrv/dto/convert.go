package dto

import (
	"strings"

	"github.com/qyinm/acadjobs/types"
)

const snippetLimit = 300

func FromJob(j types.Job) Job {
	return Job{
		ID:         j.ID(),
		Title:      j.JobTitle(),
		University: j.University(),
		Location:   j.Location(),
		Category:   j.Category().String(),
		Snippet:    snippet(j),
		URL:        j.URL(),
		DateAdded:  j.DateAdded(),
		Deadline:   j.Deadline(),
	}
}

func FromJobs(jobs []types.Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromJob(j))
	}
	return out
}

func FromJobDetail(j types.Job) JobDetail {
	return JobDetail{
		Job:         FromJob(j),
		Summary:     j.Summary(),
		Description: j.FullDescription(),
	}
}

func FromPagination(p types.Pagination) Pagination {
	return Pagination{
		Page:       p.CurrentPage,
		TotalPages: p.TotalPages,
		TotalCount: p.TotalCount,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
	}
}

func FromStats(s types.Stats) Stats {
	return Stats{
		TotalJobs:       s.TotalJobs,
		LondonJobs:      s.LondonJobs,
		TopUniversities: fromCounts(s.TopUniversities),
		TopCategories:   fromCounts(s.TopCategories),
	}
}

// FromCategories pairs each category with its count from top, matching
// names case-insensitively.
func FromCategories(categories []types.Category, top []types.NamedCount) []Category {
	counts := make(map[string]int, len(top))
	for _, c := range top {
		counts[strings.ToLower(c.Name)] = c.Count
	}
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, Category{Name: c.String(), Count: counts[strings.ToLower(c.String())]})
	}
	return out
}

func fromCounts(in []types.NamedCount) []Count {
	out := make([]Count, 0, len(in))
	for _, c := range in {
		out = append(out, Count{Name: c.Name, Count: c.Count})
	}
	return out
}

// snippet mirrors the job card text: the summary when present, otherwise
// the first 300 characters of the description.
func snippet(j types.Job) string {
	if j.HasSummary() {
		return j.Summary()
	}
	r := []rune(j.FullDescription())
	if len(r) <= snippetLimit {
		return string(r)
	}
	return string(r[:snippetLimit]) + "..."
}

func FromSources(sources []types.Source) []Source {
	out := make([]Source, 0, len(sources))
	for _, src := range sources {
		out = append(out, Source{ID: src.ID, Name: src.Name, URL: src.URL, Location: src.Location})
	}
	return out
}
