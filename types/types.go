package types

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

// Category is the posting category assigned by the backend.
type Category string

const (
	Research       Category = "Research"
	Teaching       Category = "Teaching"
	Administrative Category = "Administrative"
	Technical      Category = "Technical"
	Internship     Category = "Internship"
	Fellowship     Category = "Fellowship"
	PhD            Category = "PhD"
)

// AllCategories is the closed set offered by the category filter, in display order.
var AllCategories = []Category{
	Research,
	Teaching,
	Administrative,
	Technical,
	Internship,
	Fellowship,
	PhD,
}

// String returns the category name as sent on the wire
func (c Category) String() string { return string(c) }

// Known reports whether c is one of the fixed filter categories.
// The backend may still send other values (e.g. "General").
func (c Category) Known() bool {
	for _, k := range AllCategories {
		if k == c {
			return true
		}
	}
	return false
}

// ParseCategory matches raw case-insensitively against the fixed set.
func ParseCategory(raw string) (Category, bool) {
	v := strings.TrimSpace(raw)
	for _, k := range AllCategories {
		if strings.EqualFold(string(k), v) {
			return k, true
		}
	}
	return Category(v), false
}

// Job is one academic posting as returned by the jobs API
type Job struct {
	id          string
	title       string
	university  string
	location    string
	category    Category
	description string
	summary     string
	url         string
	dateAdded   string
	deadline    string
}

// NewJob creates a new Job with the given fields. Dates are kept as the raw
// strings the server sent; formatting happens at display time.
func NewJob(id, title, university, location string, category Category, description, summary, url, dateAdded, deadline string) Job {
	return Job{
		id:          id,
		title:       title,
		university:  university,
		location:    location,
		category:    category,
		description: description,
		summary:     summary,
		url:         url,
		dateAdded:   dateAdded,
		deadline:    deadline,
	}
}

// Getters for Job fields
func (j Job) ID() string              { return j.id }
func (j Job) JobTitle() string        { return j.title }
func (j Job) University() string      { return j.university }
func (j Job) Location() string        { return j.location }
func (j Job) Category() Category      { return j.category }
func (j Job) FullDescription() string { return j.description }
func (j Job) Summary() string         { return j.summary }
func (j Job) URL() string             { return j.url }
func (j Job) DateAdded() string       { return j.dateAdded }
func (j Job) Deadline() string        { return j.deadline }

// HasSummary reports whether the server provided a non-blank summary.
func (j Job) HasSummary() bool { return strings.TrimSpace(j.summary) != "" }

// list.Item interface implementation
func (j Job) Title() string       { return j.title }
func (j Job) Description() string { return j.university }
func (j Job) FilterValue() string { return j.title }

// Compile-time check that Job implements list.Item
var _ list.Item = Job{}

// Pagination describes where the current page sits in the full result set.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int
	HasPrev     bool
	HasNext     bool
}

// JobPage is one page of results for a Query.
type JobPage struct {
	Jobs       []Job
	Pagination Pagination
}

// NamedCount is a (name, count) pair from the stats aggregation.
type NamedCount struct {
	Name  string
	Count int
}

// Stats holds the server-side aggregate counts.
type Stats struct {
	TotalJobs       int
	LondonJobs      int
	TopUniversities []NamedCount
	TopCategories   []NamedCount
}

// UniversityNames returns the names of TopUniversities in order.
func (s Stats) UniversityNames() []string {
	out := make([]string, 0, len(s.TopUniversities))
	for _, u := range s.TopUniversities {
		if strings.TrimSpace(u.Name) != "" {
			out = append(out, u.Name)
		}
	}
	return out
}

// Source is a site the backend collects postings from.
type Source struct {
	ID       string
	Name     string
	URL      string
	Location string
}

// SourceLister is implemented by job sources that can also list where their
// postings come from.
type SourceLister interface {
	GetSources(ctx context.Context) ([]Source, error)
}

// JobSource is the core abstraction for data access.
// No bubbletea dependency: the UI wraps these calls in commands, and the MCP
// server calls them directly.
type JobSource interface {
	GetJobs(ctx context.Context, q Query, limit int) (JobPage, error)
	GetJob(ctx context.Context, id string) (Job, error)
	GetStats(ctx context.Context) (Stats, error)
}
