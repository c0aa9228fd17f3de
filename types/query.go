package types

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is the number of jobs requested per page.
const DefaultPageSize = 10

// Query is the search/filter/page tuple that fully determines which page of
// jobs should be on screen. It is a value type: transitions return a new Query.
//
// Location is not set by the terminal UI; it narrows results for callers
// such as the MCP tools and is omitted from requests when empty.
type Query struct {
	Search     string
	Category   string
	University string
	Location   string
	Page       int
}

// NewQuery returns the query for the first, unfiltered page.
func NewQuery() Query {
	return Query{Page: 1}
}

// FilterPatch names the filter fields to change. Nil fields are left as they are.
type FilterPatch struct {
	Search     *string
	Category   *string
	University *string
	Location   *string
}

// SetSearch, SetCategory, SetUniversity and SetLocation build single-field patches.
func SetSearch(v string) FilterPatch     { return FilterPatch{Search: &v} }
func SetCategory(v string) FilterPatch   { return FilterPatch{Category: &v} }
func SetUniversity(v string) FilterPatch { return FilterPatch{University: &v} }
func SetLocation(v string) FilterPatch   { return FilterPatch{Location: &v} }

// ApplyFilterChange returns q with the patch applied. The page is always reset
// to 1, whether or not the patch changed anything.
func (q Query) ApplyFilterChange(p FilterPatch) Query {
	next := q
	if p.Search != nil {
		next.Search = *p.Search
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.University != nil {
		next.University = *p.University
	}
	if p.Location != nil {
		next.Location = *p.Location
	}
	next.Page = 1
	return next
}

// WithPage returns q pointing at page n (minimum 1).
func (q Query) WithPage(n int) Query {
	if n < 1 {
		n = 1
	}
	q.Page = n
	return q
}

// Normalized returns q with a valid page number.
func (q Query) Normalized() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// HasFilters reports whether any filter field is set.
func (q Query) HasFilters() bool {
	return strings.TrimSpace(q.Search) != "" ||
		strings.TrimSpace(q.Category) != "" ||
		strings.TrimSpace(q.University) != "" ||
		strings.TrimSpace(q.Location) != ""
}

// Params builds the /api/jobs query string values. Empty filters are omitted
// entirely rather than sent as empty strings; page and limit are always set.
func (q Query) Params(limit int) url.Values {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	q = q.Normalized()

	values := url.Values{}
	if v := strings.TrimSpace(q.Search); v != "" {
		values.Set("search", v)
	}
	if v := strings.TrimSpace(q.Category); v != "" {
		values.Set("category", v)
	}
	if v := strings.TrimSpace(q.University); v != "" {
		values.Set("university", v)
	}
	if v := strings.TrimSpace(q.Location); v != "" {
		values.Set("location", v)
	}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("limit", strconv.Itoa(limit))
	return values
}

// PageWindowSize is the maximum number of numbered page buttons shown.
const PageWindowSize = 5

// PageWindow returns up to size consecutive page numbers centered on current
// and clamped to [1, total]. It returns nil when total < 1.
func PageWindow(current, total, size int) []int {
	if total < 1 || size < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > total {
		end = total
		start = end - size + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
