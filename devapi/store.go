package devapi

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Record is one stored posting.
type Record struct {
	ID          string
	Title       string
	University  string
	Location    string
	Category    string
	Description string
	Summary     *string
	URL         string
	DateAdded   time.Time
	Deadline    *string
}

// Filter selects records. Empty fields match everything; set fields match
// case-insensitive substrings.
type Filter struct {
	Search     string
	Category   string
	University string
	Location   string
}

// Page is one slice of a filtered, date-sorted result.
type Page struct {
	Records    []Record
	Page       int
	TotalPages int
	TotalCount int
}

// Source is a site postings are collected from.
type Source struct {
	ID            string
	Name          string
	URL           string
	Location      string
	ScrapePattern map[string]string
}

type Count struct {
	Name  string
	Count int
}

type Stats struct {
	TotalJobs       int
	LondonJobs      int
	TopCategories   []Count
	TopUniversities []Count
}

const topN = 5

// Store is an in-memory job collection sorted newest first. It is not
// modified after NewStore.
type Store struct {
	records []Record
	byID    map[string]int
	sources []Source
}

func NewStore(records []Record, sources []Source) *Store {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateAdded.After(sorted[j].DateAdded)
	})
	byID := make(map[string]int, len(sorted))
	for i, r := range sorted {
		byID[r.ID] = i
	}
	return &Store{
		records: sorted,
		byID:    byID,
		sources: append([]Source(nil), sources...),
	}
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) Get(id string) (Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.records[i], true
}

// Sources returns the job sources in the order they were given.
func (s *Store) Sources() []Source {
	return append([]Source{}, s.sources...)
}

// Find returns page (1-based) of the records matching f, limit per page.
// A page below 1 is read as 1 and a limit below 1 as the default page size.
func (s *Store) Find(f Filter, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	matched := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if f.matches(r) {
			matched = append(matched, r)
		}
	}

	total := len(matched)
	out := Page{
		Page:       page,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	start := (page - 1) * limit
	if start >= total {
		out.Records = []Record{}
		return out
	}
	end := min(start+limit, total)
	out.Records = matched[start:end]
	return out
}

// Stats counts all records. Top universities are ranked over London
// postings only; ties keep the name order.
func (s *Store) Stats() Stats {
	categories := map[string]int{}
	universities := map[string]int{}
	london := 0
	for _, r := range s.records {
		categories[r.Category]++
		if containsFold(r.Location, "london") {
			london++
			universities[r.University]++
		}
	}
	return Stats{
		TotalJobs:       len(s.records),
		LondonJobs:      london,
		TopCategories:   topCounts(categories, topN),
		TopUniversities: topCounts(universities, topN),
	}
}

func (f Filter) matches(r Record) bool {
	if f.Category != "" && !containsFold(r.Category, f.Category) {
		return false
	}
	if f.University != "" && !containsFold(r.University, f.University) {
		return false
	}
	if f.Location != "" && !containsFold(r.Location, f.Location) {
		return false
	}
	if f.Search != "" {
		summary := ""
		if r.Summary != nil {
			summary = *r.Summary
		}
		if !containsFold(r.Title, f.Search) && !containsFold(r.Description, f.Search) && !containsFold(summary, f.Search) {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func topCounts(m map[string]int, n int) []Count {
	out := make([]Count, 0, len(m))
	for name, c := range m {
		out = append(out, Count{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
