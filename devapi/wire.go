package devapi

// pythonISO matches the backend's datetime.isoformat() output for naive UTC
// timestamps.
const pythonISO = "2006-01-02T15:04:05.000000"

type jobJSON struct {
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
	IsActive    bool    `json:"is_active"`
}

type paginationJSON struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}

type jobsJSON struct {
	Jobs       []jobJSON      `json:"jobs"`
	Pagination paginationJSON `json:"pagination"`
}

type universityJSON struct {
	University string `json:"university"`
	Count      int    `json:"count"`
}

type categoryJSON struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type statsJSON struct {
	TotalJobs       int              `json:"total_jobs"`
	LondonJobs      int              `json:"london_jobs"`
	TopCategories   []categoryJSON   `json:"top_categories"`
	TopUniversities []universityJSON `json:"top_universities"`
}

type sourceJSON struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	URL           string            `json:"url"`
	Location      string            `json:"location"`
	ScrapePattern map[string]string `json:"scrape_pattern"`
	IsActive      bool              `json:"is_active"`
}

func toSourcesJSON(sources []Source) []sourceJSON {
	out := make([]sourceJSON, 0, len(sources))
	for _, src := range sources {
		pattern := src.ScrapePattern
		if pattern == nil {
			pattern = map[string]string{}
		}
		out = append(out, sourceJSON{
			ID:            src.ID,
			Name:          src.Name,
			URL:           src.URL,
			Location:      src.Location,
			ScrapePattern: pattern,
			IsActive:      true,
		})
	}
	return out
}

func toJobJSON(r Record) jobJSON {
	return jobJSON{
		ID:          r.ID,
		Title:       r.Title,
		University:  r.University,
		Location:    r.Location,
		Category:    r.Category,
		Description: r.Description,
		Summary:     r.Summary,
		URL:         r.URL,
		DateAdded:   r.DateAdded.UTC().Format(pythonISO),
		Deadline:    r.Deadline,
		IsActive:    true,
	}
}

func toJobsJSON(p Page) jobsJSON {
	jobs := make([]jobJSON, 0, len(p.Records))
	for _, r := range p.Records {
		jobs = append(jobs, toJobJSON(r))
	}
	return jobsJSON{
		Jobs: jobs,
		Pagination: paginationJSON{
			CurrentPage: p.Page,
			TotalPages:  p.TotalPages,
			TotalCount:  p.TotalCount,
			HasPrev:     p.Page > 1,
			HasNext:     p.Page < p.TotalPages,
		},
	}
}

func toStatsJSON(s Stats) statsJSON {
	out := statsJSON{
		TotalJobs:       s.TotalJobs,
		LondonJobs:      s.LondonJobs,
		TopCategories:   make([]categoryJSON, 0, len(s.TopCategories)),
		TopUniversities: make([]universityJSON, 0, len(s.TopUniversities)),
	}
	for _, c := range s.TopCategories {
		out.TopCategories = append(out.TopCategories, categoryJSON{Category: c.Name, Count: c.Count})
	}
	for _, u := range s.TopUniversities {
		out.TopUniversities = append(out.TopUniversities, universityJSON{University: u.Name, Count: u.Count})
	}
	return out
}
