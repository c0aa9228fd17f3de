package dto

// Job is the listing shape returned by jobs_search.
type Job struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	University string `json:"university"`
	Location   string `json:"location"`
	Category   string `json:"category"`
	Snippet    string `json:"snippet"`
	URL        string `json:"url"`
	DateAdded  string `json:"date_added"`
	Deadline   string `json:"deadline,omitempty"`
}

// JobDetail is a Job with its full description, returned by job_get.
type JobDetail struct {
	Job
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description"`
}

type Pagination struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	TotalCount int  `json:"total_count"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}
