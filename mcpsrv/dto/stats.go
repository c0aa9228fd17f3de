package dto

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalJobs       int     `json:"total_jobs"`
	LondonJobs      int     `json:"london_jobs"`
	TopUniversities []Count `json:"top_universities"`
	TopCategories   []Count `json:"top_categories"`
}

// Category is one of the fixed job categories. Count is only set when the
// category is among the top categories reported by the API.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

type Source struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Location string `json:"location"`
}
