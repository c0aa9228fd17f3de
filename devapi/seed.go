package devapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var seedUniversities = []string{
	"Imperial College London",
	"University College London (UCL)",
	"King's College London",
	"London School of Economics (LSE)",
	"Queen Mary University of London",
	"City, University of London",
	"Goldsmiths, University of London",
	"Birkbeck, University of London",
	"Brunel University London",
	"University of Oxford",
	"University of Cambridge",
	"University of Manchester",
	"University of Edinburgh",
	"University of Bristol",
	"University of Warwick",
	"Durham University",
}

type seedTemplate struct {
	title       string
	category    string
	description string
	summary     string
}

var seedTemplates = []seedTemplate{
	{
		title:    "Professor of Machine Learning and AI",
		category: "Teaching",
		description: "We are seeking an exceptional Professor to lead our Machine Learning and Artificial Intelligence " +
			"research group. The successful candidate will have a distinguished record of research in machine learning, " +
			"deep learning, or related AI fields, with significant publications in top-tier venues. The role involves " +
			"leading a research team, securing major funding, teaching at undergraduate and postgraduate levels, and " +
			"establishing international collaborations.",
	},
	{
		title:    "Research Associate in Climate Modelling",
		category: "Research",
		description: "Applications are invited for a Research Associate to work on coupled climate models within the " +
			"Environmental Science Department. You will develop and evaluate high-resolution simulations of extreme " +
			"weather events, publish in leading journals and collaborate with the Met Office.",
		summary: "Fixed-term research post on high-resolution climate simulations.",
	},
	{
		title:    "Assistant Professor in Data Science",
		category: "Teaching",
		description: "Join our expanding Data Science programme as an Assistant Professor. We seek candidates with " +
			"expertise in statistical modelling, big data analytics, machine learning applications, or computational " +
			"statistics. Duties include research, teaching data science courses and supervising graduate students.",
	},
	{
		title:    "Funded PhD Studentship in Computational Biology",
		category: "PhD",
		description: "<p>A fully funded <strong>four-year PhD studentship</strong> is available in computational biology.</p>" +
			"<ul><li>Tax-free stipend and tuition fees</li><li>Access to HPC facilities</li>" +
			"<li>Supervision across biology and computer science</li></ul>",
	},
	{
		title:    "Early Career Research Fellowship in History",
		category: "Fellowship",
		description: "Three-year fellowship for outstanding early career historians. Fellows pursue an independent " +
			"research programme, contribute a small amount of teaching and take part in the seminar series.",
	},
	{
		title:    "Research Software Engineer",
		category: "Technical",
		description: "The Research Computing team is looking for a Research Software Engineer to build and maintain " +
			"scientific software, data pipelines and cloud infrastructure used by research groups across the university.",
	},
	{
		title:    "Faculty Administrator",
		category: "Administrative",
		description: "Provide administrative support to the Faculty Office, including committee servicing, student " +
			"records, timetabling and coordination of research grant submissions.",
	},
	{
		title:    "Summer Research Internship in Robotics",
		category: "Internship",
		description: "Ten-week paid summer internship for undergraduate students interested in robotics research. " +
			"Interns join a lab project on manipulation and perception and present their work at the end of the summer.",
	},
	{
		title:       "Library Services Assistant",
		category:    "General",
		description: "Support library users at the help desk, manage loans and returns and assist with digitisation projects.",
	},
}

// SeedSources builds one careers-site source per seeded university.
func SeedSources() []Source {
	sources := make([]Source, 0, len(seedUniversities))
	for _, uni := range seedUniversities {
		url := fmt.Sprintf("https://%s.ac.uk/jobs/", seedSlug(uni))
		sources = append(sources, Source{
			ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
			Name:     uni + " Jobs",
			URL:      url,
			Location: seedLocation(uni),
			ScrapePattern: map[string]string{
				"list":  ".vacancy-list .vacancy",
				"title": "h3 a",
				"link":  "h3 a@href",
			},
		})
	}
	return sources
}

func seedSlug(uni string) string {
	return strings.NewReplacer(" ", "", ",", "", "'", "", "(", "", ")", "").Replace(strings.ToLower(uni))
}

func seedLocation(uni string) string {
	if strings.Contains(uni, "London") {
		return "London, UK"
	}
	return "UK"
}

// Seed builds the sample postings served by the dev API: three per
// university, dated backwards from now so the newest come first.
func Seed(now time.Time) []Record {
	records := make([]Record, 0, len(seedUniversities)*3)
	n := 0
	for i, uni := range seedUniversities {
		for j := 0; j < 3; j++ {
			tpl := seedTemplates[(i+j)%len(seedTemplates)]

			url := fmt.Sprintf("https://%s.ac.uk/jobs/%d", seedSlug(uni), n+1)

			rec := Record{
				ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
				Title:       tpl.title,
				University:  uni,
				Location:    seedLocation(uni),
				Category:    tpl.category,
				Description: tpl.description,
				URL:         url,
				DateAdded:   now.Add(-time.Duration(n) * 7 * time.Hour).UTC(),
			}
			if tpl.summary != "" {
				s := tpl.summary
				rec.Summary = &s
			}
			if n%4 != 3 {
				d := now.AddDate(0, 1, n%28).Format(time.DateOnly)
				rec.Deadline = &d
			}
			records = append(records, rec)
			n++
		}
	}
	return records
}
