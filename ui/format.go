package ui

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/qyinm/acadjobs/types"
)

// snippetLimit is how many characters of a description a job card shows
// when the job has no summary.
const snippetLimit = 300

// cardSnippet is the body text of a job card: the summary verbatim when
// present, otherwise the description cut at snippetLimit characters.
func cardSnippet(j types.Job) string {
	if j.HasSummary() {
		return j.Summary()
	}
	return truncateRunes(plainText(j.FullDescription()), snippetLimit)
}

// truncateRunes cuts s to its first n characters and appends "..." when it
// was longer. The cut is a plain substring; word boundaries are ignored.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

// plainText reduces HTML markup in scraped descriptions to readable text.
// Strings without markup are returned unchanged.
func plainText(s string) string {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script,style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("• ")
	doc.Find("p,li,div,h1,h2,h3,h4,tr").AppendHtml("\n")

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text := blankLinesRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

// dateLayouts are tried in order. The backend emits Python isoformat
// timestamps, often without a zone, and deadlines as bare dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// formatDate renders an ISO-8601 date as "2 January 2006". Strings that do
// not parse are returned as they are.
func formatDate(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2 January 2006")
		}
	}
	return raw
}

// markdownLiteral turns plain text into markdown that renders back to the
// same characters: ASCII punctuation is backslash-escaped, indentation is
// dropped so no line turns into a code block, and line breaks inside a
// paragraph become hard breaks.
func markdownLiteral(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = escapeMarkdown(strings.TrimSpace(line))
	}
	for i := 0; i < len(lines)-1; i++ {
		if lines[i] != "" && lines[i+1] != "" {
			lines[i] += "  "
		}
	}
	return strings.Join(lines, "\n")
}

func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
