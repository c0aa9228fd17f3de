package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/qyinm/acadjobs/types"
)

// JobDelegate renders types.Job items as job cards. Every card on a page
// gets the same height: two header lines plus enough body lines for the
// longest snippet on the page, so snippets are never clipped.
type JobDelegate struct {
	bodyLines int
}

// newJobDelegate sizes the card body for jobs rendered at width.
func newJobDelegate(jobs []types.Job, width int) JobDelegate {
	lines := 1
	for _, j := range jobs {
		if n := len(wrapBody(cardBody(j), cardBodyWidth(width))); n > lines {
			lines = n
		}
	}
	return JobDelegate{bodyLines: lines}
}

// Height returns the height of a job card
func (d JobDelegate) Height() int {
	return 2 + max(d.bodyLines, 1)
}

// Spacing returns the blank lines between cards
func (d JobDelegate) Spacing() int {
	return 1
}

// Update handles updates for the delegate (no-op for jobs)
func (d JobDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single job card
func (d JobDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	job, ok := item.(types.Job)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	indent := "    "
	bodyWidth := cardBodyWidth(width)

	// Line 1: marker + title + category badge
	marker := "  "
	titleStyle := CardTitleStyle
	if isSelected {
		marker = "▌ "
		titleStyle = CardTitleSelectedStyle
	}
	badge := ""
	if c := job.Category(); c != "" {
		badge = CategoryBadgeStyle.Render(c.String())
	}
	titleWidth := width - len(marker) - lipgloss.Width(badge) - 1
	if titleWidth < 1 {
		titleWidth = 1
	}
	title := ansi.Truncate(job.JobTitle(), titleWidth, "…")
	pad := titleWidth - ansi.StringWidth(title)
	if pad < 0 {
		pad = 0
	}
	lines := []string{titleStyle.Render(marker+title) + strings.Repeat(" ", pad+1) + badge}

	// Line 2: university • location • posted date
	meta := []string{job.University()}
	if loc := strings.TrimSpace(job.Location()); loc != "" {
		meta = append(meta, loc)
	}
	if posted := formatDate(job.DateAdded()); posted != "" {
		meta = append(meta, "posted "+posted)
	}
	lines = append(lines, indent+CardMetaStyle.Render(ansi.Truncate(strings.Join(meta, " • "), bodyWidth, "…")))

	// Body: the whole snippet, wrapped, padded to the shared card height
	body := wrapBody(cardBody(job), bodyWidth)
	for len(body) < d.bodyLines {
		body = append(body, "")
	}
	for _, l := range body {
		lines = append(lines, indent+CardBodyStyle.Render(l))
	}

	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func cardBodyWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	return max(width-4, 10)
}

// cardBody is the card snippet with runs of whitespace folded to one space.
func cardBody(j types.Job) string {
	return strings.Join(strings.Fields(cardSnippet(j)), " ")
}

// wrapBody word-wraps s to width, breaking words longer than a line.
func wrapBody(s string, width int) []string {
	if s == "" {
		return nil
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}
