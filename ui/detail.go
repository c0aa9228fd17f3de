package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/acadjobs/types"
)

const maxOverlayWidth = 100

// openDetail shows job in the overlay. Only the selection changes; the
// query, the job list and the list cursor stay as they are.
func (m *Model) openDetail(job types.Job) {
	m.selected = &job
	m.showDetail = true
	m.resizeOverlay()
	m.viewport.SetContent(m.detailContent(job, m.viewport.Width))
	m.viewport.GotoTop()
}

// closeDetail hides the overlay and clears the selection.
func (m *Model) closeDetail() {
	m.selected = nil
	m.showDetail = false
}

func (m Model) overlayWidth() int {
	w := m.width - 8
	if w > maxOverlayWidth {
		w = maxOverlayWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) resizeOverlay() {
	m.viewport.Width = m.overlayWidth() - 4
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	m.viewport.Height = h
}

// detailContent builds the overlay body: header fields, formatted dates,
// the apply link and the full description.
func (m *Model) detailContent(job types.Job, width int) string {
	var b strings.Builder

	b.WriteString(DetailTitleStyle.Render(job.JobTitle()))
	b.WriteString("\n")

	sub := []string{job.University()}
	if loc := strings.TrimSpace(job.Location()); loc != "" {
		sub = append(sub, loc)
	}
	b.WriteString(DetailSubtitleStyle.Render(strings.Join(sub, " • ")))
	b.WriteString("\n\n")

	if c := job.Category(); c != "" {
		b.WriteString(CategoryBadgeStyle.Render(c.String()))
		b.WriteString("\n\n")
	}

	if posted := formatDate(job.DateAdded()); posted != "" {
		b.WriteString(DetailLabelStyle.Render("Posted:   ") + posted + "\n")
	}
	if deadline := formatDate(job.Deadline()); deadline != "" {
		b.WriteString(DetailLabelStyle.Render("Deadline: ") + deadline + "\n")
	}
	if u := job.URL(); u != "" {
		b.WriteString(DetailLabelStyle.Render("Apply:    ") + DetailLinkStyle.Render(u) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderDescription(plainText(job.FullDescription()), width))
	return b.String()
}

// renderDescription renders plain text through glamour, falling back to
// lipgloss wrapping if the renderer cannot be built. The text is escaped
// first so glamour styles it without reading it as markdown.
func (m *Model) renderDescription(text string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := m.getRenderer(width)
	if err == nil {
		if out, err := r.Render(markdownLiteral(text)); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func (m *Model) getRenderer(width int) (*glamour.TermRenderer, error) {
	if m.renderer != nil && m.rendererWidth == width {
		return m.renderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	m.renderer = r
	m.rendererWidth = width
	return r, nil
}

func (m Model) detailView() string {
	footer := StatusBarStyle.Render("esc: close • o: open link • y: copy link • ↑/↓: scroll")
	box := OverlayStyle.Width(m.overlayWidth() - 2).Render(m.viewport.View() + "\n" + footer)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(DraculaComment),
	)
}
