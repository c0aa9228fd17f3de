package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/acadjobs/types"
)

// pageButtons returns the page numbers of the visible pagination buttons.
func (m Model) pageButtons() []int {
	return types.PageWindow(m.pagination.CurrentPage, m.pagination.TotalPages, types.PageWindowSize)
}

// resultView renders the result panel for the current result state.
func (m Model) resultView(width, height int) string {
	switch deriveResultState(m.loading, m.err, len(m.jobs)) {
	case stateLoading:
		msg := m.spinner.View() + " Loading jobs..."
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	case stateError:
		banner := ErrorBannerStyle.Render(
			"Could not load jobs\n\n" +
				wrapText(m.err.Error(), min(width-8, 72)) +
				"\n\n" + StatusBarStyle.Render("press r to retry"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, banner)
	case stateEmpty:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			EmptyStyle.Render("No jobs found."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), "", m.paginationView(width))
}

// paginationView renders Prev, the page window and Next. Disabled buttons
// use a faint style.
func (m Model) paginationView(width int) string {
	p := m.pagination

	prev := PageButtonDisabledStyle.Render("‹ Prev")
	if p.HasPrev {
		prev = PageButtonStyle.Render("‹ Prev")
	}
	next := PageButtonDisabledStyle.Render("Next ›")
	if p.HasNext {
		next = PageButtonStyle.Render("Next ›")
	}

	parts := []string{prev}
	for _, n := range m.pageButtons() {
		label := fmt.Sprintf("%d", n)
		if n == p.CurrentPage {
			parts = append(parts, PageButtonActiveStyle.Render(label))
			continue
		}
		parts = append(parts, PageButtonStyle.Render(label))
	}
	parts = append(parts, next)

	info := StatusBarStyle.Render(fmt.Sprintf("page %d of %d • %d jobs", p.CurrentPage, p.TotalPages, p.TotalCount))
	bar := strings.Join(parts, " ") + "  " + info
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}

func wrapText(s string, width int) string {
	if width < 10 {
		width = 10
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
