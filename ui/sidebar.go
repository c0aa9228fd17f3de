package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	sidebarWidth    = 32
	sidebarMinWidth = 100
)

// sidebarVisible reports whether the filter panel is drawn. Narrow terminals
// never show it, whatever the toggle says.
func (m Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= sidebarMinWidth
}

func (m Model) sidebarView(height int) string {
	inner := sidebarWidth - 2
	var b strings.Builder

	b.WriteString(SidebarHeadingStyle.Render("Active filters"))
	b.WriteString("\n")
	b.WriteString(filterLine("search", m.query.Search, inner))
	b.WriteString(filterLine("category", m.query.Category, inner))
	b.WriteString(filterLine("university", m.query.University, inner))
	b.WriteString("\n")

	if m.stats == nil {
		b.WriteString(StatusBarStyle.Render("stats unavailable"))
		return SidebarStyle.Width(sidebarWidth).Height(height).Render(b.String())
	}

	s := m.stats
	b.WriteString(SidebarHeadingStyle.Render("Overview"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s total jobs\n", SidebarNumberStyle.Render(fmt.Sprintf("%d", s.TotalJobs)))
	fmt.Fprintf(&b, "%s in London\n\n", SidebarNumberStyle.Render(fmt.Sprintf("%d", s.LondonJobs)))

	if len(s.TopCategories) > 0 {
		b.WriteString(SidebarHeadingStyle.Render("Top categories"))
		b.WriteString("\n")
		for _, c := range s.TopCategories {
			b.WriteString(countLine(c.Name, c.Count, inner))
		}
		b.WriteString("\n")
	}
	if len(s.TopUniversities) > 0 {
		b.WriteString(SidebarHeadingStyle.Render("Top universities"))
		b.WriteString("\n")
		for _, u := range s.TopUniversities {
			b.WriteString(countLine(u.Name, u.Count, inner))
		}
	}
	return SidebarStyle.Width(sidebarWidth).Height(height).Render(b.String())
}

func filterLine(label, value string, width int) string {
	if value == "" {
		value = "All"
	}
	line := FilterLabelStyle.Render(label+": ") + FilterValueStyle.Render(value)
	return ansi.Truncate(line, width, "…") + "\n"
}

func countLine(name string, count, width int) string {
	n := fmt.Sprintf("%d", count)
	nameWidth := width - len(n) - 1
	if nameWidth < 4 {
		nameWidth = 4
	}
	name = ansi.Truncate(name, nameWidth, "…")
	pad := nameWidth - ansi.StringWidth(name)
	if pad < 0 {
		pad = 0
	}
	return name + strings.Repeat(" ", pad+1) + SidebarNumberStyle.Render(n) + "\n"
}
