package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/acadjobs/logging"
	"github.com/qyinm/acadjobs/types"
)

// focusArea is the component that receives key presses.
type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusPicker
)

const headerHeight = 5

// Model is the main TUI model. It owns the query, the fetched page and all
// UI state; every mutation happens in Update.
type Model struct {
	source types.JobSource
	log    *logging.Logger

	query      types.Query
	jobsReqID  int
	statsReqID int
	lastFailed *types.Query
	scrollTop  bool

	jobs       []types.Job
	pagination types.Pagination
	stats      *types.Stats

	loading bool
	err     error

	selected    *types.Job
	showDetail  bool
	showSidebar bool
	focus       focusArea

	searchInput textinput.Model
	picker      picker
	list        list.Model
	viewport    viewport.Model
	spinner     spinner.Model
	help        help.Model
	keys        keyMap

	width     int
	height    int
	statusMsg string
	statusErr bool

	renderer      *glamour.TermRenderer
	rendererWidth int
}

// NewModel creates a Model reading from source, types.DefaultPageSize jobs
// per page. The first page and the stats are requested by Init.
func NewModel(source types.JobSource, log *logging.Logger) Model {
	if log == nil {
		log = logging.Nop()
	}

	l := list.New([]list.Item{}, JobDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.NextPage.SetEnabled(false)
	l.KeyMap.PrevPage.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "Search jobs by title, description or keyword"
	ti.Prompt = "search › "
	ti.CharLimit = 120
	ti.Cursor.SetMode(cursor.CursorStatic)

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		source:      source,
		log:         log,
		query:       types.NewQuery(),
		jobsReqID:   1,
		statsReqID:  1,
		loading:     true,
		showSidebar: true,
		focus:       focusList,
		searchInput: ti,
		list:        l,
		viewport:    viewport.New(0, 0),
		spinner:     s,
		help:        help.New(),
		keys:        keys,
		width:       80,
		height:      24,
	}
	m.resizePanes()
	return m
}

// Init requests the first page of jobs and the stats.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchJobs(m.source, m.query, types.DefaultPageSize, m.jobsReqID),
		fetchStats(m.source, m.statsReqID),
		m.spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		if m.showDetail && m.selected != nil {
			m.openDetail(*m.selected)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case jobsMsg:
		return m.handleJobs(msg), nil

	case statsMsg:
		return m.handleStats(msg), nil

	case statusMsg:
		if msg.err != nil {
			m.log.Warn("action failed", "err", msg.err)
			m.statusMsg = msg.err.Error()
			m.statusErr = true
		} else {
			m.statusMsg = msg.text
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.showDetail:
			return m.updateDetail(msg)
		case m.focus == focusSearch:
			return m.updateSearch(msg)
		case m.focus == focusPicker:
			return m.updatePicker(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m Model) handleJobs(msg jobsMsg) Model {
	if msg.requestID != m.jobsReqID {
		m.log.Debug("dropping stale jobs response", "request_id", msg.requestID, "latest", m.jobsReqID)
		return m
	}
	m.loading = false
	if msg.err != nil {
		q := msg.query
		m.err = msg.err
		m.lastFailed = &q
		m.log.Error("fetch jobs failed", "err", msg.err, "page", q.Page, "search", q.Search,
			"category", q.Category, "university", q.University)
		return m
	}

	m.err = nil
	m.lastFailed = nil
	m.jobs = msg.page.Jobs
	m.pagination = msg.page.Pagination

	items := make([]list.Item, len(m.jobs))
	for i, j := range m.jobs {
		items[i] = j
	}
	m.list.SetDelegate(newJobDelegate(m.jobs, m.mainWidth()))
	m.list.SetItems(items)
	if m.scrollTop || m.list.Index() >= len(items) {
		m.list.ResetSelected()
	}
	m.scrollTop = false
	m.log.Debug("jobs loaded", "request_id", msg.requestID, "count", len(m.jobs),
		"page", m.pagination.CurrentPage, "total", m.pagination.TotalCount)
	return m
}

func (m Model) handleStats(msg statsMsg) Model {
	if msg.requestID != m.statsReqID {
		return m
	}
	if msg.err != nil {
		m.log.Warn("fetch stats failed", "err", msg.err)
		return m
	}
	s := msg.stats
	m.stats = &s
	return m
}

// setQuery moves to next and returns the fetch command its effects require.
func (m *Model) setQuery(next types.Query) tea.Cmd {
	eff := planEffects(m.query, next)
	m.query = next
	if !eff.fetchJobs {
		return nil
	}
	if eff.scrollTop {
		m.scrollTop = true
	}
	return m.startFetch(next)
}

// startFetch issues a jobs request for q under a new request id. Responses
// to earlier ids are ignored from here on, and an earlier failure is no
// longer what retry repeats.
func (m *Model) startFetch(q types.Query) tea.Cmd {
	m.jobsReqID++
	m.err = nil
	m.lastFailed = nil
	wasLoading := m.loading
	m.loading = true
	m.log.Debug("fetching jobs", "request_id", m.jobsReqID, "page", q.Page)

	cmd := fetchJobs(m.source, q, types.DefaultPageSize, m.jobsReqID)
	if wasLoading {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// retry re-issues the failed query when the last fetch failed, and
// refreshes the current one otherwise.
func (m *Model) retry() tea.Cmd {
	if m.lastFailed != nil {
		q := *m.lastFailed
		m.query = q
		return m.startFetch(q)
	}
	return m.startFetch(m.query)
}

func (m Model) populated() bool {
	return deriveResultState(m.loading, m.err, len(m.jobs)) == statePopulated
}

func (m *Model) prevPage() tea.Cmd {
	if !m.populated() || !m.pagination.HasPrev {
		return nil
	}
	return m.setQuery(m.query.WithPage(m.pagination.CurrentPage - 1))
}

func (m *Model) nextPage() tea.Cmd {
	if !m.populated() || !m.pagination.HasNext {
		return nil
	}
	return m.setQuery(m.query.WithPage(m.pagination.CurrentPage + 1))
}

// gotoButton selects the n-th visible page button (1-based).
func (m *Model) gotoButton(n int) tea.Cmd {
	if !m.populated() {
		return nil
	}
	buttons := m.pageButtons()
	if n < 1 || n > len(buttons) {
		return nil
	}
	return m.setQuery(m.query.WithPage(buttons[n-1]))
}

func (m Model) selectedJob() (types.Job, bool) {
	if !m.populated() {
		return types.Job{}, false
	}
	job, ok := m.list.SelectedItem().(types.Job)
	return job, ok
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizePanes()
		return m, nil

	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		m.resizePanes()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Category):
		values := make([]string, len(types.AllCategories))
		for i, c := range types.AllCategories {
			values[i] = c.String()
		}
		m.picker = newPicker(pickCategory, "Category", values, m.query.Category)
		m.focus = focusPicker
		return m, nil

	case key.Matches(msg, m.keys.University):
		var values []string
		if m.stats != nil {
			values = m.stats.UniversityNames()
		}
		m.picker = newPicker(pickUniversity, "University", values, m.query.University)
		m.focus = focusPicker
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		empty := ""
		m.searchInput.SetValue("")
		return m, m.setQuery(m.query.ApplyFilterChange(types.FilterPatch{
			Search:     &empty,
			Category:   &empty,
			University: &empty,
		}))

	case key.Matches(msg, m.keys.Enter):
		if job, ok := m.selectedJob(); ok {
			m.openDetail(job)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.prevPage()

	case key.Matches(msg, m.keys.NextPage):
		return m, m.nextPage()

	case key.Matches(msg, m.keys.PageButton):
		return m, m.gotoButton(int(msg.String()[0] - '0'))

	case key.Matches(msg, m.keys.Retry):
		return m, m.retry()

	case key.Matches(msg, m.keys.Open):
		if job, ok := m.selectedJob(); ok && job.URL() != "" {
			return m, openInBrowser(job.URL())
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if job, ok := m.selectedJob(); ok && job.URL() != "" {
			return m, copyToClipboard(job.URL())
		}
		return m, nil
	}

	if !m.populated() {
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searchInput.Blur()
		m.focus = focusList
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != before {
		return m, tea.Batch(cmd, m.setQuery(m.query.ApplyFilterChange(types.SetSearch(v))))
	}
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var res pickerResult
	m.picker, res = m.picker.update(msg)
	switch res {
	case pickerCanceled:
		m.focus = focusList
	case pickerChosen:
		m.focus = focusList
		opt, ok := m.picker.selected()
		if !ok {
			return m, nil
		}
		patch := types.SetCategory(opt.value)
		if m.picker.kind == pickUniversity {
			patch = types.SetUniversity(opt.value)
		}
		return m, m.setQuery(m.query.ApplyFilterChange(patch))
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		if m.selected != nil && m.selected.URL() != "" {
			return m, openInBrowser(m.selected.URL())
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil && m.selected.URL() != "" {
			return m, copyToClipboard(m.selected.URL())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the current view
func (m Model) View() string {
	if m.showDetail && m.selected != nil {
		return m.detailView()
	}
	if m.focus == focusPicker {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.picker.view(min(m.width-8, 60), m.height-4),
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(DraculaComment),
		)
	}

	mainWidth := m.mainWidth()
	bodyHeight := m.bodyHeight()

	body := m.resultView(mainWidth, bodyHeight)
	if m.sidebarVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.sidebarView(bodyHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.queryBarView(),
		body,
		m.statusView(),
		m.help.View(m.keys),
	)
}

func (m Model) headerView() string {
	return TitleStyle.Render("acadjobs") + SubtitleStyle.Render("academic job listings")
}

func (m Model) queryBarView() string {
	box := SearchBoxStyle
	if m.focus == focusSearch {
		box = SearchBoxFocusedStyle
	}
	search := box.Width(m.width - 2).Render(m.searchInput.View())

	category := m.query.Category
	if category == "" {
		category = "All"
	}
	university := m.query.University
	if university == "" {
		university = "All"
	}
	filters := " " + FilterLabelStyle.Render("category ") + FilterValueStyle.Render(category) +
		FilterLabelStyle.Render("   university ") + FilterValueStyle.Render(university)
	return lipgloss.JoinVertical(lipgloss.Left, search, filters)
}

func (m Model) statusView() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return ErrorStyle.Render(" " + m.statusMsg)
		}
		return StatusBarStyle.Render(" " + m.statusMsg)
	}

	parts := []string{deriveResultState(m.loading, m.err, len(m.jobs)).String()}
	if m.populated() {
		parts = append(parts, fmt.Sprintf("%d of %d jobs", len(m.jobs), m.pagination.TotalCount))
	}
	if m.query.HasFilters() {
		parts = append(parts, "filtered")
	}
	return StatusBarStyle.Render(" " + strings.Join(parts, " • "))
}

func (m Model) mainWidth() int {
	if m.sidebarVisible() {
		return m.width - sidebarWidth - 1
	}
	return m.width
}

func (m Model) bodyHeight() int {
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	h := m.height - headerHeight - footer
	if h < 3 {
		h = 3
	}
	return h
}

// resizePanes adjusts the list, help and overlay to the window size
func (m *Model) resizePanes() {
	m.help.Width = m.width
	m.searchInput.Width = m.width - 8

	listHeight := m.bodyHeight() - 2
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(m.mainWidth(), listHeight)
	m.list.SetDelegate(newJobDelegate(m.jobs, m.mainWidth()))
	m.resizeOverlay()
}
