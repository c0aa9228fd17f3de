package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

type pickerKind int

const (
	pickCategory pickerKind = iota
	pickUniversity
)

// pickerOption is one choice; an empty value means "no filter".
type pickerOption struct {
	label string
	value string
}

// picker is a modal option list with a fuzzy filter input. It backs both
// the category and university selectors of the query bar.
type picker struct {
	kind    pickerKind
	title   string
	options []pickerOption
	input   textinput.Model
	matches []int
	cursor  int
}

type pickerResult int

const (
	pickerPending pickerResult = iota
	pickerChosen
	pickerCanceled
)

var (
	pickerUp     = key.NewBinding(key.WithKeys("up", "ctrl+p", "ctrl+k"))
	pickerDown   = key.NewBinding(key.WithKeys("down", "ctrl+n", "ctrl+j"))
	pickerChoose = key.NewBinding(key.WithKeys("enter"))
	pickerCancel = key.NewBinding(key.WithKeys("esc"))
)

// newPicker builds a picker whose first option is "All" and whose cursor
// starts on current.
func newPicker(kind pickerKind, title string, values []string, current string) picker {
	options := make([]pickerOption, 0, len(values)+1)
	options = append(options, pickerOption{label: "All", value: ""})
	for _, v := range values {
		options = append(options, pickerOption{label: v, value: v})
	}

	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	p := picker{
		kind:    kind,
		title:   title,
		options: options,
		input:   ti,
	}
	p.refilter()
	for i, idx := range p.matches {
		if options[idx].value == current {
			p.cursor = i
			break
		}
	}
	return p
}

// update feeds a key press to the picker.
func (p picker) update(msg tea.KeyMsg) (picker, pickerResult) {
	switch {
	case key.Matches(msg, pickerCancel):
		return p, pickerCanceled
	case key.Matches(msg, pickerChoose):
		if len(p.matches) == 0 {
			return p, pickerPending
		}
		return p, pickerChosen
	case key.Matches(msg, pickerUp):
		if p.cursor > 0 {
			p.cursor--
		}
		return p, pickerPending
	case key.Matches(msg, pickerDown):
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return p, pickerPending
	}

	before := p.input.Value()
	p.input, _ = p.input.Update(msg)
	if p.input.Value() != before {
		p.cursor = 0
		p.refilter()
	}
	return p, pickerPending
}

// selected returns the option under the cursor.
func (p picker) selected() (pickerOption, bool) {
	if p.cursor < 0 || p.cursor >= len(p.matches) {
		return pickerOption{}, false
	}
	return p.options[p.matches[p.cursor]], true
}

func (p *picker) refilter() {
	query := strings.TrimSpace(p.input.Value())
	matches := make([]int, 0, len(p.options))
	if query == "" {
		for i := range p.options {
			matches = append(matches, i)
		}
	} else {
		labels := make([]string, len(p.options))
		for i, o := range p.options {
			labels[i] = o.label
		}
		for _, m := range fuzzy.Find(query, labels) {
			matches = append(matches, m.Index)
		}
	}
	p.matches = matches
	if p.cursor >= len(p.matches) {
		p.cursor = len(p.matches) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p picker) view(width, height int) string {
	if width < 20 {
		width = 20
	}
	maxRows := height - 6
	if maxRows < 3 {
		maxRows = 3
	}

	start := 0
	if p.cursor >= maxRows {
		start = p.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(p.matches) {
		end = len(p.matches)
	}

	rows := make([]string, 0, maxRows)
	for i := start; i < end; i++ {
		label := p.options[p.matches[i]].label
		if i == p.cursor {
			rows = append(rows, PickerItemSelectedStyle.Render(label))
			continue
		}
		rows = append(rows, PickerItemStyle.Render(label))
	}
	if len(rows) == 0 {
		rows = append(rows, EmptyStyle.Render("  no matches"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		DetailTitleStyle.Render(p.title),
		p.input.View(),
		"",
		strings.Join(rows, "\n"),
		"",
		StatusBarStyle.Render("enter: select • esc: cancel"),
	)
	return OverlayStyle.Width(width).Render(body)
}
