package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	Category   key.Binding
	University key.Binding
	ClearAll   key.Binding
	Enter      key.Binding
	Back       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	PageButton key.Binding
	Open       key.Binding
	Copy       key.Binding
	Retry      key.Binding
	Sidebar    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Category:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	University: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "university")),
	ClearAll:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
	Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/←", "prev page")),
	NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l/→", "next page")),
	PageButton: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "page")),
	Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
	Retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
	Sidebar:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters panel")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.University, k.Enter, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Search, k.Category, k.University, k.ClearAll},
		{k.PrevPage, k.NextPage, k.PageButton, k.Retry},
		{k.Open, k.Copy, k.Sidebar, k.Help, k.Quit},
	}
}
