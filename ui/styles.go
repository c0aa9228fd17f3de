package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette (identical to lazyadmin)
var (
	DraculaBackground = lipgloss.AdaptiveColor{Light: "0", Dark: "0"}
	DraculaForeground = lipgloss.AdaptiveColor{Light: "255", Dark: "255"}
	DraculaPurple     = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "14", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "10", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}
	DraculaOrange     = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	// Header
	TitleStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)

	// Query bar
	SearchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DraculaComment).
			Padding(0, 1)
	SearchBoxFocusedStyle = SearchBoxStyle.
				BorderForeground(DraculaPink)
	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(DraculaComment)
	FilterValueStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Bold(true)

	// Job cards
	CardTitleStyle = lipgloss.NewStyle().
			Foreground(DraculaCyan)
	CardTitleSelectedStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	CardMetaStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	CardBodyStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)
	CategoryBadgeStyle = lipgloss.NewStyle().
				Foreground(DraculaBackground).
				Background(DraculaPurple).
				Padding(0, 1)

	// Pagination bar
	PageButtonStyle = lipgloss.NewStyle().
			Foreground(DraculaCyan).
			Padding(0, 1)
	PageButtonActiveStyle = lipgloss.NewStyle().
				Foreground(DraculaBackground).
				Background(DraculaPink).
				Bold(true).
				Padding(0, 1)
	PageButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Faint(true).
				Padding(0, 1)

	// Result states
	EmptyStyle = lipgloss.NewStyle().
			Foreground(DraculaComment).
			Italic(true)
	ErrorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DraculaRed).
				Foreground(DraculaRed).
				Padding(0, 2)

	// Detail overlay
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(DraculaPink).
			Padding(0, 1)
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	DetailSubtitleStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Italic(true)
	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(DraculaComment)
	DetailLinkStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen).
			Underline(true)

	// Sidebar
	SidebarStyle = lipgloss.NewStyle().
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(DraculaComment).
			PaddingLeft(1)
	SidebarHeadingStyle = lipgloss.NewStyle().
				Foreground(DraculaOrange).
				Bold(true)
	SidebarNumberStyle = lipgloss.NewStyle().
				Foreground(DraculaGreen).
				Bold(true)

	// Picker
	PickerItemStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground).
			PaddingLeft(2)
	PickerItemSelectedStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true).
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(DraculaPink).
				PaddingLeft(1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DraculaRed)
)
