package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qyinm/acadjobs/types"
)

// Message types for async operations

type jobsMsg struct {
	requestID int
	query     types.Query
	page      types.JobPage
	err       error
}

type statsMsg struct {
	requestID int
	stats     types.Stats
	err       error
}

type statusMsg struct {
	text string
	err  error
}

// fetchJobs returns a tea.Cmd that fetches one page of jobs for q. The
// request id and query travel with the result so the model can drop
// responses that a newer request has superseded.
func fetchJobs(source types.JobSource, q types.Query, limit int, requestID int) tea.Cmd {
	return func() tea.Msg {
		page, err := source.GetJobs(context.Background(), q, limit)
		return jobsMsg{requestID: requestID, query: q, page: page, err: err}
	}
}

// fetchStats returns a tea.Cmd that fetches the aggregate stats
func fetchStats(source types.JobSource, requestID int) tea.Cmd {
	return func() tea.Msg {
		stats, err := source.GetStats(context.Background())
		return statsMsg{requestID: requestID, stats: stats, err: err}
	}
}

// copyToClipboard returns a tea.Cmd that puts text on the system clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{err: fmt.Errorf("copy link: %w", err)}
		}
		return statusMsg{text: "Link copied to clipboard"}
	}
}

// openInBrowser returns a tea.Cmd that hands url to the platform opener
func openInBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
		if err := cmd.Start(); err != nil {
			return statusMsg{err: fmt.Errorf("open link: %w", err)}
		}
		go func() { _ = cmd.Wait() }()
		return statusMsg{text: "Opened " + url}
	}
}
