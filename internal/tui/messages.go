package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/quickinvoice/internal/controller"
)

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// toastExpiredMsg forces a redraw once a toast has timed out
type toastExpiredMsg struct{}

// exportedMsg reports the result of writing an invoice to disk
type exportedMsg struct {
	path string
	err  error
}

func toastTick() tea.Cmd {
	return tea.Tick(controller.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}
