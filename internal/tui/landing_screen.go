package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/domain"
)

var landingFeatures = []string{
	"Live totals while you type",
	"Five professional templates",
	"Print to PDF, HTML or plain text",
	"Everything stays on this machine, encrypted",
}

// LandingModel is the welcome screen
type LandingModel struct {
	ctrl *controller.Controller
}

// NewLandingModel creates the landing screen
func NewLandingModel(ctrl *controller.Controller) tea.Model {
	return &LandingModel{ctrl: ctrl}
}

func (m *LandingModel) Init() tea.Cmd {
	return nil
}

func (m *LandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DefaultKeyMap.Start):
			m.ctrl.GetStarted()
		case key.Matches(msg, DefaultKeyMap.Dashboard):
			m.ctrl.OpenDashboard()
		}
	}
	return m, nil
}

func (m *LandingModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Create professional invoices in seconds") + "\n")
	b.WriteString(subtitleStyle.Render("Fill in the form, pick a template and print.") + "\n\n")

	for _, f := range landingFeatures {
		fmt.Fprintf(&b, "  • %s\n", f)
	}

	b.WriteString("\n" + subtitleStyle.Render("  Templates") + "\n")
	for _, t := range domain.Templates() {
		fmt.Fprintf(&b, "  %-14s %s\n", t.Label(), subtitleStyle.Render(t.Description()))
	}

	if n := len(m.ctrl.Invoices()); n > 0 {
		fmt.Fprintf(&b, "\n  %d saved invoice(s)\n", n)
	}

	b.WriteString("\n" + helpStyle.Render("  enter: get started  d: dashboard  q: quit"))
	return b.String()
}
