package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/quickinvoice/internal/app"
	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/logger"
)

// Model is the root Bubble Tea model. It owns the controller and mounts the
// screen matching controller.View().
type Model struct {
	ctrl      *controller.Controller
	log       *logger.Logger
	exportDir string
	now       func() time.Time
	width     int
	height    int

	// Screen models; the editor and preview are rebuilt on entry
	landing   tea.Model
	dashboard tea.Model
	editor    tea.Model
	preview   tea.Model

	err error
}

// New creates a root model over an already loaded controller
func New(ctrl *controller.Controller, exportDir string, log *logger.Logger) Model {
	if log == nil {
		log = logger.Nop()
	}
	m := Model{
		ctrl:      ctrl,
		log:       log,
		exportDir: exportDir,
		now:       time.Now,
		landing:   NewLandingModel(ctrl),
		dashboard: NewDashboardModel(ctrl),
	}
	m.enter(ctrl.View())
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if s := m.screen(); s != nil {
		return s.Init()
	}
	return nil
}

// enter prepares the screen for a view the controller just switched to
func (m *Model) enter(v controller.View) tea.Cmd {
	switch v {
	case controller.ViewCreate:
		m.editor = NewEditorModel(m.ctrl)
		return m.editor.Init()
	case controller.ViewPreview:
		m.preview = NewPreviewModel(m.ctrl, m.exportDir, m.width, m.height)
		return m.preview.Init()
	}
	return nil
}

func (m *Model) screen() tea.Model {
	switch m.ctrl.View() {
	case controller.ViewDashboard:
		return m.dashboard
	case controller.ViewCreate:
		return m.editor
	case controller.ViewPreview:
		return m.preview
	default:
		return m.landing
	}
}

func (m *Model) setScreen(v controller.View, s tea.Model) {
	switch v {
	case controller.ViewDashboard:
		m.dashboard = s
	case controller.ViewCreate:
		m.editor = s
	case controller.ViewPreview:
		m.preview = s
	default:
		m.landing = s
	}
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, the global quit key is suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to the current screen
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.err = nil
		if key.Matches(msg, DefaultKeyMap.ForceQuit) {
			return m, tea.Quit
		}
		if !m.activeScreenCapturingInput() && key.Matches(msg, DefaultKeyMap.Quit) {
			return m, tea.Quit
		}

	case toastExpiredMsg:
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.log.Warn().Err(msg.Err).Str("view", m.ctrl.View().String()).Msg("tui action failed")
		return m, nil
	}

	before := m.ctrl.View()

	var cmd tea.Cmd
	if s := m.screen(); s != nil {
		s, cmd = s.Update(msg)
		m.setScreen(before, s)
	}

	if after := m.ctrl.View(); after != before {
		m.log.Debug().Str("from", before.String()).Str("to", after.String()).Msg("view changed")
		cmd = tea.Batch(cmd, m.enter(after))
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("quickinvoice - %s", viewTitle(m.ctrl)))

	content := "Loading..."
	if s := m.screen(); s != nil {
		content = s.View()
	}

	status := ""
	if toast, ok := m.ctrl.ActiveToast(m.now()); ok {
		status = "\n" + toastStyle.Render("✓ "+toast)
	} else if m.err != nil {
		status = "\n" + errorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	}

	footer := footerStyle.Render(fmt.Sprintf("%d invoice(s)  [ctrl+c] Quit", len(m.ctrl.Invoices())))

	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(strings.Repeat("─", dividerWidth))

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, status, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

func viewTitle(c *controller.Controller) string {
	switch c.View() {
	case controller.ViewDashboard:
		return "Dashboard"
	case controller.ViewCreate:
		if c.IsEditing() {
			return "Edit Invoice"
		}
		return "Create Invoice"
	case controller.ViewPreview:
		return "Print Preview"
	default:
		return "Welcome"
	}
}

// Run starts the TUI on the landing screen
func Run(ctx context.Context, a *app.App) error {
	ctrl, err := a.NewController(ctx)
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	p := tea.NewProgram(New(ctrl, a.Config.Export.OutputDir, a.Log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
