package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/render"
)

// chrome is the vertical space taken by the frame, header, footer and help line
const chrome = 14

// PreviewModel shows the rendered invoice and exports it
type PreviewModel struct {
	ctrl      *controller.Controller
	exportDir string
	layout    render.Layout
	viewport  viewport.Model
	status    string
	err       error
}

// NewPreviewModel renders the invoice the controller is previewing
func NewPreviewModel(ctrl *controller.Controller, exportDir string, width, height int) tea.Model {
	m := &PreviewModel{ctrl: ctrl, exportDir: exportDir}
	if inv := ctrl.Previewing(); inv != nil {
		m.layout = render.Render(inv)
	}
	m.viewport = viewport.New(0, 0)
	m.resize(width, height)
	return m
}

func (m *PreviewModel) resize(width, height int) {
	w := width - 8
	if w < render.MinTextWidth {
		w = render.MinTextWidth
	}
	h := height - chrome
	if h < 5 {
		h = 5
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.viewport.SetContent(render.Text(m.layout, w))
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) export(format render.Format) tea.Cmd {
	l := m.layout
	path := filepath.Join(m.exportDir, render.FileName(l.Number, format))
	return func() tea.Msg {
		return exportedMsg{path: path, err: render.Export(l, format, path)}
	}
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Saved %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			if err := m.ctrl.Back(); err != nil {
				return m, errorCmd(err)
			}
			return m, nil
		case key.Matches(msg, DefaultKeyMap.ExportPDF):
			return m, m.export(render.FormatPDF)
		case key.Matches(msg, DefaultKeyMap.ExportHTML):
			return m, m.export(render.FormatHTML)
		case key.Matches(msg, DefaultKeyMap.ExportText):
			return m, m.export(render.FormatText)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *PreviewModel) View() string {
	s := titleStyle.Render(fmt.Sprintf("Invoice %s", m.layout.Number)) + "  "
	s += subtitleStyle.Render(m.layout.Template.Label()) + "\n\n"
	s += m.viewport.View() + "\n"

	switch {
	case m.err != nil:
		s += errorStyle.Render(fmt.Sprintf("  Export failed: %v", m.err)) + "\n"
	case m.status != "":
		s += totalStyle.Render("  "+m.status) + "\n"
	}

	s += helpStyle.Render("  ↑/↓: scroll  p: pdf  h: html  t: text  esc: back")
	return s
}
