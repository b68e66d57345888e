package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/quickinvoice/internal/controller"
)

// DashboardModel shows the stats and the saved invoices
type DashboardModel struct {
	ctrl          *controller.Controller
	cursor        int
	confirmDelete bool
}

// NewDashboardModel creates the dashboard screen
func NewDashboardModel(ctrl *controller.Controller) tea.Model {
	return &DashboardModel{ctrl: ctrl}
}

// IsCapturingInput is true while a delete confirmation is pending
func (m *DashboardModel) IsCapturingInput() bool {
	return m.confirmDelete
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) selectedID() (int64, bool) {
	list := m.ctrl.Invoices()
	if len(list) == 0 {
		return 0, false
	}
	m.cursor = clampCursor(m.cursor, len(list))
	return list[m.cursor].ID, true
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	ctx := context.Background()

	if m.confirmDelete {
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Confirm):
			m.confirmDelete = false
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}
			if err := m.ctrl.Delete(ctx, id); err != nil {
				return m, errorCmd(fmt.Errorf("delete invoice: %w", err))
			}
			m.cursor = clampCursor(m.cursor, len(m.ctrl.Invoices()))
			return m, toastTick()
		case key.Matches(keyMsg, DefaultKeyMap.Deny):
			m.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(m.ctrl.Invoices())-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.New):
		m.ctrl.CreateNew()
	case key.Matches(keyMsg, DefaultKeyMap.Print):
		if id, ok := m.selectedID(); ok {
			if err := m.ctrl.Print(ctx, id); err != nil {
				return m, errorCmd(fmt.Errorf("print invoice: %w", err))
			}
		}
	case key.Matches(keyMsg, DefaultKeyMap.Edit):
		if id, ok := m.selectedID(); ok {
			if err := m.ctrl.Edit(ctx, id); err != nil {
				return m, errorCmd(fmt.Errorf("edit invoice: %w", err))
			}
		}
	case key.Matches(keyMsg, DefaultKeyMap.Duplicate):
		if id, ok := m.selectedID(); ok {
			if _, err := m.ctrl.Duplicate(ctx, id); err != nil {
				return m, errorCmd(fmt.Errorf("duplicate invoice: %w", err))
			}
			return m, toastTick()
		}
	case key.Matches(keyMsg, DefaultKeyMap.Delete):
		if _, ok := m.selectedID(); ok {
			m.confirmDelete = true
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	var s string

	summary := m.ctrl.Summary()
	s += lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Total Invoices", fmt.Sprintf("%d", summary.InvoiceCount)),
		" ",
		statBox("Total Revenue", money(summary.TotalRevenue)),
		" ",
		statBox("Clients", fmt.Sprintf("%d", summary.ClientCount)),
	) + "\n\n"

	list := m.ctrl.Invoices()
	if len(list) == 0 {
		s += subtitleStyle.Render("  No invoices yet. Press n to create your first one.") + "\n"
		s += "\n" + helpStyle.Render("  n: new invoice  q: quit")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %-18s  %-22s  %-10s  %-10s  %-12s  %12s",
		"Number", "Client", "Date", "Due", "Template", "Total")) + "\n"

	for i, inv := range list {
		line := fmt.Sprintf("  %-18s  %-22s  %-10s  %-10s  %-12s  %12s",
			truncateStr(orDash(inv.InvoiceNumber), 18),
			truncateStr(orDash(inv.ClientName), 22),
			orDash(inv.InvoiceDate),
			orDash(inv.DueDate),
			inv.EffectiveTemplate().Label(),
			money(inv.Total),
		)
		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	if m.confirmDelete && m.cursor < len(list) {
		s += "\n" + warningStyle.Render(fmt.Sprintf("  Delete %s? (y/n)", orDash(list[m.cursor].InvoiceNumber)))
		return s
	}

	s += "\n" + helpStyle.Render(strings.Join([]string{
		"  j/k: navigate", "enter/p: print", "e: edit", "c: duplicate", "d: delete", "n: new", "q: quit",
	}, "  "))
	return s
}
