package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/logger"
	"github.com/andy/quickinvoice/internal/service"
)

type memRepo struct {
	invoices []*domain.Invoice
}

func (m *memRepo) Load(ctx context.Context) ([]*domain.Invoice, error) {
	out := make([]*domain.Invoice, len(m.invoices))
	for i, inv := range m.invoices {
		out[i] = inv.Clone()
	}
	return out, nil
}

func (m *memRepo) Store(ctx context.Context, invoices []*domain.Invoice) error {
	m.invoices = invoices
	return nil
}

func (m *memRepo) Clear(ctx context.Context) error {
	m.invoices = nil
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (Model, *controller.Controller, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	ctrl := controller.New(service.NewInvoiceService(repo, logger.Nop()))
	require.NoError(t, ctrl.Load(context.Background()))

	m := New(ctrl, t.TempDir(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return next.(Model), ctrl, repo
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_CreateAndSave(t *testing.T) {
	m, ctrl, repo := newTestModel(t)
	assert.Equal(t, controller.ViewLanding, ctrl.View())

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, controller.ViewCreate, ctrl.View())

	// First input is the business name
	m = send(m, runes("Acme"))
	assert.Equal(t, "Acme", ctrl.Draft().BusinessName)
	assert.Contains(t, m.View(), "Create Invoice")

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Len(t, ctrl.Draft().Items, 2)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Len(t, ctrl.Draft().Items, 1)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, domain.TemplateModern, ctrl.Draft().Template)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, controller.ViewDashboard, ctrl.View())
	require.Len(t, repo.invoices, 1)
	assert.Equal(t, "Acme", repo.invoices[0].BusinessName)
	assert.Contains(t, m.View(), "Invoice saved successfully!")
}

func TestEditor_LivePreviewToggle(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("Acme"))

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Contains(t, m.View(), "back to form")
	assert.Contains(t, m.View(), "Acme")

	// Typing is ignored while the preview is showing
	m = send(m, runes("x"))
	assert.Equal(t, "Acme", ctrl.Draft().BusinessName)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlP}, runes("x"))
	assert.Equal(t, "Acmex", ctrl.Draft().BusinessName)
	assert.NotContains(t, m.View(), "back to form")
}

func TestModel_QuitSuppressedWhileTyping(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("q"))
	assert.Equal(t, controller.ViewCreate, ctrl.View())
	assert.Equal(t, "q", ctrl.Draft().BusinessName)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_DashboardActions(t *testing.T) {
	m, ctrl, repo := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, runes("Acme"), tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, repo.invoices, 1)

	m = send(m, runes("c"))
	require.Len(t, repo.invoices, 2)
	assert.Equal(t, "Invoice duplicated successfully!", toast(ctrl))

	// Delete needs confirmation
	m = send(m, runes("d"), runes("n"))
	assert.Len(t, repo.invoices, 2)
	m = send(m, runes("d"))
	assert.Contains(t, m.View(), "(y/n)")
	m = send(m, runes("y"))
	assert.Len(t, repo.invoices, 1)

	m = send(m, runes("p"))
	require.Equal(t, controller.ViewPreview, ctrl.View())
	assert.Contains(t, m.View(), "Acme")

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, controller.ViewDashboard, ctrl.View())

	m = send(m, runes("e"))
	require.Equal(t, controller.ViewCreate, ctrl.View())
	assert.True(t, ctrl.IsEditing())
	assert.True(t, strings.Contains(m.View(), "Edit Invoice"))

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, controller.ViewDashboard, ctrl.View())
}

func TestModel_CancelWithoutInvoicesReturnsToLanding(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, controller.ViewLanding, ctrl.View())
	assert.Contains(t, m.View(), "Create professional invoices")
}

func TestPreview_Export(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlS}, runes("p"))
	require.Equal(t, controller.ViewPreview, ctrl.View())

	_, cmd := m.Update(runes("t"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(exportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.True(t, strings.HasSuffix(msg.path, ".txt"))

	m = send(m, msg)
	assert.Contains(t, m.View(), "Saved")
}

func toast(c *controller.Controller) string {
	msg, _ := c.ActiveToast(time.Now())
	return msg
}
