package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestController(t *testing.T, opts ...Option) (*Controller, *memRepo, *clock) {
	t.Helper()
	repo := &memRepo{}
	clk := &clock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := service.NewInvoiceService(repo, logger.Nop())
	c := New(svc, append([]Option{WithClock(clk.now)}, opts...)...)
	require.NoError(t, c.Load(context.Background()))
	return c, repo, clk
}

func fillDraft(t *testing.T, c *Controller, client string) {
	t.Helper()
	require.NoError(t, c.SetField(domain.FieldClientName, client))
	require.NoError(t, c.SetItemField(0, domain.ItemDescription, "Design"))
	require.NoError(t, c.SetItemField(0, domain.ItemQuantity, "2"))
	require.NoError(t, c.SetItemField(0, domain.ItemRate, "50"))
	require.NoError(t, c.SetField(domain.FieldTaxRate, "10"))
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "landing", ViewLanding.String())
	assert.Equal(t, "preview", ViewPreview.String())
	assert.Equal(t, "View(9)", View(9).String())
}

func TestNew_StartsOnLanding(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.Equal(t, ViewLanding, c.View())
	require.NotNil(t, c.Draft())
	assert.Len(t, c.Draft().Items, 1)
	assert.False(t, c.IsEditing())
}

func TestCreateSaveFlow(t *testing.T) {
	ctx := context.Background()
	c, repo, clk := newTestController(t)

	c.GetStarted()
	assert.Equal(t, ViewCreate, c.View())
	fillDraft(t, c, "Globex")

	inv, err := c.Save(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 110, inv.Total, 1e-9)
	assert.Equal(t, ViewDashboard, c.View())
	assert.Len(t, repo.invoices, 1)
	assert.Len(t, c.Invoices(), 1)
	assert.Empty(t, c.Draft().ClientName, "form resets after save")

	msg, ok := c.ActiveToast(clk.t)
	assert.True(t, ok)
	assert.Equal(t, "Invoice saved successfully!", msg)

	_, ok = c.ActiveToast(clk.t.Add(ToastDuration))
	assert.False(t, ok, "toast expires after three seconds")
}

func TestEditFlow(t *testing.T) {
	ctx := context.Background()
	c, repo, _ := newTestController(t)

	c.CreateNew()
	fillDraft(t, c, "Globex")
	saved, err := c.Save(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Edit(ctx, saved.ID))
	assert.Equal(t, ViewCreate, c.View())
	assert.True(t, c.IsEditing())
	assert.Equal(t, "Globex", c.Draft().ClientName)

	require.NoError(t, c.SetField(domain.FieldClientName, "Initech"))
	assert.Equal(t, "Globex", repo.invoices[0].ClientName, "draft edits do not touch storage")

	updated, err := c.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Initech", repo.invoices[0].ClientName)
	assert.False(t, c.IsEditing())

	msg, _ := c.ActiveToast(time.Date(2026, 5, 1, 9, 0, 1, 0, time.UTC))
	assert.Equal(t, "Invoice updated successfully!", msg)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestController(t)

	c.GetStarted()
	require.NoError(t, c.SetField(domain.FieldClientName, "Globex"))
	c.Cancel()
	assert.Equal(t, ViewLanding, c.View(), "no invoices yet")
	assert.Empty(t, c.Draft().ClientName)

	c.CreateNew()
	fillDraft(t, c, "Globex")
	_, err := c.Save(ctx)
	require.NoError(t, err)

	c.CreateNew()
	c.Cancel()
	assert.Equal(t, ViewDashboard, c.View())
}

func TestPrintAndBack(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestController(t)

	assert.ErrorIs(t, c.Back(), ErrNoPreview)

	c.CreateNew()
	fillDraft(t, c, "Globex")
	inv, err := c.Save(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Print(ctx, inv.ID))
	assert.Equal(t, ViewPreview, c.View())
	require.NotNil(t, c.Previewing())
	assert.Equal(t, inv.ID, c.Previewing().ID)

	require.NoError(t, c.Back())
	assert.Equal(t, ViewDashboard, c.View())
	assert.Nil(t, c.Previewing())

	assert.ErrorIs(t, c.Print(ctx, inv.ID+100), domain.ErrInvoiceNotFound)
}

func TestDuplicateAndDelete(t *testing.T) {
	ctx := context.Background()
	c, repo, clk := newTestController(t)

	c.CreateNew()
	fillDraft(t, c, "Globex")
	src, err := c.Save(ctx)
	require.NoError(t, err)

	clk.t = clk.t.Add(time.Hour)
	dup, err := c.Duplicate(ctx, src.ID)
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Len(t, c.Invoices(), 2)
	msg, _ := c.ActiveToast(clk.t)
	assert.Equal(t, "Invoice duplicated successfully!", msg)

	require.NoError(t, c.Delete(ctx, src.ID))
	require.Len(t, repo.invoices, 1)
	assert.Equal(t, dup.ID, repo.invoices[0].ID)
	assert.Equal(t, ViewDashboard, c.View())

	s := c.Summary()
	assert.Equal(t, 1, s.InvoiceCount)
	assert.Equal(t, 1, s.ClientCount)
	assert.InDelta(t, 110, s.TotalRevenue, 1e-9)

	assert.ErrorIs(t, c.Delete(ctx, src.ID), domain.ErrInvoiceNotFound)
}

func TestItemsAndTemplates(t *testing.T) {
	c, _, _ := newTestController(t)
	c.GetStarted()

	c.AddItem()
	assert.Len(t, c.Draft().Items, 2)
	require.NoError(t, c.RemoveItem(0))
	assert.Len(t, c.Draft().Items, 1)
	assert.ErrorIs(t, c.RemoveItem(3), domain.ErrItemOutOfRange)

	assert.ErrorIs(t, c.SetField(domain.Field("bogus"), "x"), domain.ErrUnknownField)

	require.NoError(t, c.SetTemplate(domain.TemplateMinimal))
	assert.Equal(t, domain.TemplateMinimal, c.Draft().Template)
	assert.ErrorIs(t, c.SetTemplate("neon"), domain.ErrUnknownTemplate)

	assert.Equal(t, domain.TemplateProfessional, c.CycleTemplate())
}

func TestProfileAppliedToNewDrafts(t *testing.T) {
	c, _, _ := newTestController(t, WithProfile(Profile{
		BusinessName:  "Acme Studio",
		BusinessEmail: "hello@acme.test",
		Template:      domain.TemplateCreative,
	}))

	assert.Equal(t, "Acme Studio", c.Draft().BusinessName)
	assert.Equal(t, domain.TemplateCreative, c.Draft().Template)

	require.NoError(t, c.SetField(domain.FieldBusinessName, "Other"))
	c.CreateNew()
	assert.Equal(t, "Acme Studio", c.Draft().BusinessName)
}

func TestDismissToast(t *testing.T) {
	ctx := context.Background()
	c, _, clk := newTestController(t)

	c.CreateNew()
	_, err := c.Save(ctx)
	require.NoError(t, err)

	c.DismissToast()
	_, ok := c.ActiveToast(clk.t)
	assert.False(t, ok)
}
