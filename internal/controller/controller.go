// Package controller holds the application state shared by every front end:
// the current view, the draft being edited, the invoice being previewed and
// the transient toast.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/service"
)

// View is the screen the application is showing
type View int

const (
	ViewLanding View = iota
	ViewDashboard
	ViewCreate
	ViewPreview
)

func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewDashboard:
		return "dashboard"
	case ViewCreate:
		return "create"
	case ViewPreview:
		return "preview"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// ToastDuration is how long a toast stays visible
const ToastDuration = 3 * time.Second

// ErrNoPreview is returned when leaving a preview that was never opened
var ErrNoPreview = errors.New("no invoice is being previewed")

// Toast is a short confirmation message
type Toast struct {
	Message string
	Expires time.Time
}

// Profile prefills the business block and template of new drafts
type Profile struct {
	BusinessName    string
	BusinessEmail   string
	BusinessPhone   string
	BusinessAddress string
	Template        domain.Template
}

// Option configures a Controller
type Option func(*Controller)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithProfile sets the business profile applied to new drafts
func WithProfile(p Profile) Option {
	return func(c *Controller) { c.profile = p }
}

// Controller is not safe for concurrent use; front ends drive it from one goroutine.
type Controller struct {
	invoices service.InvoiceService
	now      func() time.Time
	profile  Profile

	view    View
	list    []*domain.Invoice
	draft   *domain.Draft
	editing *domain.Invoice
	preview *domain.Invoice
	toast   *Toast
}

// New returns a controller on the landing view with a fresh draft
func New(invoices service.InvoiceService, opts ...Option) *Controller {
	c := &Controller{
		invoices: invoices,
		now:      time.Now,
		view:     ViewLanding,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.draft = c.newDraft()
	return c
}

// Load refreshes the cached invoice list from storage
func (c *Controller) Load(ctx context.Context) error {
	list, err := c.invoices.List(ctx)
	if err != nil {
		return err
	}
	c.list = list
	return nil
}

func (c *Controller) View() View                      { return c.view }
func (c *Controller) Draft() *domain.Draft            { return c.draft }
func (c *Controller) Invoices() []*domain.Invoice     { return c.list }
func (c *Controller) Previewing() *domain.Invoice     { return c.preview }
func (c *Controller) Summary() *service.Summary       { return service.Summarize(c.list) }
func (c *Controller) IsEditing() bool                 { return c.editing != nil }
func (c *Controller) EditingInvoice() *domain.Invoice { return c.editing }

// GetStarted opens the editor from the landing page
func (c *Controller) GetStarted() {
	c.view = ViewCreate
}

// OpenDashboard shows the invoice list
func (c *Controller) OpenDashboard() {
	c.view = ViewDashboard
}

// CreateNew opens the editor on a fresh draft
func (c *Controller) CreateNew() {
	c.resetForm()
	c.view = ViewCreate
}

// Edit loads a copy of the stored invoice into the editor
func (c *Controller) Edit(ctx context.Context, id int64) error {
	inv, err := c.invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	c.draft = inv.ToDraft()
	c.editing = inv
	c.view = ViewCreate
	return nil
}

// Save persists the draft, returns to the dashboard and raises a toast
func (c *Controller) Save(ctx context.Context) (*domain.Invoice, error) {
	var editingID *int64
	msg := "Invoice saved successfully!"
	if c.editing != nil {
		id := c.editing.ID
		editingID = &id
		msg = "Invoice updated successfully!"
	}

	inv, err := c.invoices.Save(ctx, c.draft, editingID)
	if err != nil {
		return nil, err
	}

	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	c.resetForm()
	c.view = ViewDashboard
	c.showToast(msg)
	return inv, nil
}

// Cancel discards the draft. With no invoices stored it returns to the landing page.
func (c *Controller) Cancel() {
	c.resetForm()
	if len(c.list) == 0 {
		c.view = ViewLanding
		return
	}
	c.view = ViewDashboard
}

// Duplicate stores a copy of the invoice under a new identity
func (c *Controller) Duplicate(ctx context.Context, id int64) (*domain.Invoice, error) {
	dup, err := c.invoices.Duplicate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	c.showToast("Invoice duplicated successfully!")
	return dup, nil
}

// Delete removes the invoice. The view does not change.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.invoices.Delete(ctx, id); err != nil {
		return err
	}
	if c.preview != nil && c.preview.ID == id {
		c.preview = nil
	}
	if err := c.Load(ctx); err != nil {
		return err
	}
	c.showToast("Invoice deleted successfully!")
	return nil
}

// Print opens the preview for the invoice
func (c *Controller) Print(ctx context.Context, id int64) error {
	inv, err := c.invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	c.preview = inv
	c.view = ViewPreview
	return nil
}

// Back leaves the preview for the dashboard
func (c *Controller) Back() error {
	if c.view != ViewPreview {
		return ErrNoPreview
	}
	c.preview = nil
	c.view = ViewDashboard
	return nil
}

func (c *Controller) AddItem() {
	c.draft.AddItem()
}

func (c *Controller) RemoveItem(index int) error {
	return c.draft.RemoveItem(index)
}

// SetField updates a draft field; numeric input is coerced, templates validated
func (c *Controller) SetField(field domain.Field, value string) error {
	return c.draft.Set(field, value)
}

func (c *Controller) SetItemField(index int, field domain.ItemField, value string) error {
	return c.draft.SetItem(index, field, value)
}

// SetTemplate selects one of the enumerated templates
func (c *Controller) SetTemplate(t domain.Template) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTemplate, t)
	}
	c.draft.Template = t
	return nil
}

// CycleTemplate advances to the next template and returns it
func (c *Controller) CycleTemplate() domain.Template {
	c.draft.Template = c.draft.EffectiveTemplate().Next()
	return c.draft.Template
}

// ActiveToast returns the toast message while it has not expired
func (c *Controller) ActiveToast(now time.Time) (string, bool) {
	if c.toast == nil || !now.Before(c.toast.Expires) {
		return "", false
	}
	return c.toast.Message, true
}

// DismissToast clears the toast early
func (c *Controller) DismissToast() {
	c.toast = nil
}

func (c *Controller) showToast(msg string) {
	c.toast = &Toast{Message: msg, Expires: c.now().Add(ToastDuration)}
}

func (c *Controller) resetForm() {
	c.draft = c.newDraft()
	c.editing = nil
}

func (c *Controller) newDraft() *domain.Draft {
	d := domain.NewDefaultDraft(c.now())
	d.BusinessName = c.profile.BusinessName
	d.BusinessEmail = c.profile.BusinessEmail
	d.BusinessPhone = c.profile.BusinessPhone
	d.BusinessAddress = c.profile.BusinessAddress
	if c.profile.Template.Valid() {
		d.Template = c.profile.Template
	}
	return d
}
