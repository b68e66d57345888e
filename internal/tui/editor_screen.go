package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/render"
)

// editorField is one single-line input bound to a draft field or an item column
type editorField struct {
	section   string
	label     string
	field     domain.Field
	item      int // -1 for header fields
	itemField domain.ItemField
	input     textinput.Model
}

type headerField struct {
	section     string
	label       string
	field       domain.Field
	placeholder string
	width       int
}

var headerFields = []headerField{
	{"From", "Business name", domain.FieldBusinessName, "Your Business", 40},
	{"From", "Email", domain.FieldBusinessEmail, "you@business.com", 40},
	{"From", "Phone", domain.FieldBusinessPhone, "+1 555 0100", 20},
	{"From", "Address", domain.FieldBusinessAddress, "123 Main St, City", 50},
	{"Bill To", "Client name", domain.FieldClientName, "Client Inc.", 40},
	{"Bill To", "Email", domain.FieldClientEmail, "client@example.com", 40},
	{"Bill To", "Address", domain.FieldClientAddress, "456 Market St, City", 50},
	{"Invoice Details", "Invoice number", domain.FieldInvoiceNumber, "INV-001", 24},
	{"Invoice Details", "Invoice date", domain.FieldInvoiceDate, domain.DateLayout, 12},
	{"Invoice Details", "Due date", domain.FieldDueDate, domain.DateLayout, 12},
	{"Invoice Details", "Tax rate (%)", domain.FieldTaxRate, "0", 8},
}

// EditorModel is the create/edit form with live totals
type EditorModel struct {
	ctrl   *controller.Controller
	fields []editorField
	notes  textarea.Model
	focus  int // len(fields) focuses the notes area

	// showPreview swaps the form for the rendered draft
	showPreview bool
}

// NewEditorModel builds inputs from the controller's current draft
func NewEditorModel(ctrl *controller.Controller) tea.Model {
	m := &EditorModel{ctrl: ctrl}
	m.notes = textarea.New()
	m.notes.Placeholder = domain.DefaultNotes
	m.notes.SetWidth(50)
	m.notes.SetHeight(3)
	m.notes.ShowLineNumbers = false
	m.notes.SetValue(ctrl.Draft().Notes)
	m.rebuild(0)
	return m
}

// IsCapturingInput is always true: every key belongs to the form
func (m *EditorModel) IsCapturingInput() bool {
	return true
}

func (m *EditorModel) Init() tea.Cmd {
	return m.focusCurrent()
}

// rebuild recreates the inputs from the draft, used after rows are added or removed
func (m *EditorModel) rebuild(focus int) {
	d := m.ctrl.Draft()
	m.fields = m.fields[:0]

	for _, h := range headerFields {
		in := textinput.New()
		in.Placeholder = h.placeholder
		in.CharLimit = 200
		in.Width = h.width
		v, _ := d.Get(h.field)
		in.SetValue(v)
		m.fields = append(m.fields, editorField{
			section: h.section, label: h.label, field: h.field, item: -1, input: in,
		})
	}

	for i, item := range d.Items {
		m.fields = append(m.fields,
			m.itemInput(i, itemLabel(i), domain.ItemDescription, "Description", item.Description, 36),
			m.itemInput(i, "Quantity", domain.ItemQuantity, "1", domain.FormatNumber(item.Quantity), 8),
			m.itemInput(i, "Rate", domain.ItemRate, "0.00", domain.FormatNumber(item.Rate), 10),
		)
	}

	m.focus = clampCursor(focus, len(m.fields)+1)
}

// itemLabel is the row heading of the i-th line item
func itemLabel(i int) string {
	return fmt.Sprintf("Item %d", i+1)
}

func (m *EditorModel) itemInput(i int, label string, f domain.ItemField, placeholder, value string, width int) editorField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = width
	in.SetValue(value)
	return editorField{section: "Items", label: label, item: i, itemField: f, input: in}
}

func (m *EditorModel) onNotes() bool {
	return m.focus == len(m.fields)
}

func (m *EditorModel) blurAll() {
	for i := range m.fields {
		m.fields[i].input.Blur()
	}
	m.notes.Blur()
}

func (m *EditorModel) focusCurrent() tea.Cmd {
	m.blurAll()
	if m.onNotes() {
		return m.notes.Focus()
	}
	return m.fields[m.focus].input.Focus()
}

func (m *EditorModel) move(delta int) tea.Cmd {
	n := len(m.fields) + 1
	m.focus = (m.focus + delta + n) % n
	return m.focusCurrent()
}

// focusedItem returns the item index under the cursor, or the last item
func (m *EditorModel) focusedItem() int {
	if !m.onNotes() && m.fields[m.focus].item >= 0 {
		return m.fields[m.focus].item
	}
	return len(m.ctrl.Draft().Items) - 1
}

// firstItemField returns the input index of item i's description
func (m *EditorModel) firstItemField(i int) int {
	return len(headerFields) + i*3
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Back):
		m.ctrl.Cancel()
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.Save):
		if _, err := m.ctrl.Save(context.Background()); err != nil {
			return m, errorCmd(fmt.Errorf("save invoice: %w", err))
		}
		return m, toastTick()

	case key.Matches(keyMsg, DefaultKeyMap.Template):
		m.ctrl.CycleTemplate()
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.Preview):
		m.showPreview = !m.showPreview
		return m, nil
	}

	if m.showPreview {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.AddItem):
		m.ctrl.AddItem()
		m.rebuild(m.firstItemField(len(m.ctrl.Draft().Items) - 1))
		return m, m.focusCurrent()

	case key.Matches(keyMsg, DefaultKeyMap.RemoveItem):
		i := m.focusedItem()
		if i < 0 {
			return m, nil
		}
		if err := m.ctrl.RemoveItem(i); err != nil {
			return m, errorCmd(err)
		}
		m.rebuild(m.firstItemField(i))
		return m, m.focusCurrent()
	}

	// The notes area takes enter and arrows for itself
	if m.onNotes() {
		switch keyMsg.String() {
		case "tab":
			return m, m.move(1)
		case "shift+tab":
			return m, m.move(-1)
		}
		return m, m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.NextField):
		return m, m.move(1)
	case key.Matches(keyMsg, DefaultKeyMap.PrevField):
		return m, m.move(-1)
	}

	return m, m.updateFocused(msg)
}

// updateFocused feeds msg to the focused input and writes its value to the draft
func (m *EditorModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.onNotes() {
		m.notes, cmd = m.notes.Update(msg)
		_ = m.ctrl.SetField(domain.FieldNotes, m.notes.Value())
		return cmd
	}

	f := &m.fields[m.focus]
	f.input, cmd = f.input.Update(msg)

	var err error
	if f.item >= 0 {
		err = m.ctrl.SetItemField(f.item, f.itemField, f.input.Value())
	} else {
		err = m.ctrl.SetField(f.field, f.input.Value())
	}
	if err != nil {
		return tea.Batch(cmd, errorCmd(err))
	}
	return cmd
}

func (m *EditorModel) View() string {
	var b strings.Builder
	d := m.ctrl.Draft()

	if m.showPreview {
		b.WriteString(render.Text(render.Preview(d), 80) + "\n\n")
		b.WriteString(helpStyle.Render("  ctrl+p: back to form  ctrl+t: template  ctrl+s: save  esc: cancel"))
		return b.String()
	}

	title := "Create Invoice"
	if inv := m.ctrl.EditingInvoice(); inv != nil {
		title = "Edit Invoice " + inv.InvoiceNumber
	}
	b.WriteString(titleStyle.Render(title) + "  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Template: %s", d.EffectiveTemplate().Label())) + "\n")

	section := ""
	for i, f := range m.fields {
		if f.section != section {
			section = f.section
			b.WriteString("\n" + subtitleStyle.Render(section) + "\n")
		}
		label := f.label
		if f.item >= 0 && f.itemField == domain.ItemDescription {
			label = itemLabel(f.item)
		} else if f.item >= 0 {
			label = "  " + f.label
		}
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		b.WriteString(cursor + labelStyle.Render(label) + f.input.View())
		if f.item >= 0 && f.itemField == domain.ItemRate {
			b.WriteString("  " + subtitleStyle.Render(money(d.Items[f.item].Amount())))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + subtitleStyle.Render("Notes") + "\n")
	b.WriteString(m.notes.View() + "\n\n")

	subtotal := d.Subtotal()
	fmt.Fprintf(&b, "  %-14s %12s\n", "Subtotal:", money(subtotal))
	if d.TaxRate != 0 {
		fmt.Fprintf(&b, "  %-14s %12s\n",
			fmt.Sprintf("Tax (%s%%):", domain.FormatNumber(d.TaxRate)),
			money(domain.TaxAmount(subtotal, d.TaxRate)))
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("  %-14s %12s", "Total:", money(d.Total()))) + "\n")

	b.WriteString("\n" + helpStyle.Render(
		"  tab/shift+tab: move  ctrl+a: add item  ctrl+d: remove item  ctrl+t: template  ctrl+p: preview  ctrl+s: save  esc: cancel"))
	return b.String()
}
