// Package render turns an invoice into a printable Layout and writes that
// layout out as terminal text, HTML or PDF.
package render

import (
	"strings"
	"time"

	"github.com/andy/quickinvoice/internal/domain"
)

// Field is a label/value pair. Label may be empty.
type Field struct {
	Label  string
	Value  string
	Strong bool
}

// Block is a headed group of lines, e.g. the bill-to address
type Block struct {
	Heading string
	Icon    string
	Title   string
	Lines   []string
}

// Row is one rendered line item
type Row struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// Border names the frame drawn by the text and HTML backends
type Border string

const (
	BorderNormal  Border = "normal"
	BorderRounded Border = "rounded"
	BorderThick   Border = "thick"
	BorderDouble  Border = "double"
	BorderHidden  Border = "hidden"
)

// Style is the per-variant presentation. Colors are #rrggbb.
type Style struct {
	Primary   string
	Secondary string
	Muted     string
	Text      string
	Surface   string
	Border    Border
	Font      string // CSS font stack
	Banner    bool   // header drawn on a filled band
	Uppercase bool   // uppercase section labels
}

// Layout is the structured, backend independent rendering of one invoice
type Layout struct {
	Template    domain.Template
	Style       Style
	Title       string
	Number      string
	Business    Block
	BillTo      Block
	MetaHeading Block
	Meta        []Field
	Columns     [4]string
	Rows        []Row
	Totals      []Field
	Notes       *Block
}

// Render selects the variant named by the invoice's template. Unknown or empty
// templates render as classic. Render never mutates the invoice.
func Render(inv *domain.Invoice) Layout {
	v, ok := variants[inv.EffectiveTemplate()]
	if !ok {
		v = classic
	}
	return v(inv)
}

// Preview renders an unsaved draft with its live totals
func Preview(d *domain.Draft) Layout {
	return Render(domain.Finalize(d, 0, time.Time{}))
}

type variant func(inv *domain.Invoice) Layout

var variants = map[domain.Template]variant{
	domain.TemplateClassic:      classic,
	domain.TemplateModern:       modern,
	domain.TemplateMinimal:      minimal,
	domain.TemplateProfessional: professional,
	domain.TemplateCreative:     creative,
}

// labels is the wording a variant uses around the shared structure
type labels struct {
	title       string
	billTo      string
	billToIcon  string
	invoiceDate string
	dueDate     string
	subtotal    string
	tax         string // gets " (<rate>%)" and the suffix appended
	total       string
	notes       string
	notesIcon   string
	suffix      string // ":" or ""
}

var standardLabels = labels{
	title:       "INVOICE",
	billTo:      "Bill To",
	invoiceDate: "Invoice Date",
	dueDate:     "Due Date",
	subtotal:    "Subtotal",
	tax:         "Tax",
	total:       "Total",
	notes:       "Notes",
	suffix:      ":",
}

var columns = [4]string{"Description", "Qty", "Rate", "Amount"}

func classic(inv *domain.Invoice) Layout {
	l := build(inv, standardLabels, Style{
		Primary:   "#4f46e5",
		Secondary: "#111827",
		Muted:     "#4b5563",
		Text:      "#111827",
		Surface:   "#ffffff",
		Border:    BorderNormal,
		Font:      "system-ui, -apple-system, 'Segoe UI', sans-serif",
		Uppercase: true,
	})
	l.Meta = dates(inv, "Invoice Date:", "Due Date:")
	return l
}

func modern(inv *domain.Invoice) Layout {
	l := build(inv, standardLabels, Style{
		Primary:   "#4f46e5",
		Secondary: "#7c3aed",
		Muted:     "#6b7280",
		Text:      "#111827",
		Surface:   "#f5f3ff",
		Border:    BorderRounded,
		Font:      "'Inter', system-ui, sans-serif",
		Banner:    true,
		Uppercase: true,
	})
	l.Meta = dates(inv, "Invoice Date", "Due Date")
	return l
}

func minimal(inv *domain.Invoice) Layout {
	lb := standardLabels
	lb.title = "Invoice"
	lb.billTo = "Billed To"
	lb.suffix = ""

	l := build(inv, lb, Style{
		Primary:   "#111827",
		Secondary: "#374151",
		Muted:     "#6b7280",
		Text:      "#111827",
		Surface:   "#ffffff",
		Border:    BorderHidden,
		Font:      "'Helvetica Neue', Helvetica, Arial, sans-serif",
	})

	l.Meta = []Field{{Value: inv.InvoiceDate}}
	if inv.DueDate != "" {
		l.Meta = append(l.Meta, Field{Label: "Due:", Value: inv.DueDate})
	}
	return l
}

func professional(inv *domain.Invoice) Layout {
	l := build(inv, standardLabels, Style{
		Primary:   "#1f2937",
		Secondary: "#374151",
		Muted:     "#4b5563",
		Text:      "#111827",
		Surface:   "#ffffff",
		Border:    BorderThick,
		Font:      "Georgia, 'Times New Roman', serif",
		Uppercase: true,
	})
	l.MetaHeading = Block{Heading: "Invoice Details:"}
	l.Meta = dates(inv, "Date:", "Due:")
	return l
}

func creative(inv *domain.Invoice) Layout {
	lb := standardLabels
	lb.billToIcon = "🎨"
	lb.notesIcon = "💬"

	l := build(inv, lb, Style{
		Primary:   "#db2777",
		Secondary: "#7e22ce",
		Muted:     "#7e22ce",
		Text:      "#581c87",
		Surface:   "#fdf2f8",
		Border:    BorderDouble,
		Font:      "'Poppins', 'Trebuchet MS', sans-serif",
		Banner:    true,
	})
	l.MetaHeading = Block{Heading: "Dates:", Icon: "📅"}
	l.Meta = dates(inv, "Invoice Date", "Due Date")
	return l
}

// build fills the structure shared by every variant
func build(inv *domain.Invoice, lb labels, style Style) Layout {
	l := Layout{
		Template: inv.EffectiveTemplate(),
		Style:    style,
		Title:    lb.title,
		Number:   "#" + inv.InvoiceNumber,
		Business: Block{
			Title: inv.BusinessName,
			Lines: lines(inv.BusinessEmail, inv.BusinessPhone, inv.BusinessAddress),
		},
		BillTo: Block{
			Heading: lb.billTo + lb.suffix,
			Icon:    lb.billToIcon,
			Title:   inv.ClientName,
			Lines:   lines(inv.ClientEmail, inv.ClientAddress),
		},
		Columns: columns,
		Rows:    make([]Row, 0, len(inv.Items)),
	}

	for _, item := range inv.Items {
		l.Rows = append(l.Rows, Row{
			Description: item.Description,
			Quantity:    domain.FormatNumber(item.Quantity),
			Rate:        domain.FormatMoney(item.Rate),
			Amount:      domain.FormatMoney(item.Amount()),
		})
	}

	l.Totals = append(l.Totals, Field{Label: lb.subtotal + lb.suffix, Value: domain.FormatMoney(inv.Subtotal)})
	if inv.HasTax() {
		l.Totals = append(l.Totals, Field{
			Label: lb.tax + " (" + domain.FormatNumber(inv.TaxRate) + "%)" + lb.suffix,
			Value: domain.FormatMoney(inv.TaxAmount()),
		})
	}
	l.Totals = append(l.Totals, Field{Label: lb.total + lb.suffix, Value: domain.FormatMoney(inv.Total), Strong: true})

	if inv.Notes != "" {
		l.Notes = &Block{
			Heading: lb.notes + lb.suffix,
			Icon:    lb.notesIcon,
			Lines:   strings.Split(inv.Notes, "\n"),
		}
	}

	return l
}

// dates returns the issue date and, when present, the due date
func dates(inv *domain.Invoice, issued, due string) []Field {
	meta := []Field{{Label: issued, Value: inv.InvoiceDate}}
	if inv.DueDate != "" {
		meta = append(meta, Field{Label: due, Value: inv.DueDate})
	}
	return meta
}

// lines splits multi-line values and drops blanks
func lines(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimRight(line, " \r"); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}
