package domain

import (
	"encoding/json"
	"time"
)

// LineItem is one billable row on an invoice
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// NewLineItem returns the blank row added by the editor
func NewLineItem() LineItem {
	return LineItem{Quantity: 1, Rate: 0}
}

// Amount returns quantity * rate, or 0 when the product overflows. It is never stored.
func (li LineItem) Amount() float64 {
	return finite(li.Quantity * li.Rate)
}

// Draft is the mutable invoice form. It becomes an Invoice on save.
type Draft struct {
	BusinessName    string     `json:"businessName"`
	BusinessEmail   string     `json:"businessEmail"`
	BusinessPhone   string     `json:"businessPhone"`
	BusinessAddress string     `json:"businessAddress"`
	ClientName      string     `json:"clientName"`
	ClientEmail     string     `json:"clientEmail"`
	ClientAddress   string     `json:"clientAddress"`
	InvoiceNumber   string     `json:"invoiceNumber"`
	InvoiceDate     string     `json:"invoiceDate"`
	DueDate         string     `json:"dueDate"`
	Items           []LineItem `json:"items"`
	TaxRate         float64    `json:"taxRate"`
	Notes           string     `json:"notes"`
	Template        Template   `json:"template,omitempty"`
}

// Clone returns a deep copy so edits never leak into the source
func (d *Draft) Clone() *Draft {
	c := *d
	c.Items = make([]LineItem, len(d.Items))
	copy(c.Items, d.Items)
	return &c
}

// Subtotal returns the sum of the draft's line item amounts
func (d *Draft) Subtotal() float64 {
	return Subtotal(d.Items)
}

// Total returns subtotal plus tax for the draft's current items
func (d *Draft) Total() float64 {
	return Total(d.Items, d.TaxRate)
}

// EffectiveTemplate resolves the template selector, defaulting to classic
func (d *Draft) EffectiveTemplate() Template {
	return ParseTemplate(string(d.Template))
}

// Invoice is a saved draft with fixed identity and derived totals
type Invoice struct {
	ID int64 `json:"id"`
	Draft
	Subtotal  float64   `json:"subtotal"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON decodes a stored invoice. A createdAt that is missing, empty or
// not RFC 3339 decodes as the zero time rather than failing the collection.
func (i *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.CreatedAt = parseCreatedAt(aux.CreatedAt)
	return nil
}

// parseCreatedAt reads an ISO timestamp or epoch milliseconds
func parseCreatedAt(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

// Finalize builds an Invoice from a draft, computing subtotal and total.
// The draft is copied; the caller keeps ownership of its own draft.
func Finalize(d *Draft, id int64, createdAt time.Time) *Invoice {
	inv := &Invoice{
		ID:        id,
		Draft:     *d.Clone(),
		CreatedAt: createdAt,
	}
	inv.Recalculate()
	return inv
}

// Recalculate refreshes the derived subtotal and total
func (i *Invoice) Recalculate() {
	i.Subtotal = Subtotal(i.Items)
	i.Total = Total(i.Items, i.TaxRate)
}

// TaxAmount returns the tax portion shown on the printed invoice
func (i *Invoice) TaxAmount() float64 {
	return TaxAmount(i.Subtotal, i.TaxRate)
}

// HasTax reports whether the tax line should be printed
func (i *Invoice) HasTax() bool {
	return i.TaxRate > 0
}

// ToDraft returns an editable copy of the invoice's form fields
func (i *Invoice) ToDraft() *Draft {
	return i.Draft.Clone()
}

// Clone returns a deep copy of the invoice
func (i *Invoice) Clone() *Invoice {
	c := *i
	c.Draft = *i.Draft.Clone()
	return &c
}
