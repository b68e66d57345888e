package domain

import (
	"fmt"
)

// Field names an editable draft field. Values match the JSON names.
type Field string

const (
	FieldBusinessName    Field = "businessName"
	FieldBusinessEmail   Field = "businessEmail"
	FieldBusinessPhone   Field = "businessPhone"
	FieldBusinessAddress Field = "businessAddress"
	FieldClientName      Field = "clientName"
	FieldClientEmail     Field = "clientEmail"
	FieldClientAddress   Field = "clientAddress"
	FieldInvoiceNumber   Field = "invoiceNumber"
	FieldInvoiceDate     Field = "invoiceDate"
	FieldDueDate         Field = "dueDate"
	FieldTaxRate         Field = "taxRate"
	FieldNotes           Field = "notes"
	FieldTemplate        Field = "template"
)

// ItemField names an editable line item column
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemRate        ItemField = "rate"
)

// Set applies raw user input to a draft field. Numeric input is coerced with
// ParseNumber; the template must be one of the known templates.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldBusinessName:
		d.BusinessName = value
	case FieldBusinessEmail:
		d.BusinessEmail = value
	case FieldBusinessPhone:
		d.BusinessPhone = value
	case FieldBusinessAddress:
		d.BusinessAddress = value
	case FieldClientName:
		d.ClientName = value
	case FieldClientEmail:
		d.ClientEmail = value
	case FieldClientAddress:
		d.ClientAddress = value
	case FieldInvoiceNumber:
		d.InvoiceNumber = value
	case FieldInvoiceDate:
		d.InvoiceDate = value
	case FieldDueDate:
		d.DueDate = value
	case FieldTaxRate:
		d.TaxRate = ParseNumber(value)
	case FieldNotes:
		d.Notes = value
	case FieldTemplate:
		t := Template(value)
		if value != "" && !t.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownTemplate, value)
		}
		d.Template = t
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get returns the current value of a draft field as form text
func (d *Draft) Get(field Field) (string, error) {
	switch field {
	case FieldBusinessName:
		return d.BusinessName, nil
	case FieldBusinessEmail:
		return d.BusinessEmail, nil
	case FieldBusinessPhone:
		return d.BusinessPhone, nil
	case FieldBusinessAddress:
		return d.BusinessAddress, nil
	case FieldClientName:
		return d.ClientName, nil
	case FieldClientEmail:
		return d.ClientEmail, nil
	case FieldClientAddress:
		return d.ClientAddress, nil
	case FieldInvoiceNumber:
		return d.InvoiceNumber, nil
	case FieldInvoiceDate:
		return d.InvoiceDate, nil
	case FieldDueDate:
		return d.DueDate, nil
	case FieldTaxRate:
		return FormatNumber(d.TaxRate), nil
	case FieldNotes:
		return d.Notes, nil
	case FieldTemplate:
		return string(d.EffectiveTemplate()), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// SetItem applies raw user input to one column of a line item
func (d *Draft) SetItem(index int, field ItemField, value string) error {
	if index < 0 || index >= len(d.Items) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	item := &d.Items[index]
	switch field {
	case ItemDescription:
		item.Description = value
	case ItemQuantity:
		item.Quantity = ParseNumber(value)
	case ItemRate:
		item.Rate = ParseNumber(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// AddItem appends a blank line item
func (d *Draft) AddItem() {
	d.Items = append(d.Items, NewLineItem())
}

// RemoveItem deletes the line item at index, keeping the order of the rest
func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.Items) {
		return fmt.Errorf("%w: %d", ErrItemOutOfRange, index)
	}
	items := make([]LineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:index]...)
	items = append(items, d.Items[index+1:]...)
	d.Items = items
	return nil
}
