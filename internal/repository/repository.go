package repository

import (
	"context"

	"github.com/andy/quickinvoice/internal/domain"
)

// InvoicesKey is the storage key holding the whole invoice collection
const InvoicesKey = "invoices"

// KeyValueStore is a string key/value store with localStorage semantics
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// InvoiceRepository persists the invoice collection as a single unit.
// Load returns domain.ErrCorruptCollection when stored data cannot be decoded.
type InvoiceRepository interface {
	Load(ctx context.Context) ([]*domain.Invoice, error)
	Store(ctx context.Context, invoices []*domain.Invoice) error
	Clear(ctx context.Context) error
}
