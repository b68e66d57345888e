package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andy/quickinvoice/internal/domain"
)

// InvoiceRepo stores the invoice collection as one JSON array under InvoicesKey
type InvoiceRepo struct {
	store KeyValueStore
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(store KeyValueStore) *InvoiceRepo {
	return &InvoiceRepo{store: store}
}

// Load returns the stored invoices in stored order. A missing key is an empty collection.
func (r *InvoiceRepo) Load(ctx context.Context) ([]*domain.Invoice, error) {
	raw, ok, err := r.store.GetItem(ctx, InvoicesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*domain.Invoice{}, nil
	}

	var invoices []*domain.Invoice
	if err := json.Unmarshal([]byte(raw), &invoices); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCollection, err)
	}

	out := make([]*domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv == nil {
			return nil, fmt.Errorf("%w: null entry", domain.ErrCorruptCollection)
		}
		if inv.Items == nil {
			inv.Items = []domain.LineItem{}
		}
		out = append(out, inv)
	}

	return out, nil
}

// Store replaces the whole collection
func (r *InvoiceRepo) Store(ctx context.Context, invoices []*domain.Invoice) error {
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	data, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("failed to encode invoices: %w", err)
	}
	return r.store.SetItem(ctx, InvoicesKey, string(data))
}

// Clear removes the collection
func (r *InvoiceRepo) Clear(ctx context.Context) error {
	return r.store.RemoveItem(ctx, InvoicesKey)
}
