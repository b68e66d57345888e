package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/quickinvoice/internal/domain"
)

type memStore struct {
	items  map[string]string
	getErr error
}

func newMemStore() *memStore {
	return &memStore{items: map[string]string{}}
}

func (m *memStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memStore) SetItem(ctx context.Context, key, value string) error {
	m.items[key] = value
	return nil
}

func (m *memStore) RemoveItem(ctx context.Context, key string) error {
	delete(m.items, key)
	return nil
}

func TestInvoiceRepo_LoadEmpty(t *testing.T) {
	repo := NewInvoiceRepo(newMemStore())

	invoices, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}

func TestInvoiceRepo_StoreAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	repo := NewInvoiceRepo(store)

	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	d := domain.NewDefaultDraft(created)
	d.ClientName = "Globex"
	d.Items = []domain.LineItem{{Description: "Design", Quantity: 2, Rate: 50}}
	d.TaxRate = 10
	d.Template = domain.TemplateModern

	first := domain.Finalize(d, 1000, created)
	second := domain.Finalize(domain.NewDefaultDraft(created), 1001, created)
	require.NoError(t, repo.Store(ctx, []*domain.Invoice{first, second}))

	assert.Contains(t, store.items[InvoicesKey], `"clientName":"Globex"`)
	assert.Contains(t, store.items[InvoicesKey], `"taxRate":10`)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, int64(1000), loaded[0].ID)
	assert.Equal(t, int64(1001), loaded[1].ID)
	assert.Equal(t, first.Items, loaded[0].Items)
	assert.Equal(t, domain.TemplateModern, loaded[0].Template)
	assert.InDelta(t, 110, loaded[0].Total, 1e-9)
	assert.True(t, created.Equal(loaded[0].CreatedAt))
}

func TestInvoiceRepo_LoadBrowserExport(t *testing.T) {
	store := newMemStore()
	store.items[InvoicesKey] = `[{"id":1718000000000,"businessName":"Acme","businessEmail":"","businessPhone":"",` +
		`"businessAddress":"","clientName":"Globex","clientEmail":"","clientAddress":"","invoiceNumber":"INV-1718000000000",` +
		`"invoiceDate":"2024-06-10","dueDate":"","items":[{"description":"Design","quantity":2,"rate":50}],` +
		`"taxRate":10,"notes":"Thanks","subtotal":100,"total":110,"createdAt":"2024-06-10T06:13:20.000Z"}]`

	loaded, err := NewInvoiceRepo(store).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(1718000000000), loaded[0].ID)
	assert.Equal(t, domain.TemplateClassic, loaded[0].EffectiveTemplate())
	assert.Equal(t, 2.0, loaded[0].Items[0].Quantity)
}

func TestInvoiceRepo_LoadLenientCreatedAt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "empty string", raw: `""`},
		{name: "free text", raw: `"last tuesday"`},
		{name: "null", raw: `null`},
		{name: "epoch millis", raw: `1718000000000`, want: time.UnixMilli(1718000000000).UTC()},
		{name: "iso", raw: `"2024-06-10T06:13:20.000Z"`, want: time.Date(2024, 6, 10, 6, 13, 20, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.items[InvoicesKey] = `[{"id":7,"clientName":"Globex","items":[],"createdAt":` + tt.raw + `}]`

			loaded, err := NewInvoiceRepo(store).Load(context.Background())
			require.NoError(t, err)
			require.Len(t, loaded, 1)
			assert.Equal(t, int64(7), loaded[0].ID)
			assert.Equal(t, "Globex", loaded[0].ClientName)
			assert.True(t, tt.want.Equal(loaded[0].CreatedAt), "got %v", loaded[0].CreatedAt)
		})
	}

	t.Run("missing", func(t *testing.T) {
		store := newMemStore()
		store.items[InvoicesKey] = `[{"id":8,"clientName":"Initech"}]`

		loaded, err := NewInvoiceRepo(store).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.True(t, loaded[0].CreatedAt.IsZero())
		assert.NotNil(t, loaded[0].Items)
	})
}

func TestInvoiceRepo_StoreOverflowingAmounts(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	repo := NewInvoiceRepo(store)

	d := domain.NewDefaultDraft(time.Now())
	require.NoError(t, d.SetItem(0, domain.ItemQuantity, "1e200"))
	require.NoError(t, d.SetItem(0, domain.ItemRate, "1e200"))
	inv := domain.Finalize(d, 1, time.Now())

	require.NoError(t, repo.Store(ctx, []*domain.Invoice{inv}))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 1e200, loaded[0].Items[0].Quantity)
	assert.Equal(t, 0.0, loaded[0].Total)
}

func TestInvoiceRepo_Corrupt(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":   "{{{",
		"not array":  `{"id":1}`,
		"null entry": `[null]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := newMemStore()
			store.items[InvoicesKey] = raw

			_, err := NewInvoiceRepo(store).Load(context.Background())
			assert.ErrorIs(t, err, domain.ErrCorruptCollection)
		})
	}
}

func TestInvoiceRepo_StoreError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk on fire")

	_, err := NewInvoiceRepo(store).Load(context.Background())
	assert.EqualError(t, err, "disk on fire")
}

func TestInvoiceRepo_Clear(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	repo := NewInvoiceRepo(store)

	require.NoError(t, repo.Store(ctx, nil))
	assert.Equal(t, "[]", store.items[InvoicesKey])

	require.NoError(t, repo.Clear(ctx))
	_, ok := store.items[InvoicesKey]
	assert.False(t, ok)
}
