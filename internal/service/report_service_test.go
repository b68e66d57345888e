package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/quickinvoice/internal/domain"
)

func invoiceFor(id int64, client, date string, total float64) *domain.Invoice {
	return &domain.Invoice{
		ID:        id,
		Draft:     domain.Draft{ClientName: client, InvoiceDate: date},
		Total:     total,
		CreatedAt: time.Date(2025, 12, 31, 12, 0, 0, 0, time.Local),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]*domain.Invoice{
		invoiceFor(1, "Globex", "2026-01-10", 110),
		invoiceFor(2, "Initech", "2026-01-11", 50),
		invoiceFor(3, "Globex", "2026-02-01", 0.1),
		invoiceFor(4, "", "2026-02-02", 0.2),
	})

	assert.Equal(t, 4, s.InvoiceCount)
	assert.Equal(t, 160.3, s.TotalRevenue)
	assert.Equal(t, 3, s.ClientCount)
	require.Len(t, s.ByClient, 3)
	assert.Equal(t, "Globex", s.ByClient[0].ClientName)
	assert.Equal(t, 2, s.ByClient[0].InvoiceCount)
	assert.Equal(t, 110.1, s.ByClient[0].Revenue)
	assert.Equal(t, "Initech", s.ByClient[1].ClientName)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.InvoiceCount)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.ClientCount)
	assert.Empty(t, s.ByClient)
}

func TestReportService_Summary_CorruptIsEmpty(t *testing.T) {
	svc := NewReportService(&mockInvoiceRepo{loadErr: domain.ErrCorruptCollection}, nil)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, s.InvoiceCount)
}

func TestRevenueByMonth(t *testing.T) {
	repo := &mockInvoiceRepo{invoices: []*domain.Invoice{
		invoiceFor(1, "Globex", "2026-01-10", 100),
		invoiceFor(2, "Globex", "2026-01-20", 50),
		invoiceFor(3, "Initech", "2026-03-01", 25),
		invoiceFor(4, "Initech", "2025-03-01", 999),
		invoiceFor(5, "Initech", "someday", 7), // falls back to createdAt in 2025
	}}
	svc := NewReportService(repo, nil)

	revenue, err := svc.RevenueByMonth(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, map[time.Month]float64{time.January: 150, time.March: 25}, revenue)

	revenue, err = svc.RevenueByMonth(context.Background(), 2025)
	require.NoError(t, err)
	assert.Equal(t, map[time.Month]float64{time.March: 999, time.December: 7}, revenue)
}
