package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/logger"
	"github.com/andy/quickinvoice/internal/repository"
)

// Summary holds the dashboard statistics
type Summary struct {
	InvoiceCount int             `json:"invoiceCount"`
	TotalRevenue float64         `json:"totalRevenue"` // Σ invoice totals
	ClientCount  int             `json:"clientCount"`  // distinct client names, blank counted once
	ByClient     []ClientRevenue `json:"byClient"`
}

// ClientRevenue is one client's share of revenue
type ClientRevenue struct {
	ClientName   string  `json:"clientName"`
	InvoiceCount int     `json:"invoiceCount"`
	Revenue      float64 `json:"revenue"`
}

// ReportService provides aggregations over the stored invoices
type ReportService interface {
	Summary(ctx context.Context) (*Summary, error)

	// RevenueByMonth groups totals by invoice date; invoices with an unreadable
	// date fall back to their creation time.
	RevenueByMonth(ctx context.Context, year int) (map[time.Month]float64, error)
}

type reportService struct {
	invoiceRepo repository.InvoiceRepository
	log         *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository, log *logger.Logger) ReportService {
	if log == nil {
		log = logger.Nop()
	}
	return &reportService{invoiceRepo: invoiceRepo, log: log}
}

func (s *reportService) Summary(ctx context.Context) (*Summary, error) {
	invoices, err := loadCollection(ctx, s.invoiceRepo, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return Summarize(invoices), nil
}

// Summarize computes dashboard statistics. Revenue is accumulated in decimal
// so long collections do not drift.
func Summarize(invoices []*domain.Invoice) *Summary {
	total := decimal.Zero
	byClient := make(map[string]*ClientRevenue)
	clientTotals := make(map[string]decimal.Decimal)

	for _, inv := range invoices {
		amount := decimal.NewFromFloat(inv.Total)
		total = total.Add(amount)

		cr, ok := byClient[inv.ClientName]
		if !ok {
			cr = &ClientRevenue{ClientName: inv.ClientName}
			byClient[inv.ClientName] = cr
		}
		cr.InvoiceCount++
		clientTotals[inv.ClientName] = clientTotals[inv.ClientName].Add(amount)
	}

	summary := &Summary{
		InvoiceCount: len(invoices),
		TotalRevenue: total.InexactFloat64(),
		ClientCount:  len(byClient),
		ByClient:     make([]ClientRevenue, 0, len(byClient)),
	}

	for name, cr := range byClient {
		cr.Revenue = clientTotals[name].InexactFloat64()
		summary.ByClient = append(summary.ByClient, *cr)
	}

	sort.Slice(summary.ByClient, func(i, j int) bool {
		a, b := summary.ByClient[i], summary.ByClient[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return strings.ToLower(a.ClientName) < strings.ToLower(b.ClientName)
	})

	return summary
}

func (s *reportService) RevenueByMonth(ctx context.Context, year int) (map[time.Month]float64, error) {
	invoices, err := loadCollection(ctx, s.invoiceRepo, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	sums := make(map[time.Month]decimal.Decimal)
	for _, inv := range invoices {
		date, err := time.ParseInLocation(domain.DateLayout, inv.InvoiceDate, time.Local)
		if err != nil {
			date = inv.CreatedAt.Local()
		}
		if date.Year() != year {
			continue
		}
		sums[date.Month()] = sums[date.Month()].Add(decimal.NewFromFloat(inv.Total))
	}

	revenue := make(map[time.Month]float64, len(sums))
	for month, sum := range sums {
		revenue[month] = sum.InexactFloat64()
	}
	return revenue, nil
}
