package domain_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/quickinvoice/internal/domain"
)

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.LineItem
		want  float64
	}{
		{name: "empty", items: nil, want: 0},
		{name: "single", items: []domain.LineItem{{Description: "Design", Quantity: 2, Rate: 50}}, want: 100},
		{
			name: "several rows",
			items: []domain.LineItem{
				{Description: "Design", Quantity: 2, Rate: 50},
				{Description: "Hosting", Quantity: 12, Rate: 9.5},
				{Description: "Discount", Quantity: 1, Rate: -20},
			},
			want: 194,
		},
		{name: "fractional quantity", items: []domain.LineItem{{Quantity: 1.5, Rate: 80}}, want: 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, domain.Subtotal(tt.items), 1e-9)
		})
	}
}

func TestTotal(t *testing.T) {
	items := []domain.LineItem{
		{Description: "Design", Quantity: 2, Rate: 50},
		{Description: "Copy", Quantity: 3, Rate: 33.33},
	}
	subtotal := domain.Subtotal(items)

	for _, rate := range []float64{0, 5, 8.25, 10, 19, 100, -10, 250} {
		want := subtotal * (1 + rate/100)
		assert.InDelta(t, want, domain.Total(items, rate), 1e-9, "tax rate %v", rate)
	}

	assert.Equal(t, subtotal, domain.Total(items, 0), "zero tax keeps total equal to subtotal")
	assert.Less(t, domain.Total(items, -10), subtotal, "negative tax lowers the total")
}

func TestScenario_SingleItemWithTax(t *testing.T) {
	items := []domain.LineItem{{Description: "Design", Quantity: 2, Rate: 50}}

	assert.Equal(t, "$100.00", domain.FormatMoney(domain.Subtotal(items)))
	assert.Equal(t, "$110.00", domain.FormatMoney(domain.Total(items, 10)))
}

func TestScenario_NoItems(t *testing.T) {
	for _, rate := range []float64{0, 10, 99.9} {
		assert.Equal(t, "$0.00", domain.FormatMoney(domain.Subtotal(nil)))
		assert.Equal(t, "$0.00", domain.FormatMoney(domain.Total(nil, rate)))
	}
}

func TestTotals_Overflow(t *testing.T) {
	huge := []domain.LineItem{{Description: "Typo", Quantity: 1e200, Rate: 1e200}}
	assert.Equal(t, 0.0, huge[0].Amount())
	assert.Equal(t, 0.0, domain.Subtotal(huge))

	// Each row is finite but the sum is not
	summed := []domain.LineItem{{Quantity: 1, Rate: math.MaxFloat64}, {Quantity: 1, Rate: math.MaxFloat64}}
	assert.Equal(t, 0.0, domain.Subtotal(summed))

	large := []domain.LineItem{{Quantity: 1e300, Rate: 1}}
	for _, items := range [][]domain.LineItem{huge, summed, large} {
		assert.Equal(t, domain.Subtotal(items), domain.Total(items, 0), "zero tax keeps total equal to subtotal")
		for _, rate := range []float64{-100, 10, 1e300} {
			total := domain.Total(items, rate)
			assert.False(t, math.IsNaN(total) || math.IsInf(total, 0), "rate %v gave %v", rate, total)
			assert.NotPanics(t, func() { domain.FormatMoney(total) })
		}
	}
}

func TestTaxAmount(t *testing.T) {
	assert.InDelta(t, 8.25, domain.TaxAmount(100, 8.25), 1e-9)
	assert.Equal(t, 0.0, domain.TaxAmount(0, 50))
}

func TestNewDefaultDraft(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)
	d := domain.NewDefaultDraft(now)

	require.Len(t, d.Items, 1)
	assert.Equal(t, domain.LineItem{Description: "", Quantity: 1, Rate: 0}, d.Items[0])
	assert.Equal(t, "2026-03-14", d.InvoiceDate)
	assert.Empty(t, d.DueDate)
	assert.Equal(t, 0.0, d.TaxRate)
	assert.Equal(t, "Thank you for your business!", d.Notes)
	assert.True(t, strings.HasPrefix(d.InvoiceNumber, "INV-"))
	assert.Equal(t, domain.TemplateClassic, d.EffectiveTemplate())

	later := domain.NewDefaultDraft(now.Add(time.Millisecond))
	assert.NotEqual(t, d.InvoiceNumber, later.InvoiceNumber, "invoice numbers are time based")
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"42", 42},
		{" 7.5 ", 7.5},
		{"12abc", 12},
		{".5", 0.5},
		{"-3", -3},
		{"1e3", 1000},
		{"1e", 1},
		{"NaN", 0},
		{"Infinity", 0},
		{"-", 0},
		{"+5", 5},
		{"-.5", -0.5},
		{".", 0},
		{"5.", 5},
		{"1.5.3", 1.5},
		{"1e+2", 100},
		{"2E-1x", 0.2},
		{"1e999", 0},
		{"0x10", 0},
		{"0b101", 0},
		{"1_000", 1},
		{strings.Repeat("9", 20) + "junk", 1e20 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseNumber(tt.in))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", domain.FormatMoney(0))
	assert.Equal(t, "$1234.50", domain.FormatMoney(1234.5))
	assert.Equal(t, "$0.13", domain.FormatMoney(0.125))
	assert.Equal(t, "-$5.00", domain.FormatMoney(-5))
	assert.Equal(t, "$0.00", domain.FormatMoney(math.NaN()))
	assert.Equal(t, "$0.00", domain.FormatMoney(math.Inf(1)))
	assert.Equal(t, "$0.00", domain.FormatMoney(math.Inf(-1)))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "10", domain.FormatNumber(10))
	assert.Equal(t, "8.25", domain.FormatNumber(8.25))
	assert.Equal(t, "1.5", domain.FormatNumber(1.5))
}
