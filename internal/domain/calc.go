package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultNotes is the closing line placed on every new draft
	DefaultNotes = "Thank you for your business!"

	// DateLayout is the ISO calendar date used for invoice and due dates
	DateLayout = "2006-01-02"

	numberPrefix = "INV"
)

// Subtotal returns the sum of quantity * rate over items. A sum that
// overflows float64 is reported as 0.
func Subtotal(items []LineItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Amount()
	}
	return finite(sum)
}

// TaxAmount returns subtotal * taxRate/100. taxRate is a percentage.
func TaxAmount(subtotal, taxRate float64) float64 {
	return finite(subtotal * (taxRate / 100))
}

// Total returns subtotal * (1 + taxRate/100). Negative rates are not rejected.
func Total(items []LineItem, taxRate float64) float64 {
	return finite(Subtotal(items) * (1 + taxRate/100))
}

// finite maps NaN and ±Inf to 0 so amounts stay printable and storable
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// GenerateInvoiceNumber returns a time based invoice number such as INV-1700000000000
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("%s-%d", numberPrefix, now.UnixMilli())
}

// NewDefaultDraft returns a fresh form with a single empty line item
func NewDefaultDraft(now time.Time) *Draft {
	return &Draft{
		InvoiceNumber: GenerateInvoiceNumber(now),
		InvoiceDate:   now.Local().Format(DateLayout),
		DueDate:       "",
		Items:         []LineItem{NewLineItem()},
		TaxRate:       0,
		Notes:         DefaultNotes,
	}
}

// ParseNumber coerces user input to a number the way a browser number field does:
// the longest decimal prefix wins and anything unparseable becomes 0.
// Hex, binary and underscore forms are not numbers here, so "0x10" is 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// numericPrefix returns the length of the longest prefix of s matching
// [+-]? digits* (. digits*)? ([eE] [+-]? digits+)? with at least one mantissa digit
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	// The exponent only counts when it has digits: "1e" parses as 1
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// FormatMoney renders an amount with two fraction digits, e.g. $1234.50.
// Rounding happens here only; stored values keep full precision.
// NaN and ±Inf print as $0.00.
func FormatMoney(amount float64) string {
	d := decimal.NewFromFloat(finite(amount))
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// FormatNumber prints a quantity or rate percentage without trailing zeros
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
