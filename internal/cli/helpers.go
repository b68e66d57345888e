package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andy/quickinvoice/internal/domain"
)

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid invoice id %q", s)
	}
	return id, nil
}

// parseItem reads "description:quantity:rate". The description may itself
// contain colons; quantity and rate are coerced like form input.
func parseItem(s string) (domain.LineItem, error) {
	rateAt := strings.LastIndex(s, ":")
	if rateAt < 0 {
		return domain.LineItem{}, fmt.Errorf("invalid item %q, want description:quantity:rate", s)
	}
	qtyAt := strings.LastIndex(s[:rateAt], ":")
	if qtyAt < 0 {
		return domain.LineItem{}, fmt.Errorf("invalid item %q, want description:quantity:rate", s)
	}

	return domain.LineItem{
		Description: s[:qtyAt],
		Quantity:    domain.ParseNumber(s[qtyAt+1 : rateAt]),
		Rate:        domain.ParseNumber(s[rateAt+1:]),
	}, nil
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
