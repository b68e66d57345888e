package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is an export file format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatText Format = "txt"
)

// ErrUnknownFormat is returned for formats other than pdf, html and txt
var ErrUnknownFormat = errors.New("unknown export format")

// textExportWidth is the frame width used for .txt exports
const textExportWidth = 80

// Formats lists supported export formats
func Formats() []Format {
	return []Format{FormatPDF, FormatHTML, FormatText}
}

// ParseFormat accepts pdf, html/htm and txt/text, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "html", "htm":
		return FormatHTML, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Bytes renders the layout in the given format
func Bytes(l Layout, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return PDF(l)
	case FormatHTML:
		var buf bytes.Buffer
		if err := HTML(&buf, l); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatText:
		return []byte(Text(l, textExportWidth) + "\n"), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Export writes the rendered layout to path, creating parent directories
func Export(l Layout, format Format, path string) error {
	data, err := Bytes(l, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FileName derives a safe file name from an invoice number, e.g. INV-17000.pdf
func FileName(invoiceNumber string, format Format) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ' || r == '/' || r == '\\':
			return '_'
		}
		return -1
	}, invoiceNumber)
	name = strings.Trim(name, "._")
	if name == "" {
		name = "invoice"
	}
	return name + "." + string(format)
}
