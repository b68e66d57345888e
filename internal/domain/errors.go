package domain

import "errors"

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrItemOutOfRange    = errors.New("line item index out of range")
	ErrUnknownField      = errors.New("unknown form field")
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrCorruptCollection = errors.New("stored invoice collection is corrupt")
)
