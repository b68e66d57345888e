package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/logger"
	"github.com/andy/quickinvoice/internal/repository"
)

// InvoiceService manages the stored invoice collection
type InvoiceService interface {
	// List returns all invoices in stored order
	List(ctx context.Context) ([]*domain.Invoice, error)

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id int64) (*domain.Invoice, error)

	// Save finalizes the draft. A nil editingID appends a new invoice;
	// otherwise the invoice with that id is replaced in place, keeping id and createdAt.
	Save(ctx context.Context, draft *domain.Draft, editingID *int64) (*domain.Invoice, error)

	// Duplicate copies an invoice under a new id, invoice number and issue date
	Duplicate(ctx context.Context, id int64) (*domain.Invoice, error)

	// Delete removes the invoice with the given id
	Delete(ctx context.Context, id int64) error

	// Reset removes every stored invoice
	Reset(ctx context.Context) error
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, log *logger.Logger) InvoiceService {
	if log == nil {
		log = logger.Nop()
	}
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		log:         log,
		now:         time.Now,
	}
}

// load reads the collection; corrupt data is logged and treated as empty
func (s *invoiceService) load(ctx context.Context) ([]*domain.Invoice, error) {
	invoices, err := loadCollection(ctx, s.invoiceRepo, s.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return invoices, nil
}

func loadCollection(ctx context.Context, repo repository.InvoiceRepository, log *logger.Logger) ([]*domain.Invoice, error) {
	invoices, err := repo.Load(ctx)
	if errors.Is(err, domain.ErrCorruptCollection) {
		log.Warn().Err(err).Msg("stored invoices could not be decoded, starting from an empty collection")
		return []*domain.Invoice{}, nil
	}
	return invoices, err
}

func (s *invoiceService) List(ctx context.Context) ([]*domain.Invoice, error) {
	return s.load(ctx)
}

func (s *invoiceService) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoices, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(invoices, id); i >= 0 {
		return invoices[i], nil
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrInvoiceNotFound, id)
}

func (s *invoiceService) Save(ctx context.Context, draft *domain.Draft, editingID *int64) (*domain.Invoice, error) {
	if draft == nil {
		return nil, errors.New("draft is required")
	}

	invoices, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var invoice *domain.Invoice

	if editingID != nil {
		i := indexOf(invoices, *editingID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvoiceNotFound, *editingID)
		}
		invoice = domain.Finalize(draft, invoices[i].ID, invoices[i].CreatedAt)
		invoices[i] = invoice
	} else {
		invoice = domain.Finalize(draft, nextID(invoices, now), now)
		invoices = append(invoices, invoice)
	}

	if err := s.invoiceRepo.Store(ctx, invoices); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.log.Info().
		Int64("id", invoice.ID).
		Str("number", invoice.InvoiceNumber).
		Bool("edit", editingID != nil).
		Msg("invoice saved")

	return invoice, nil
}

func (s *invoiceService) Duplicate(ctx context.Context, id int64) (*domain.Invoice, error) {
	invoices, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(invoices, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvoiceNotFound, id)
	}

	now := s.now()
	draft := invoices[i].ToDraft()
	draft.InvoiceNumber = domain.GenerateInvoiceNumber(now)
	draft.InvoiceDate = now.Local().Format(domain.DateLayout)

	dup := domain.Finalize(draft, nextID(invoices, now), now)
	invoices = append(invoices, dup)

	if err := s.invoiceRepo.Store(ctx, invoices); err != nil {
		return nil, fmt.Errorf("failed to save duplicate: %w", err)
	}

	s.log.Info().Int64("source", id).Int64("id", dup.ID).Msg("invoice duplicated")
	return dup, nil
}

func (s *invoiceService) Delete(ctx context.Context, id int64) error {
	invoices, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(invoices, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvoiceNotFound, id)
	}

	kept := make([]*domain.Invoice, 0, len(invoices)-1)
	kept = append(kept, invoices[:i]...)
	kept = append(kept, invoices[i+1:]...)

	if err := s.invoiceRepo.Store(ctx, kept); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.log.Info().Int64("id", id).Msg("invoice deleted")
	return nil
}

func (s *invoiceService) Reset(ctx context.Context) error {
	if err := s.invoiceRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear invoices: %w", err)
	}
	s.log.Warn().Msg("all invoices removed")
	return nil
}

func indexOf(invoices []*domain.Invoice, id int64) int {
	for i, inv := range invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}

// nextID is the current unix millis, bumped past the highest id in use
func nextID(invoices []*domain.Invoice, now time.Time) int64 {
	id := now.UnixMilli()
	for _, inv := range invoices {
		if inv.ID >= id {
			id = inv.ID + 1
		}
	}
	return id
}
