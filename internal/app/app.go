package app

import (
	"context"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/andy/quickinvoice/internal/config"
	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/crypto"
	"github.com/andy/quickinvoice/internal/db"
	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/logger"
	"github.com/andy/quickinvoice/internal/repository"
	"github.com/andy/quickinvoice/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Log    *logger.Logger

	// Services
	InvoiceService service.InvoiceService
	ReportService  service.ReportService

	logCloser io.Closer
}

// New loads the default config and wires every dependency
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config. It
//  1. creates directories
//  2. opens the log file
//  3. fetches the encryption key (prompting on first run)
//  4. opens and migrates the database
//  5. builds repositories and services
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	password, err := encryptionKey(crypto.NewKeyring())
	if err != nil {
		closeQuietly(closer)
		return nil, err
	}

	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := Wire(cfg, database, repository.NewStorageRepo(database), log)
	a.logCloser = closer

	a.Log.Debug().Str("db", cfg.Database.Path).Msg("application initialized")
	return a, nil
}

// Wire assembles repositories and services over an already open store.
// database may be nil when store is not SQLite backed.
func Wire(cfg *config.Config, database *db.DB, store repository.KeyValueStore, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	invoiceRepo := repository.NewInvoiceRepo(store)

	return &App{
		Config:         cfg,
		DB:             database,
		Log:            log,
		InvoiceService: service.NewInvoiceService(invoiceRepo, log),
		ReportService:  service.NewReportService(invoiceRepo, log),
	}
}

// NewController builds the application state for an interactive session,
// with the configured business profile and template applied to new drafts.
func (a *App) NewController(ctx context.Context) (*controller.Controller, error) {
	c := controller.New(a.InvoiceService, controller.WithProfile(a.Profile()))
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Profile returns the business profile from config
func (a *App) Profile() controller.Profile {
	p := controller.Profile{
		BusinessName:    a.Config.Business.Name,
		BusinessEmail:   a.Config.Business.Email,
		BusinessPhone:   a.Config.Business.Phone,
		BusinessAddress: a.Config.Business.Address,
	}
	if t := domain.Template(a.Config.Invoice.DefaultTemplate); t.Valid() {
		p.Template = t
	}
	return p
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	var err error
	if a.DB != nil {
		err = a.DB.Close()
	}
	closeQuietly(a.logCloser)
	return err
}

func newLogger(cfg *config.Config) (*logger.Logger, io.Closer, error) {
	lc := logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level}
	if cfg.Log.File == "" {
		return logger.New(lc), nil, nil
	}
	log, closer, err := logger.NewFile(lc, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	return log, closer, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// encryptionKey returns the stored key, prompting for a new one on first run
func encryptionKey(keyring crypto.Keyring) (string, error) {
	password, err := keyring.GetKey()
	if err == nil {
		return password, nil
	}

	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keyring.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}

	return password, nil
}

// promptForPassword asks for a new database password twice, without echo
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your invoices will be encrypted with a password.")
	fmt.Println("The password is kept in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
