package crypto

import "os"

// Keyring stores the database encryption key
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "quickinvoice"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the OS keyring when set
	EnvKey = "QUICKINVOICE_DB_KEY"
)

// NewKeyring returns the environment keyring when QUICKINVOICE_DB_KEY is set,
// otherwise the OS keyring (Keychain, Secret Service or Credential Manager).
func NewKeyring() Keyring {
	if os.Getenv(EnvKey) != "" {
		return &envKeyring{}
	}
	return &systemKeyring{}
}
