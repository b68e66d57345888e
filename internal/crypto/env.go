package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKeyring reads the key from QUICKINVOICE_DB_KEY. Headless machines and CI use it.
type envKeyring struct{}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}
	return key, nil
}

// SetKey cannot persist anything; it tells the user what to export instead
func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("environment keyring is read-only: export %s to keep using this key", EnvKey)
}

func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("environment keyring is read-only: unset %s manually", EnvKey)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
