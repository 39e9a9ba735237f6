// Package env reads and writes secrets kept in the project's .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// GetAPIKey returns keyName from the process environment, falling back to envPath.
// An unreadable or missing file yields "".
func GetAPIKey(envPath, keyName string) string {
	if key := os.Getenv(keyName); key != "" {
		return key
	}
	return LoadKeyFromEnvFile(envPath, keyName)
}

// LoadKeyFromEnvFile reads a single key from a .env file.
func LoadKeyFromEnvFile(envPath, key string) string {
	values, err := godotenv.Read(envPath)
	if err != nil {
		return ""
	}
	return values[key]
}

// SaveKeyToEnvFile sets key in envPath, keeping the other keys.
// The file is rewritten with sorted keys and owner-only permissions; comments are not preserved.
func SaveKeyToEnvFile(envPath, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(envPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", envPath, err)
	}

	values, err := godotenv.Read(envPath)
	if errors.Is(err, fs.ErrNotExist) {
		values = map[string]string{}
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", envPath, err)
	}
	values[key] = value

	if err := godotenv.Write(values, envPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", envPath, err)
	}
	return os.Chmod(envPath, 0o600)
}

// RemoveKeyFromEnvFile deletes key from envPath. A missing file or key is not an error.
func RemoveKeyFromEnvFile(envPath, key string) error {
	values, err := godotenv.Read(envPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", envPath, err)
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if err := godotenv.Write(values, envPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", envPath, err)
	}
	return nil
}
