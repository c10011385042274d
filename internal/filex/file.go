package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if missing and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// EnsureParentDir makes sure the directory holding file exists.
// In-memory SQLite names such as ":memory:" are left alone.
func EnsureParentDir(file string) error {
	if file == "" || file == ":memory:" || filepath.Dir(file) == "." {
		return nil
	}
	_, err := EnsureDir(filepath.Dir(file))
	return err
}
