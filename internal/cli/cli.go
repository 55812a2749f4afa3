// Package cli holds small helpers shared by ed25519ctl's subcommands:
// consistent error wrapping and file I/O, kept out of the core
// cryptographic packages entirely.
package cli

import (
	"fmt"
	"os"
)

// Wrap annotates err with the operation that failed, for consistent
// top-level error messages across subcommands.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// ReadFile reads the named file, wrapping any error with the file's
// path for a clearer CLI error message.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, Wrap("read "+path, err)
	}
	return b, nil
}
