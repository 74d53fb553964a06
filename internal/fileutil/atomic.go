// Package fileutil writes simulation reports and logs to disk.
package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSONAtomic encodes v as indented JSON into a temporary file beside
// filename and renames it into place with mode 0644. Missing parent
// directories are created. If encoding fails the previous report is left
// untouched.
func WriteJSONAtomic(filename string, v any) (err error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp report: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(filename), err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report: %w", err)
	}
	if err := os.Rename(f.Name(), filename); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}

// OpenLogFile opens filename for appending, creating it and any missing
// parent directories.
func OpenLogFile(filename string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
