// Package backup reads and writes archive backup files.
package backup

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rogersnm/arcedit/internal/model"
)

const (
	// DefaultName is the file name used for exports when none is configured.
	DefaultName = "backup-new.json"
	// MediaType is the content type of exported backups.
	MediaType = "text/plain;charset=utf-8"
)

var (
	ErrNoFileSelected = errors.New("no files selected")
	ErrParse          = errors.New("error parsing json")
)

// File is a backup read from disk.
type File struct {
	Path string
	Size int64
	Doc  *model.Node
}

// Import reads and parses the backup at path.
func Import(path string) (*File, error) {
	if path == "" {
		return nil, ErrNoFileSelected
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Size: int64(len(data)), Doc: doc}, nil
}

// Decode parses backup contents.
func Decode(data []byte) (*model.Node, error) {
	doc, err := model.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// OutputPath returns where an export of the backup at src goes when no
// explicit destination is given.
func OutputPath(src, name string) string {
	if name == "" {
		name = DefaultName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(src), name)
}

// Write replaces path with data through a temporary file in the same
// directory, so readers never observe a partial backup.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-backup-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	var done bool
	defer func() {
		if done {
			return
		}
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove temporary file", "path", tmp.Name(), "error", err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	done = true
	return nil
}
