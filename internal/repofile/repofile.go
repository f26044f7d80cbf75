package repofile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const FileName = ".arcedit-file"

// Find walks up from startDir looking for a .arcedit-file link.
// Returns the linked backup path, resolved against the directory holding
// the link, and that directory. Returns ("", "", nil) if not found.
func Find(startDir string) (backupPath, dir string, err error) {
	dir = startDir
	for {
		p, err := Read(dir)
		if err != nil {
			return "", "", err
		}
		if p != "" {
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			return p, dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}

// Write links dir to the backup at backupPath.
func Write(dir, backupPath string) error {
	return os.WriteFile(filepath.Join(dir, FileName), []byte(backupPath+"\n"), 0644)
}

// Read reads and trims the link file in dir.
// Returns ("", nil) if the file does not exist.
func Read(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Remove deletes the link file in dir. A missing file is not an error.
func Remove(dir string) error {
	err := os.Remove(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
