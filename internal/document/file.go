package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauern/snipconv/internal/logging"
)

const (
	// DirPerm is the permission for created snippet directories.
	DirPerm = 0o750
	// FilePerm is the permission for written snippet files.
	FilePerm = 0o644
)

// LoadFile reads the document at path. A missing file yields an empty document.
func LoadFile(path string) (*Document, error) {
	// #nosec G304 - path is the user-selected target file
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("target document does not exist, starting empty", logging.Path(path))
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read snippet file %q: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snippet file %q: %w", path, err)
	}

	logging.Debug("loaded target document", logging.Path(path), logging.Count(doc.Len()))
	return doc, nil
}

// SaveFile writes the whole document to path, replacing any previous content.
// The old file stays intact until the new one is complete.
// It returns the number of bytes written.
func SaveFile(path string, doc *Document) (int, error) {
	data, err := doc.MarshalIndent()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return 0, fmt.Errorf("failed to create directory for %q: %w", path, err)
	}

	if err := writeAtomic(path, data); err != nil {
		return 0, fmt.Errorf("failed to write snippet file %q: %w", path, err)
	}

	logging.Debug("saved target document", logging.Path(path), logging.Count(doc.Len()))
	return len(data), nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// #nosec G302 - snippet files are meant to be readable by the editor
	if err := os.Chmod(tmpPath, FilePerm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
