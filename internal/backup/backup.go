// Package backup keeps copies of snippet files before they are overwritten or cleared.
package backup

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/klauern/snipconv/internal/logging"
)

const (
	// BackupDirPerm is the permission for backup directories (rwxr-x---)
	BackupDirPerm = 0o750
	// BackupFilePerm is the permission for backup files (rw-r-----)
	BackupFilePerm = 0o640
)

// Store manages backups under a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the backups directory.
func (s *Store) Dir() string {
	return s.dir
}

// Create copies the file at sourcePath into the store.
// Backing up identical content twice within the same second returns the existing entry.
func (s *Store) Create(sourcePath, description string) (*Metadata, error) {
	if err := os.MkdirAll(s.dir, BackupDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source path %q: %w", sourcePath, err)
	}

	// #nosec G304 - sourcePath is the target snippet file chosen by the user
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %q: %w", sourcePath, err)
	}

	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		absSource = sourcePath
	}

	hashStr := hashContent(content)
	created := s.now()
	backupID := created.Format("20060102-150405-") + backupSuffix(absSource, content)

	index, err := s.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	if existing, ok := index.Backups[backupID]; ok && existing.Hash == hashStr && existing.SourcePath == absSource {
		return &existing, nil
	}

	backupPath := filepath.Join(s.dir, backupID+filepath.Ext(sourcePath))
	if err := os.WriteFile(backupPath, content, BackupFilePerm); err != nil {
		return nil, fmt.Errorf("failed to write backup file: %w", err)
	}

	metadata := Metadata{
		ID:          backupID,
		SourcePath:  absSource,
		BackupPath:  backupPath,
		CreatedAt:   created,
		ModifiedAt:  sourceInfo.ModTime(),
		Hash:        hashStr,
		Size:        sourceInfo.Size(),
		Description: description,
	}

	if err := s.addToIndex(index, metadata); err != nil {
		return nil, fmt.Errorf("failed to add backup to index: %w", err)
	}

	logging.Debug("backup created",
		logging.Path(sourcePath),
		slog.String("backup_id", backupID),
		logging.Operation("backup"),
	)
	return &metadata, nil
}

// Restore writes a backup back to targetPath after verifying its hash.
func (s *Store) Restore(backupID, targetPath string) error {
	metadata, err := s.Get(backupID)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(metadata.BackupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}
	if hashContent(content) != metadata.Hash {
		return fmt.Errorf("backup file corrupted: hash mismatch")
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), BackupDirPerm); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	// #nosec G306 - restored snippet files are meant to be readable by the editor
	if err := os.WriteFile(targetPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write target file: %w", err)
	}
	return nil
}

// Verify checks that a backup file is intact and matches its hash.
func (s *Store) Verify(backupID string) error {
	metadata, err := s.Get(backupID)
	if err != nil {
		return err
	}

	file, err := os.Open(metadata.BackupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	hashStr := hex.EncodeToString(hasher.Sum(nil))
	if hashStr != metadata.Hash {
		return fmt.Errorf("backup file corrupted: hash mismatch (expected %s, got %s)", metadata.Hash, hashStr)
	}
	return nil
}

// Delete removes a backup file and its index entry.
func (s *Store) Delete(backupID string) error {
	index, err := s.LoadIndex()
	if err != nil {
		return fmt.Errorf("failed to load backup index: %w", err)
	}

	metadata, exists := index.Backups[backupID]
	if !exists {
		return fmt.Errorf("backup %q not found", backupID)
	}

	if err := os.Remove(metadata.BackupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}

	delete(index.Backups, backupID)
	return s.SaveIndex(index)
}

func hashContent(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// backupSuffix keys an ID on both the source path and its content.
func backupSuffix(source string, content []byte) string {
	h := blake3.New()
	_, _ = io.WriteString(h, source)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	return hex.EncodeToString(h.Sum(nil))[:8]
}
