package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Metadata contains metadata about a single backup
type Metadata struct {
	ID          string    `json:"id"`          // Unique backup identifier (timestamp-based)
	SourcePath  string    `json:"source_path"` // Original file path
	BackupPath  string    `json:"backup_path"` // Path to backup file
	CreatedAt   time.Time `json:"created_at"`  // Backup creation timestamp
	ModifiedAt  time.Time `json:"modified_at"` // Source modification timestamp
	Hash        string    `json:"hash"`        // BLAKE3 hash of content
	Size        int64     `json:"size"`        // File size in bytes
	Description string    `json:"description,omitempty"`
}

// Index maintains an index of all backups in a store
type Index struct {
	Version string              `json:"version"`
	Updated time.Time           `json:"updated"`
	Backups map[string]Metadata `json:"backups"` // Key: backup ID
}

const (
	// IndexVersion is the current version of the backup index format
	IndexVersion = "1.0"
	// IndexFilename is the name of the index file
	IndexFilename = "index.json"
)

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, IndexFilename)
}

// LoadIndex loads the backup index from disk. A missing index is empty.
func (s *Store) LoadIndex() (*Index, error) {
	// #nosec G304 - indexPath is inside the configured backups directory
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{
				Version: IndexVersion,
				Updated: s.now(),
				Backups: make(map[string]Metadata),
			}, nil
		}
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	if index.Backups == nil {
		index.Backups = make(map[string]Metadata)
	}
	return &index, nil
}

// SaveIndex saves the backup index to disk
func (s *Store) SaveIndex(index *Index) error {
	if err := os.MkdirAll(s.dir, BackupDirPerm); err != nil {
		return fmt.Errorf("failed to create backups directory: %w", err)
	}

	index.Updated = s.now()

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	// #nosec G306 - index.json is metadata and can be group-readable
	if err := os.WriteFile(s.indexPath(), data, BackupFilePerm); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

func (s *Store) addToIndex(index *Index, metadata Metadata) error {
	index.Backups[metadata.ID] = metadata
	return s.SaveIndex(index)
}

// Get returns the metadata of a single backup
func (s *Store) Get(backupID string) (Metadata, error) {
	index, err := s.LoadIndex()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to load backup index: %w", err)
	}
	metadata, ok := index.Backups[backupID]
	if !ok {
		return Metadata{}, fmt.Errorf("backup %q not found", backupID)
	}
	return metadata, nil
}

// List returns backups sorted newest first, optionally only for sourcePath
func (s *Store) List(sourcePath string) ([]Metadata, error) {
	index, err := s.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}

	if sourcePath != "" {
		if abs, err := filepath.Abs(sourcePath); err == nil {
			sourcePath = abs
		}
	}

	backups := make([]Metadata, 0, len(index.Backups))
	for _, b := range index.Backups {
		if sourcePath != "" && b.SourcePath != sourcePath {
			continue
		}
		backups = append(backups, b)
	}
	sortNewestFirst(backups)
	return backups, nil
}

func sortNewestFirst(backups []Metadata) {
	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].ID > backups[j].ID
		}
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
}
