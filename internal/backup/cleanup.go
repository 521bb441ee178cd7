package backup

import (
	"fmt"
	"os"

	"github.com/klauern/snipconv/internal/logging"
)

// Prune keeps the newest maxBackups backups per source file and deletes the rest.
// A maxBackups of zero or less keeps everything. It returns the deleted IDs.
func (s *Store) Prune(maxBackups int) ([]string, error) {
	if maxBackups <= 0 {
		return nil, nil
	}

	index, err := s.LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}

	groups := make(map[string][]Metadata)
	for _, b := range index.Backups {
		groups[b.SourcePath] = append(groups[b.SourcePath], b)
	}

	var deleted []string
	for _, group := range groups {
		if len(group) <= maxBackups {
			continue
		}
		sortNewestFirst(group)
		for _, b := range group[maxBackups:] {
			if err := os.Remove(b.BackupPath); err != nil && !os.IsNotExist(err) {
				return deleted, fmt.Errorf("failed to delete backup file %q: %w", b.BackupPath, err)
			}
			delete(index.Backups, b.ID)
			deleted = append(deleted, b.ID)
		}
	}

	if len(deleted) == 0 {
		return nil, nil
	}
	if err := s.SaveIndex(index); err != nil {
		return deleted, err
	}

	logging.Debug("pruned backups", logging.Count(len(deleted)), logging.Path(s.dir))
	return deleted, nil
}
