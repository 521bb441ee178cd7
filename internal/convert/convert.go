// Package convert runs a batch conversion: it loads the target snippet file,
// merges every converted source snippet into it in order and writes the whole
// document back.
package convert

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/klauern/snipconv/internal/backup"
	"github.com/klauern/snipconv/internal/document"
	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/model"
	"github.com/klauern/snipconv/internal/transform"
)

// BackupOptions configures backups of the target file.
type BackupOptions struct {
	// Enabled backs up an existing target before it is cleared or replaced
	Enabled bool
	// Dir is the backup store directory
	Dir string
	// MaxBackups is the number of backups kept per target (0 = unlimited)
	MaxBackups int
}

// Options configures a batch conversion.
type Options struct {
	// Target is the snippet file to merge into
	Target string
	// Prefix is prepended to prefixes and titles that do not already carry it
	Prefix string
	// Clear deletes an existing target before converting
	Clear bool
	// DryRun computes the result without touching the filesystem
	DryRun bool
	// Backup configures target backups
	Backup BackupOptions
}

// Result summarizes a batch conversion.
type Result struct {
	// Target is the written file
	Target string
	// Added lists keys that did not exist before the run, in merge order
	Added []string
	// Replaced lists keys that existed before the run and were overwritten
	Replaced []string
	// Total is the number of entries in the written document
	Total int
	// Bytes is the size of the written document
	Bytes int
	// Backup is the ID of the backup taken, if any
	Backup string
	// Cleared is true if an existing target was deleted first
	Cleared bool
	// DryRun is true if nothing was written
	DryRun bool
}

// Converter merges converted snippets into target documents.
type Converter struct {
	newStore func(dir string) *backup.Store
}

// NewConverter returns a Converter using the on-disk backup store.
func NewConverter() *Converter {
	return &Converter{newStore: backup.NewStore}
}

// Convert merges snippets into the target file.
// Snippets are processed in order; a later snippet with the same key wins.
func (c *Converter) Convert(snippets []model.SourceSnippet, opts Options) (*Result, error) {
	defer logging.Timer("convert")()

	if opts.Target == "" {
		return nil, fmt.Errorf("no target file given")
	}

	result := &Result{Target: opts.Target, DryRun: opts.DryRun}
	exists := document.Exists(opts.Target)
	takeBackup := exists && !opts.DryRun && opts.Backup.Enabled

	var doc *document.Document
	if opts.Clear && exists {
		if takeBackup {
			id, err := c.backupTarget(opts)
			if err != nil {
				return nil, err
			}
			result.Backup = id
		}
		result.Cleared = true
		if !opts.DryRun {
			if err := os.Remove(opts.Target); err != nil {
				return nil, fmt.Errorf("failed to clear target %q: %w", opts.Target, err)
			}
			logging.Debug("cleared target document", logging.Path(opts.Target))
		}
		doc = document.New()
	} else {
		var err error
		doc, err = document.LoadFile(opts.Target)
		if err != nil {
			return nil, err
		}
		// only a target that parsed is worth keeping
		if takeBackup {
			id, err := c.backupTarget(opts)
			if err != nil {
				return nil, err
			}
			result.Backup = id
		}
	}

	initial := make(map[string]bool, doc.Len())
	for _, k := range doc.Keys() {
		initial[k] = true
	}

	targets := transform.NewTransformer(opts.Prefix).TransformAll(snippets)
	seen := make(map[string]bool, len(targets))
	for _, target := range targets {
		if _, err := doc.Merge(target); err != nil {
			return nil, err
		}

		key := document.Key(target.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		if initial[key] {
			result.Replaced = append(result.Replaced, key)
		} else {
			result.Added = append(result.Added, key)
		}
	}
	result.Total = doc.Len()

	if opts.DryRun {
		data, err := doc.MarshalIndent()
		if err != nil {
			return nil, err
		}
		result.Bytes = len(data)
		return result, nil
	}

	n, err := document.SaveFile(opts.Target, doc)
	if err != nil {
		return nil, err
	}
	result.Bytes = n

	logging.Info("conversion completed",
		logging.Path(opts.Target),
		logging.Count(len(snippets)),
		slog.Int("added", len(result.Added)),
		slog.Int("replaced", len(result.Replaced)),
		slog.Int("total", result.Total),
	)
	return result, nil
}

func (c *Converter) backupTarget(opts Options) (string, error) {
	newStore := c.newStore
	if newStore == nil {
		newStore = backup.NewStore
	}
	store := newStore(opts.Backup.Dir)

	meta, err := store.Create(opts.Target, "before convert")
	if err != nil {
		return "", fmt.Errorf("failed to back up target %q: %w", opts.Target, err)
	}

	if deleted, err := store.Prune(opts.Backup.MaxBackups); err != nil {
		logging.Warn("backup cleanup failed", logging.Err(err))
	} else if len(deleted) > 0 {
		logging.Debug("removed old backups", logging.Count(len(deleted)))
	}
	return meta.ID, nil
}
