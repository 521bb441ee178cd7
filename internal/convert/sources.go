package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/model"
	"github.com/klauern/snipconv/internal/parser"
	"github.com/klauern/snipconv/internal/parser/manifest"
	"github.com/klauern/snipconv/internal/parser/vssnippet"
)

// Progress receives one step per source file read.
type Progress interface {
	Add(n int) error
}

// ParserFor returns the parser for path. An empty format is inferred from
// the file's extension.
func ParserFor(path string, format model.SourceFormat) (parser.Parser, error) {
	if format == "" {
		var err error
		if format, err = model.FormatForPath(path); err != nil {
			return nil, err
		}
	}
	switch format {
	case model.FormatVSSnippet:
		return vssnippet.New(path), nil
	default:
		return manifest.New(path, format)
	}
}

// ExpandSources resolves files and directories into an ordered list of source files.
// Directories contribute every supported file below them in sorted order.
func ExpandSources(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat source %q: %w", p, err)
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %q: %w", p, err)
		}
		if !info.IsDir() {
			add(abs)
			continue
		}

		found, err := parser.DiscoverFiles(abs, model.SourcePatterns())
		if err != nil {
			return nil, err
		}
		logging.Debug("discovered source files", logging.Path(p), logging.Count(len(found)))
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

// ReadSources expands paths and reads every source file they name.
func ReadSources(paths []string) ([]model.SourceSnippet, error) {
	files, err := ExpandSources(paths)
	if err != nil {
		return nil, err
	}
	return ReadFiles(files, "", nil)
}

// ReadFiles parses every file in order and concatenates the snippets.
// A non-empty format applies to every file. progress may be nil.
func ReadFiles(files []string, format model.SourceFormat, progress Progress) ([]model.SourceSnippet, error) {
	var all []model.SourceSnippet
	for _, f := range files {
		p, err := ParserFor(f, format)
		if err != nil {
			return nil, err
		}
		snippets, err := p.Parse()
		if err != nil {
			return nil, err
		}

		logging.Debug("read source file",
			logging.Path(f),
			logging.Format(p.Format().String()),
			logging.Count(len(snippets)),
		)
		all = append(all, snippets...)

		if progress != nil {
			_ = progress.Add(1)
		}
	}
	return all, nil
}
