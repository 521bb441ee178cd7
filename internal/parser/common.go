package parser

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverFiles finds all files below baseDir matching any of the patterns.
// Patterns use slash-separated glob syntax relative to baseDir; a leading "**/"
// matches at any depth. Symlinked directories are followed once.
// Returns sorted, deduplicated absolute paths. A missing baseDir yields no files.
func DiscoverFiles(baseDir string, patterns []string) ([]string, error) {
	matchers, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", baseDir, err)
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat directory %q: %w", baseDir, err)
	}

	files := []string{}
	w := &walker{visited: make(map[string]bool)}
	w.walk(root, "", func(abs, rel string) {
		for _, m := range matchers {
			if m.match(rel) {
				files = append(files, abs)
				return
			}
		}
	})

	sort.Strings(files)
	return files, nil
}

type matcher struct {
	glob      string
	recursive bool
}

func compilePatterns(patterns []string) ([]matcher, error) {
	out := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		m := matcher{glob: filepath.ToSlash(p)}
		switch strings.Count(m.glob, "**") {
		case 0:
		case 1:
			if !strings.HasPrefix(m.glob, "**/") {
				return nil, fmt.Errorf("invalid pattern %q: ** must lead the pattern", p)
			}
			m.glob = strings.TrimPrefix(m.glob, "**/")
			m.recursive = true
		default:
			return nil, fmt.Errorf("invalid pattern %q: only one ** supported", p)
		}
		if _, err := path.Match(m.glob, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// match reports whether the slash-separated relative path matches.
func (m matcher) match(rel string) bool {
	if m.recursive && !strings.Contains(m.glob, "/") {
		ok, _ := path.Match(m.glob, path.Base(rel))
		return ok
	}
	if m.recursive {
		// a recursive pattern with directories matches any trailing run of segments
		for suffix := rel; ; {
			if ok, _ := path.Match(m.glob, suffix); ok {
				return true
			}
			i := strings.IndexByte(suffix, '/')
			if i < 0 {
				return false
			}
			suffix = suffix[i+1:]
		}
	}
	ok, _ := path.Match(m.glob, rel)
	return ok
}

// walker visits regular files, following symlinks and skipping cycles and
// entries it cannot read.
type walker struct {
	visited map[string]bool
}

func (w *walker) walk(abs, rel string, visit func(abs, rel string)) {
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil || w.visited[resolved] {
		return
	}

	info, err := os.Stat(abs)
	if err != nil {
		return
	}
	if !info.IsDir() {
		w.visited[resolved] = true
		visit(abs, rel)
		return
	}
	w.visited[resolved] = true

	entries, err := os.ReadDir(abs)
	if err != nil {
		return
	}
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		w.walk(filepath.Join(abs, e.Name()), childRel, visit)
	}
}
