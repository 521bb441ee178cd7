package e2e

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/klauern/snipconv/internal/model"
)

// Fixture writes snippet sources for E2E tests.
type Fixture struct {
	t       *testing.T
	baseDir string
}

// NewFixture creates a new fixture helper rooted at the given directory.
func NewFixture(t *testing.T, baseDir string) *Fixture {
	t.Helper()
	return &Fixture{
		t:       t,
		baseDir: baseDir,
	}
}

// Dir returns the fixture base directory.
func (f *Fixture) Dir() string {
	return f.baseDir
}

// Path returns the full path for a relative path.
func (f *Fixture) Path(relPath string) string {
	return filepath.Join(f.baseDir, relPath)
}

// WriteFile writes content to a file relative to the fixture base directory.
// It creates parent directories as needed.
func (f *Fixture) WriteFile(relPath, content string) string {
	f.t.Helper()
	fullPath := f.Path(relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		f.t.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o600); err != nil {
		f.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
	return fullPath
}

// WriteManifest writes snippets as a YAML manifest.
func (f *Fixture) WriteManifest(relPath string, snippets ...model.SourceSnippet) string {
	f.t.Helper()
	data, err := yaml.Marshal(map[string][]model.SourceSnippet{"snippets": snippets})
	if err != nil {
		f.t.Fatalf("failed to encode manifest: %v", err)
	}
	return f.WriteFile(relPath, string(data))
}

// WriteVSSnippet writes snippets as a Visual Studio .snippet file.
func (f *Fixture) WriteVSSnippet(relPath string, snippets ...model.SourceSnippet) string {
	f.t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	b.WriteString(`<CodeSnippets xmlns="http://schemas.microsoft.com/VisualStudio/2005/CodeSnippet">` + "\n")
	for _, s := range snippets {
		b.WriteString("  <CodeSnippet Format=\"1.0.0\">\n    <Header>\n")
		b.WriteString("      <Title>" + escape(s.Title) + "</Title>\n")
		b.WriteString("      <Shortcut>" + escape(s.Shortcut) + "</Shortcut>\n")
		if s.Description != "" {
			b.WriteString("      <Description>" + escape(s.Description) + "</Description>\n")
		}
		b.WriteString("    </Header>\n    <Snippet>\n")
		if len(s.Declarations) > 0 {
			b.WriteString("      <Declarations>\n")
			for _, d := range s.Declarations {
				b.WriteString("        <Literal>\n          <ID>" + escape(d.ID) + "</ID>\n")
				if d.Default != "" {
					b.WriteString("          <Default>" + escape(d.Default) + "</Default>\n")
				}
				b.WriteString("        </Literal>\n")
			}
			b.WriteString("      </Declarations>\n")
		}
		b.WriteString("      <Code")
		if s.Language != "" {
			b.WriteString(` Language="` + escape(s.Language) + `"`)
		}
		if s.Delimiter != "" {
			b.WriteString(` Delimiter="` + escape(s.Delimiter) + `"`)
		}
		b.WriteString("><![CDATA[" + s.Code + "]]></Code>\n")
		b.WriteString("    </Snippet>\n  </CodeSnippet>\n")
	}
	b.WriteString("</CodeSnippets>\n")

	return f.WriteFile(relPath, b.String())
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
