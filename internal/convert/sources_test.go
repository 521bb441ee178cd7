package convert

import (
	"path/filepath"
	"testing"

	"github.com/klauern/snipconv/internal/model"
	"github.com/klauern/snipconv/internal/util"
)

type countingProgress struct{ n int }

func (p *countingProgress) Add(n int) error {
	p.n += n
	return nil
}

func TestExpandSources(t *testing.T) {
	dir := filepath.Join("testdata", "sources")
	files, err := ExpandSources([]string{dir, filepath.Join(dir, "web.yaml")})
	util.AssertNoError(t, err)

	if len(files) != 2 {
		t.Fatalf("ExpandSources() = %v, want 2 files", files)
	}
	util.AssertEqual(t, filepath.Base(files[0]), "log.snippet")
	util.AssertEqual(t, filepath.Base(files[1]), "web.yaml")
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("%q is not absolute", f)
		}
	}
}

func TestExpandSources_Missing(t *testing.T) {
	if _, err := ExpandSources([]string{filepath.Join(t.TempDir(), "nope.snippet")}); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestReadFiles(t *testing.T) {
	files, err := ExpandSources([]string{filepath.Join("testdata", "sources")})
	util.AssertNoError(t, err)

	progress := &countingProgress{}
	snippets, err := ReadFiles(files, "", progress)
	util.AssertNoError(t, err)

	util.AssertEqual(t, progress.n, 2)
	if len(snippets) != 2 {
		t.Fatalf("got %d snippets, want 2", len(snippets))
	}
	util.AssertEqual(t, snippets[0].Title, "Console Log")
	util.AssertEqual(t, snippets[1].Title, "HTML Div")
	util.AssertEqual(t, snippets[1].Declarations[0].Default, "container")
}

func TestParserFor(t *testing.T) {
	tests := []struct {
		path    string
		format  model.SourceFormat
		want    model.SourceFormat
		wantErr bool
	}{
		{path: "a.snippet", want: model.FormatVSSnippet},
		{path: "a.vssnippet", want: model.FormatVSSnippet},
		{path: "a.yml", want: model.FormatYAML},
		{path: "a.toml", want: model.FormatTOML},
		{path: "a.json", wantErr: true},
		{path: "a.json", format: model.FormatYAML, want: model.FormatYAML},
		{path: "a.yaml", format: model.FormatTOML, want: model.FormatTOML},
		{path: "snippets.txt", format: model.FormatVSSnippet, want: model.FormatVSSnippet},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.format), func(t *testing.T) {
			p, err := ParserFor(tt.path, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParserFor(%q) expected error", tt.path)
				}
				return
			}
			util.AssertNoError(t, err)
			util.AssertEqual(t, p.Format(), tt.want)
		})
	}
}

func TestReadFiles_FormatOverride(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snippets.txt")
	util.WriteFile(t, src, "snippets:\n  - shortcut: hw\n    title: Hello World\n    code: hello\n")

	if _, err := ReadFiles([]string{src}, "", nil); err == nil {
		t.Fatal("expected error for unknown extension without a format")
	}
	snippets, err := ReadFiles([]string{src}, model.FormatYAML, nil)
	util.AssertNoError(t, err)
	if len(snippets) != 1 {
		t.Fatalf("got %d snippets, want 1", len(snippets))
	}
	util.AssertEqual(t, snippets[0].Title, "Hello World")
}

func TestReadFiles_ParseError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	util.WriteFile(t, bad, "snippets:\n  - title: No Shortcut\n    code: x\n")

	if _, err := ReadFiles([]string{bad}, "", nil); err == nil {
		t.Error("expected error for snippet without shortcut")
	}
}
