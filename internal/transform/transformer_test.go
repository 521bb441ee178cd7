package transform

import (
	"slices"
	"testing"

	"github.com/klauern/snipconv/internal/model"
)

func TestBuild(t *testing.T) {
	src := model.SourceSnippet{
		Shortcut:     "HW",
		Title:        "Hello World",
		Description:  "Says Hello",
		Code:         "Console.WriteLine(\"Hello $name$\");\n$end$",
		Declarations: []model.Declaration{{ID: "name", Default: "World"}},
	}

	got := Build(src)

	if got.Prefix != "hw" {
		t.Errorf("Prefix = %q, want %q", got.Prefix, "hw")
	}
	if got.Scope != model.DefaultScope {
		t.Errorf("Scope = %q, want %q", got.Scope, model.DefaultScope)
	}
	if got.Title != "Hello World" {
		t.Errorf("Title = %q, want verbatim title", got.Title)
	}
	if got.Description != "Says Hello" {
		t.Errorf("Description = %q, want verbatim description", got.Description)
	}
	want := []string{"Console.WriteLine(\"Hello ${1:World}\");", "$0"}
	if !slices.Equal(got.Body, want) {
		t.Errorf("Body = %q, want %q", got.Body, want)
	}
}

func TestBuild_ScopeLowercased(t *testing.T) {
	got := Build(model.SourceSnippet{Shortcut: "x", Title: "x", Language: "CSharp"})
	if got.Scope != "csharp" {
		t.Errorf("Scope = %q, want %q", got.Scope, "csharp")
	}
}

func TestBuild_NoDeclarations(t *testing.T) {
	code := "line one\r\n\r\n$end$ line three"
	got := Build(model.SourceSnippet{Shortcut: "n", Title: "n", Code: code})

	want := []string{"line one", "", "$0 line three"}
	if !slices.Equal(got.Body, want) {
		t.Errorf("Body = %q, want %q", got.Body, want)
	}
}

func TestApplyPrefix(t *testing.T) {
	tests := map[string]struct {
		prefix     string
		in         model.TargetSnippet
		wantPrefix string
		wantTitle  string
	}{
		"empty prefix is a no-op": {
			in:         model.TargetSnippet{Prefix: "foo", Title: "Foo"},
			wantPrefix: "foo",
			wantTitle:  "Foo",
		},
		"unprefixed fields get the prefix": {
			prefix:     "cs-",
			in:         model.TargetSnippet{Prefix: "foo", Title: "Foo"},
			wantPrefix: "cs-foo",
			wantTitle:  "cs-Foo",
		},
		"already prefixed is left alone": {
			prefix:     "cs-",
			in:         model.TargetSnippet{Prefix: "cs-foo", Title: "cs-Foo"},
			wantPrefix: "cs-foo",
			wantTitle:  "cs-Foo",
		},
		"check ignores case": {
			prefix:     "CS-",
			in:         model.TargetSnippet{Prefix: "cs-foo", Title: "Cs-Foo"},
			wantPrefix: "cs-foo",
			wantTitle:  "Cs-Foo",
		},
		"fields are checked independently": {
			prefix:     "cs-",
			in:         model.TargetSnippet{Prefix: "cs-foo", Title: "Foo"},
			wantPrefix: "cs-foo",
			wantTitle:  "cs-Foo",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ApplyPrefix(tt.in, tt.prefix)
			if got.Prefix != tt.wantPrefix {
				t.Errorf("Prefix = %q, want %q", got.Prefix, tt.wantPrefix)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestApplyPrefix_Idempotent(t *testing.T) {
	in := model.TargetSnippet{Prefix: "foo", Title: "Foo"}
	once := ApplyPrefix(in, "cs-")
	twice := ApplyPrefix(once, "cs-")
	if once.Prefix != twice.Prefix || once.Title != twice.Title {
		t.Errorf("ApplyPrefix not idempotent: %+v vs %+v", once, twice)
	}
}

func TestTransformer_TransformAll(t *testing.T) {
	tr := NewTransformer("cs-")

	srcs := []model.SourceSnippet{
		{Shortcut: "foo", Title: "Foo"},
		{Shortcut: "cs-bar", Title: "Bar"},
	}
	got := tr.TransformAll(srcs)

	if len(got) != 2 {
		t.Fatalf("TransformAll() returned %d snippets, want 2", len(got))
	}
	if got[0].Prefix != "cs-foo" || got[1].Prefix != "cs-bar" {
		t.Errorf("prefixes = %q, %q; want cs-foo, cs-bar", got[0].Prefix, got[1].Prefix)
	}
	if got[1].Title != "cs-Bar" {
		t.Errorf("Title = %q, want %q", got[1].Title, "cs-Bar")
	}
}
