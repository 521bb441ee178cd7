package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/snipconv/internal/model"
)

func TestLoadFile_Missing(t *testing.T) {
	doc, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("LoadFile() error = %v, want ErrMalformed", err)
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.code-snippets")

	doc := New()
	if _, err := doc.Merge(snippet("Hello World", "hw", "a", "", "b")); err != nil {
		t.Fatal(err)
	}

	n, err := SaveFile(path, doc)
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if int64(n) != info.Size() {
		t.Errorf("SaveFile() reported %d bytes, file has %d", n, info.Size())
	}
	if !Exists(path) {
		t.Error("Exists() = false after save")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	got, ok := loaded.Get("hello-world")
	if !ok {
		t.Fatal("round-tripped entry missing")
	}
	if len(got.Body) != 3 || got.Body[1] != "" {
		t.Errorf("Body = %q, want empty line preserved", got.Body)
	}
}

func TestSaveFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte(`{"old": {"body": []}, "padding": "`+strings.Repeat("x", 64)+`"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := SaveFile(path, New()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}\n" {
		t.Errorf("file content = %q, want fully replaced document", data)
	}
}

func TestExists_Directory(t *testing.T) {
	if Exists(t.TempDir()) {
		t.Error("Exists() = true for a directory")
	}
}

func TestSaveFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.code-snippets")
	if err := os.WriteFile(path, []byte(`{"old": {"body": []}}`), 0o600); err != nil {
		t.Fatal(err)
	}

	doc := New()
	if _, err := doc.Merge(model.TargetSnippet{Title: "New", Prefix: "n", Body: []string{"n"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveFile(path, doc); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.code-snippets" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("directory holds %v, want only out.code-snippets", names)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != FilePerm {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), os.FileMode(FilePerm))
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Has("new") || loaded.Has("old") {
		t.Errorf("Keys() = %v, want [new]", loaded.Keys())
	}
}

func TestSaveFile_UnwritableDirKeepsTarget(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	const original = `{"keep": {"body": ["k"]}}`
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	if _, err := SaveFile(path, New()); err == nil {
		t.Fatal("SaveFile() succeeded in a read-only directory")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("target content = %q, want untouched original", data)
	}
}
