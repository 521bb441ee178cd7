//nolint:revive // var-naming - package name is meaningful
package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTempDir(t *testing.T) {
	dir := TempDir(t, "a", "b")

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("TempDir() did not create %s: %v", dir, err)
	}
	if filepath.Base(dir) != "b" {
		t.Errorf("TempDir() = %s, want it to end in b", dir)
	}
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(TempDir(t), "nested", "snips.code-snippets")

	WriteFile(t, path, "{}\n")

	AssertEqual(t, ReadFile(t, path), "{}\n")
}

func TestAssertHelpersPass(t *testing.T) {
	AssertNoError(t, nil)
	AssertEqual(t, "for-loop", "for-loop")
	AssertEqual(t, 2, 2)
	AssertLines(t, []string{"a", "", "\tb"}, []string{"a", "", "\tb"})
}

func TestQuoteLines(t *testing.T) {
	AssertEqual(t, quoteLines([]string{"x", "\ty"}), "  x|\n  \\ty|")
	AssertEqual(t, quoteLines(nil), "")
}

func TestGoldenFile(t *testing.T) {
	original := UpdateGolden()
	defer SetUpdateGolden(original)

	testdataDir := filepath.Join(TempDir(t), "testdata")

	SetUpdateGolden(true)
	GoldenFile(t, testdataDir, "body", "line one\nline two\n")
	AssertEqual(t, ReadFile(t, filepath.Join(testdataDir, "body.golden")), "line one\nline two\n")

	SetUpdateGolden(false)
	GoldenFile(t, testdataDir, "body", "line one\nline two\n")
}
