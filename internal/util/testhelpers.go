//nolint:revive // var-naming - package name is meaningful
package util

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// TempDir returns a fresh directory under t.TempDir, joined with any extra path elements.
// The directory exists when TempDir returns.
func TempDir(t *testing.T, elem ...string) string {
	t.Helper()
	dir := filepath.Join(append([]string{t.TempDir()}, elem...)...)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	// #nosec G304 - test code reads its own fixtures
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertEqual fails if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertLines fails if two snippet bodies differ, printing both one line per row.
func AssertLines(t *testing.T, got, want []string) {
	t.Helper()
	if slices.Equal(got, want) {
		return
	}
	t.Errorf("body mismatch\n--- got (%d) ---\n%s\n--- want (%d) ---\n%s",
		len(got), quoteLines(got), len(want), quoteLines(want))
}

func quoteLines(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  " + strings.ReplaceAll(l, "\t", `\t`) + "|")
	}
	return b.String()
}

// GoldenFile compares got against testdataDir/name.golden, rewriting it in update mode.
func GoldenFile(t *testing.T, testdataDir, name, got string) {
	t.Helper()
	goldenPath := filepath.Join(testdataDir, name+".golden")

	if UpdateGolden() {
		WriteFile(t, goldenPath, got)
		return
	}

	// #nosec G304 - goldenPath is constructed from trusted testdata directory and test name
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nSet SNIPCONV_UPDATE_GOLDEN=1 to create it", goldenPath, err)
	}

	if got != string(want) {
		t.Errorf("output mismatch for %s\n--- got ---\n%s\n--- want ---\n%s", name, got, string(want))
	}
}

var updateGoldenFlag = os.Getenv("SNIPCONV_UPDATE_GOLDEN") != ""

// SetUpdateGolden overrides update mode, which defaults to SNIPCONV_UPDATE_GOLDEN being set.
func SetUpdateGolden(update bool) {
	updateGoldenFlag = update
}

// UpdateGolden returns whether golden files should be updated
func UpdateGolden() bool {
	return updateGoldenFlag
}
