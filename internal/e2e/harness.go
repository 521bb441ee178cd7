// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness for running CLI commands, fixture builders for
// snippet sources and assertions on the generated snippet file.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/snipconv/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness runs CLI commands against an isolated config, target and backup directory.
type Harness struct {
	t       *testing.T
	homeDir string
}

// NewHarness creates a new E2E test harness.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		t:       t,
		homeDir: t.TempDir(),
	}

	h.SetEnv("HOME", h.homeDir)
	h.SetEnv("SNIPCONV_HOME", filepath.Join(h.homeDir, ".snipconv"))
	h.SetEnv("SNIPCONV_OUTPUT_TARGET", h.Target())
	h.SetEnv("SNIPCONV_BACKUP_LOCATION", h.BackupDir())
	h.SetEnv("SNIPCONV_CONVERT_PREFIX", "")

	return h
}

// SetEnv sets an environment variable for the rest of the test.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory for this test harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// Target returns the default target snippet file.
func (h *Harness) Target() string {
	return filepath.Join(h.homeDir, "snippets", "converted.code-snippets")
}

// BackupDir returns the backup store directory.
func (h *Harness) BackupDir() string {
	return filepath.Join(h.homeDir, "backups")
}

// Fixture returns a fixture builder rooted in the harness home.
func (h *Harness) Fixture() *Fixture {
	return NewFixture(h.t, filepath.Join(h.homeDir, "src"))
}

// Run executes a CLI command with colors disabled and captures stdout.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	args = append([]string{"snipconv", "--no-color"}, args...)

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Read concurrently so large outputs cannot fill the pipe buffer.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	cmdErr := cli.Run(context.Background(), args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}
