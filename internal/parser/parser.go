package parser

import (
	"fmt"

	"github.com/klauern/snipconv/internal/model"
)

// Parser defines the interface for format-specific snippet readers
type Parser interface {
	// Parse reads snippets in source order
	Parse() ([]model.SourceSnippet, error)

	// Format returns the source format this parser handles
	Format() model.SourceFormat
}

// Error describes a snippet source that could not be read.
type Error struct {
	// Path is the source file
	Path string
	// Snippet is the title of the offending snippet, if known
	Snippet string
	// Message describes the failure
	Message string
	// Err is the underlying error (if any)
	Err error
}

// Error returns a formatted parse error message.
func (e *Error) Error() string {
	msg := e.Message
	if e.Snippet != "" {
		msg = fmt.Sprintf("snippet %q: %s", e.Snippet, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// RequireFields checks the fields every source snippet needs.
func RequireFields(path string, s model.SourceSnippet) error {
	if s.Title == "" {
		return &Error{Path: path, Snippet: s.Shortcut, Message: "missing title"}
	}
	if s.Shortcut == "" {
		return &Error{Path: path, Snippet: s.Title, Message: "missing shortcut"}
	}
	return nil
}
