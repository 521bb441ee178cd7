// Package document holds a VS Code snippet file in memory and merges
// converted snippets into it by normalized title.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/klauern/snipconv/internal/logging"
	"github.com/klauern/snipconv/internal/model"
)

// ErrMalformed is returned when a snippet file is not a JSON object.
var ErrMalformed = errors.New("malformed snippet document")

// Indent is the indentation used when serializing a document.
const Indent = "  "

// Key returns the document key for a snippet title: lowercased, spaces replaced by hyphens.
func Key(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// Document is an insertion-ordered mapping from key to snippet entry.
// Entries are kept as raw JSON so foreign content survives a load/save cycle.
type Document struct {
	entries *orderedmap.OrderedMap[string, json.RawMessage]
}

// Entry is a decoded snippet entry and its key.
type Entry struct {
	Key     string
	Snippet model.TargetSnippet
}

// New returns an empty document.
func New() *Document {
	return &Document{entries: orderedmap.New[string, json.RawMessage]()}
}

// Parse decodes a document from JSON. Whitespace-only input yields an empty document.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return New(), nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	doc := New()
	if err := json.Unmarshal(trimmed, doc.entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return d.entries.Len()
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.entries.Get(key)
	return ok
}

// Keys returns all keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.entries.Len())
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Raw returns the raw JSON of the entry at key.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	return d.entries.Get(key)
}

// Get decodes the entry at key as a snippet.
func (d *Document) Get(key string) (model.TargetSnippet, bool) {
	raw, ok := d.entries.Get(key)
	if !ok {
		return model.TargetSnippet{}, false
	}
	s, err := decodeSnippet(raw)
	if err != nil {
		return model.TargetSnippet{}, false
	}
	return s, true
}

// Snippets returns every snippet-shaped entry in document order.
// Entries that do not decode as snippets are skipped.
func (d *Document) Snippets() []Entry {
	out := make([]Entry, 0, d.entries.Len())
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		s, err := decodeSnippet(pair.Value)
		if err != nil {
			logging.Debug("skipping non-snippet entry", logging.DocKey(pair.Key), logging.Err(err))
			continue
		}
		out = append(out, Entry{Key: pair.Key, Snippet: s})
	}
	return out
}

// Remove deletes the entry at key and reports whether it existed.
func (d *Document) Remove(key string) bool {
	_, ok := d.entries.Delete(key)
	return ok
}

// Merge inserts t at Key(t.Title). An existing entry with the same key is
// removed first, so the merged entry always ends up last.
func (d *Document) Merge(t model.TargetSnippet) (replaced bool, err error) {
	key := Key(t.Title)

	raw, err := encode(t)
	if err != nil {
		return false, fmt.Errorf("failed to encode snippet %q: %w", t.Title, err)
	}

	replaced = d.Remove(key)
	d.entries.Set(key, raw)

	logging.Debug("merged snippet",
		logging.Snippet(t.Title),
		logging.DocKey(key),
		logging.Operation("merge"),
	)
	return replaced, nil
}

// MarshalJSON encodes the document compactly in key order.
// HTML characters in snippet bodies are written as-is.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		key, err := encode(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalIndent encodes the whole document with Indent and a trailing newline.
func (d *Document) MarshalIndent() ([]byte, error) {
	compact, err := d.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", Indent); err != nil {
		return nil, fmt.Errorf("failed to indent document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// wireSnippet accepts both the array and the single-string body forms VS Code allows.
type wireSnippet struct {
	Prefix      json.RawMessage `json:"prefix"`
	Scope       string          `json:"scope"`
	Body        json.RawMessage `json:"body"`
	Description string          `json:"description"`
}

func decodeSnippet(raw json.RawMessage) (model.TargetSnippet, error) {
	var w wireSnippet
	if err := json.Unmarshal(raw, &w); err != nil {
		return model.TargetSnippet{}, err
	}

	prefix, err := firstString(w.Prefix)
	if err != nil {
		return model.TargetSnippet{}, fmt.Errorf("prefix: %w", err)
	}
	body, err := stringOrList(w.Body)
	if err != nil {
		return model.TargetSnippet{}, fmt.Errorf("body: %w", err)
	}

	return model.TargetSnippet{
		Prefix:      prefix,
		Scope:       w.Scope,
		Body:        body,
		Description: w.Description,
	}, nil
}

func stringOrList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return []string{s}, nil
}

// firstString returns a string value, or the first element when VS Code's list form is used.
func firstString(raw json.RawMessage) (string, error) {
	list, err := stringOrList(raw)
	if err != nil || len(list) == 0 {
		return "", err
	}
	return list[0], nil
}
