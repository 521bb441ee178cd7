// Package model provides data types for snipconv.
package model

const (
	// DefaultDelimiter marks placeholders in source snippets when none is declared.
	DefaultDelimiter = "$"
	// DefaultScope is used when a source snippet declares no language.
	DefaultScope = "plain,html,javascript,typescript,css"
	// EndMarker is the identifier of the final cursor position in source code.
	EndMarker = "end"
	// FinalTabStop is the target marker for the final cursor position.
	FinalTabStop = "$0"
)

// Declaration is a named placeholder in a source snippet.
// An empty Default means no default value.
type Declaration struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	Default string `json:"default,omitempty" yaml:"default,omitempty" toml:"default"`
}

// HasDefault returns true if the declaration carries a default value.
func (d Declaration) HasDefault() bool {
	return d.Default != ""
}

// SourceSnippet represents one snippet in the Visual Studio snippet-library style.
// Optional fields use the empty string for "absent".
type SourceSnippet struct {
	Shortcut     string        `json:"shortcut" yaml:"shortcut" toml:"shortcut"`
	Title        string        `json:"title" yaml:"title" toml:"title"`
	Language     string        `json:"language,omitempty" yaml:"language,omitempty" toml:"language"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	Delimiter    string        `json:"delimiter,omitempty" yaml:"delimiter,omitempty" toml:"delimiter"`
	Code         string        `json:"code" yaml:"code" toml:"code"`
	Declarations []Declaration `json:"declarations,omitempty" yaml:"declarations,omitempty" toml:"declarations"`

	// Path is the file the snippet was read from, if any.
	Path string `json:"-" yaml:"-" toml:"-"`
}

// EffectiveDelimiter returns the declared delimiter or DefaultDelimiter.
func (s SourceSnippet) EffectiveDelimiter() string {
	if s.Delimiter == "" {
		return DefaultDelimiter
	}
	return s.Delimiter
}

// EffectiveLanguage returns the declared language or DefaultScope.
func (s SourceSnippet) EffectiveLanguage() string {
	if s.Language == "" {
		return DefaultScope
	}
	return s.Language
}

// TargetSnippet is a VS Code snippet entry.
// Title is only used to compute the document key and is never serialized.
type TargetSnippet struct {
	Prefix      string   `json:"prefix"`
	Scope       string   `json:"scope"`
	Body        []string `json:"body"`
	Description string   `json:"description"`
	Title       string   `json:"-"`
}
