package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat identifies the file format snippets are read from.
type SourceFormat string

const (
	// FormatVSSnippet is the Visual Studio .snippet XML format.
	FormatVSSnippet SourceFormat = "vssnippet"
	// FormatYAML is a YAML snippet manifest.
	FormatYAML SourceFormat = "yaml"
	// FormatTOML is a TOML snippet manifest.
	FormatTOML SourceFormat = "toml"
)

// IsValid returns true if the format is recognized
func (f SourceFormat) IsValid() bool {
	switch f {
	case FormatVSSnippet, FormatYAML, FormatTOML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f SourceFormat) String() string {
	return string(f)
}

// AllSourceFormats returns all supported source formats
func AllSourceFormats() []SourceFormat {
	return []SourceFormat{FormatVSSnippet, FormatYAML, FormatTOML}
}

// ParseSourceFormat converts a string to a SourceFormat.
func ParseSourceFormat(s string) (SourceFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "vssnippet", "snippet", "xml", "vs":
		return FormatVSSnippet, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown source format: %q (valid: vssnippet, yaml, toml)", s)
	}
}

// FormatForPath infers the source format from a file extension.
func FormatForPath(path string) (SourceFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".snippet", ".vssnippet", ".xml":
		return FormatVSSnippet, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("cannot infer source format from %q", path)
	}
}

// SourcePatterns returns the glob patterns used when a directory is given as input.
func SourcePatterns() []string {
	return []string{"**/*.snippet", "**/*.vssnippet", "**/*.yaml", "**/*.yml", "**/*.toml"}
}
